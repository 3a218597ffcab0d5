package models

import "encoding/json"

// ResolvedCity is a successfully matched town from the directory.
type ResolvedCity struct {
	City      string `json:"city"`
	StationID int    `json:"stationId"`
}

// ResolvedDate is a successfully resolved date request: what to speak back
// and the NOAA query parameters that select the matching 24-hour window.
type ResolvedDate struct {
	DisplayText string `json:"displayText"`
	QueryParam  string `json:"queryParam"`
}

// ConversationState is the typed view of the skill session attribute bag.
// A multi-turn dialog stores at most one resolved city and one resolved
// date here between turns; the hosting platform persists and isolates it.
type ConversationState struct {
	City *ResolvedCity `json:"currentCity,omitempty"`
	Date *ResolvedDate `json:"currentDate,omitempty"`
}

// StateFromAttributes decodes the session attribute bag sent by the
// platform. Attributes that do not decode are treated as absent so a
// malformed bag can never fail a turn.
func StateFromAttributes(attrs map[string]json.RawMessage) ConversationState {
	var state ConversationState
	if raw, ok := attrs["currentCity"]; ok {
		var city ResolvedCity
		if err := json.Unmarshal(raw, &city); err == nil {
			state.City = &city
		}
	}
	if raw, ok := attrs["currentDate"]; ok {
		var date ResolvedDate
		if err := json.Unmarshal(raw, &date); err == nil {
			state.Date = &date
		}
	}
	return state
}

// Attributes serializes the state back into the attribute bag shape for the
// outbound response. Empty state returns nil so the response omits the bag.
func (s ConversationState) Attributes() map[string]any {
	if s.City == nil && s.Date == nil {
		return nil
	}
	attrs := make(map[string]any, 2)
	if s.City != nil {
		attrs["currentCity"] = s.City
	}
	if s.Date != nil {
		attrs["currentDate"] = s.Date
	}
	return attrs
}
