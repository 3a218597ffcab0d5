// Package alexa defines the request and response envelopes of the hosting
// voice platform. The Lambda runtime hands us the raw JSON event; these
// types are the only place the wire shape is known.
package alexa

import "encoding/json"

const (
	RequestTypeLaunch       = "LaunchRequest"
	RequestTypeIntent       = "IntentRequest"
	RequestTypeSessionEnded = "SessionEndedRequest"
)

// RequestEnvelope is the inbound skill request.
type RequestEnvelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Request `json:"request"`
}

// Session carries the per-conversation attribute bag. The platform persists
// it between turns of one conversation and discards it at session end.
type Session struct {
	New        bool                       `json:"new"`
	SessionID  string                     `json:"sessionId"`
	Attributes map[string]json.RawMessage `json:"attributes,omitempty"`
}

type Request struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp,omitempty"`
	Intent    Intent `json:"intent,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// SlotValue returns the value of the named slot, or nil when the slot is
// missing or arrived without a value. Callers treat both the same way.
func (i Intent) SlotValue(name string) *string {
	slot, ok := i.Slots[name]
	if !ok || slot.Value == "" {
		return nil
	}
	return &slot.Value
}
