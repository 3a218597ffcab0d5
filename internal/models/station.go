package models

// Station is one entry of the town directory: a Cape Cod town name and the
// NOAA CO-OPS station that reports tide predictions for it.
type Station struct {
	City string `json:"city"`
	ID   int    `json:"stationId"`
}
