package models

import "time"

// TidePrediction is a single water-level sample in a station's local wall
// time. NOAA returns samples in chronological order at 6-minute intervals.
type TidePrediction struct {
	Time   time.Time `json:"time" dynamodbav:"time"`
	Height float64   `json:"height" dynamodbav:"height"`
}

// TideReading is one extracted tide event (a high or the low).
type TideReading struct {
	Time   time.Time `json:"time"`
	Height float64   `json:"height"`
}

// TideSummary holds the day's two high tides and the low tide between them.
type TideSummary struct {
	FirstHigh  TideReading `json:"firstHigh"`
	Low        TideReading `json:"low"`
	SecondHigh TideReading `json:"secondHigh"`
}

// TidePredictionRecord is the cacheable unit of fetched predictions for one
// station and one calendar date.
type TidePredictionRecord struct {
	StationID   int              `json:"stationId" dynamodbav:"stationId"`
	Date        string           `json:"date" dynamodbav:"date"` // YYYY-MM-DD
	Predictions []TidePrediction `json:"predictions" dynamodbav:"predictions"`
	LastUpdated int64            `json:"lastUpdated" dynamodbav:"lastUpdated"`
	TTL         int64            `json:"ttl" dynamodbav:"ttl"`
}

// NoaaPrediction is one entry of the raw NOAA datagetter response.
type NoaaPrediction struct {
	Time   string `json:"t"` // "2006-01-02 15:04", station local time
	Height string `json:"v"` // water level as a decimal string
}

// NoaaError is the application-level error payload NOAA returns with a 200
// status when it rejects a query.
type NoaaError struct {
	Message string `json:"message"`
}

// NoaaResponse is the raw NOAA datagetter response envelope. Exactly one of
// Error and Predictions is populated.
type NoaaResponse struct {
	Error       *NoaaError       `json:"error,omitempty"`
	Predictions []NoaaPrediction `json:"predictions,omitempty"`
}
