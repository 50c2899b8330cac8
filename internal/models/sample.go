package models

import (
	"time"

	"github.com/RiverWatch-MH/riverwatch_backend/internal/wqi"
)

// SampleReading represents a complete water sample reported by a river
// monitoring station. Temperature is optional; stations without a
// thermometer simply omit it.
type SampleReading struct {
	StationID       string    `json:"station_id"`
	Timestamp       time.Time `json:"timestamp"`
	DissolvedOxygen float64   `json:"dissolved_oxygen"` // mg/l
	FecalColiform   float64   `json:"fecal_coliform"`   // MPN/100ml
	Ph              float64   `json:"ph"`
	Bod             float64   `json:"bod"`                   // mg/l
	Temperature     *float64  `json:"temperature,omitempty"` // °C
}

// SampleData represents the raw JSON payload received from a station
type SampleData struct {
	DissolvedOxygen float64  `json:"dissolved_oxygen"`
	FecalColiform   float64  `json:"fecal_coliform"`
	Ph              float64  `json:"ph"`
	Bod             float64  `json:"bod"`
	Temperature     *float64 `json:"temperature,omitempty"`
}

// StationAssessment pairs a sample with its WQI result and the advisory
// range validation. This is the record dashboards, exports and the
// WebSocket feed consume.
type StationAssessment struct {
	StationID  string               `json:"station_id"`
	Timestamp  time.Time            `json:"timestamp"`
	Reading    SampleReading        `json:"reading"`
	Result     wqi.Result           `json:"result"`
	Validation wqi.ValidationResult `json:"validation"`
}

// ToWQIReading converts the sample to the engine's input value object.
func (s *SampleReading) ToWQIReading() wqi.Reading {
	return wqi.Reading{
		DissolvedOxygen: s.DissolvedOxygen,
		FecalColiform:   s.FecalColiform,
		Ph:              s.Ph,
		Bod:             s.Bod,
		Temperature:     s.Temperature,
	}
}

// Assess scores the sample and attaches the advisory validation. An
// out-of-range sample still gets a full assessment.
func (s *SampleReading) Assess() StationAssessment {
	reading := s.ToWQIReading()

	return StationAssessment{
		StationID:  s.StationID,
		Timestamp:  s.Timestamp,
		Reading:    *s,
		Result:     wqi.Compute(reading),
		Validation: wqi.Validate(reading),
	}
}

// Validate runs the advisory plausibility check over the sample.
func (s *SampleReading) Validate() wqi.ValidationResult {
	return wqi.Validate(s.ToWQIReading())
}
