package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RiverWatch-MH/riverwatch_backend/internal/models"
)

// SampleParser handles parsing of station sample payloads from various sources
type SampleParser struct{}

// NewSampleParser creates a new instance of SampleParser
func NewSampleParser() *SampleParser {
	return &SampleParser{}
}

// ParseSampleJSON parses a JSON payload from a monitoring station.
// Parsing only rejects malformed payloads; implausible values are the
// range validator's business and never cause a parse error.
func (sp *SampleParser) ParseSampleJSON(payload []byte, stationID string) (*models.SampleReading, error) {
	var sampleData models.SampleData

	if err := json.Unmarshal(payload, &sampleData); err != nil {
		return nil, fmt.Errorf("failed to parse sample JSON: %w", err)
	}

	reading := &models.SampleReading{
		StationID:       stationID,
		Timestamp:       time.Now(),
		DissolvedOxygen: sampleData.DissolvedOxygen,
		FecalColiform:   sampleData.FecalColiform,
		Ph:              sampleData.Ph,
		Bod:             sampleData.Bod,
		Temperature:     sampleData.Temperature,
	}

	return reading, nil
}

// ParseSampleString parses comma-separated sample values (fallback format).
// Expected format: "do,fc,ph,bod" or "do,fc,ph,bod,temperature"
func (sp *SampleParser) ParseSampleString(payload string, stationID string) (*models.SampleReading, error) {
	fields := strings.Split(strings.TrimSpace(payload), ",")
	if len(fields) != 4 && len(fields) != 5 {
		return nil, fmt.Errorf("failed to parse sample string: expected 4 or 5 values (do,fc,ph,bod[,temperature]), got %d", len(fields))
	}

	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sample value %q: %w", field, err)
		}
		values[i] = v
	}

	reading := &models.SampleReading{
		StationID:       stationID,
		Timestamp:       time.Now(),
		DissolvedOxygen: values[0],
		FecalColiform:   values[1],
		Ph:              values[2],
		Bod:             values[3],
	}

	if len(values) == 5 {
		temperature := values[4]
		reading.Temperature = &temperature
	}

	return reading, nil
}

// FormatSampleReading formats a sample reading for logging or debugging
func (sp *SampleParser) FormatSampleReading(reading *models.SampleReading) string {
	temperature := "n/a"
	if reading.Temperature != nil {
		temperature = fmt.Sprintf("%.1f °C", *reading.Temperature)
	}

	return fmt.Sprintf("Station: %s, Time: %s, DO: %.2f mg/l, FC: %.0f MPN/100ml, pH: %.2f, BOD: %.2f mg/l, Temp: %s",
		reading.StationID,
		reading.Timestamp.Format("2006-01-02 15:04:05"),
		reading.DissolvedOxygen,
		reading.FecalColiform,
		reading.Ph,
		reading.Bod,
		temperature)
}
