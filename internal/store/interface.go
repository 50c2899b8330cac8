package store

import (
	"time"

	"github.com/RiverWatch-MH/riverwatch_backend/internal/models"
)

// DataStore defines the interface for sample storage operations
type DataStore interface {
	// Health check
	Ping() error

	AddSampleReading(models.SampleReading)
	GetLatestReading() (*models.SampleReading, bool)
	GetLatestReadingByStation(string) (*models.SampleReading, bool)
	GetAllLatestReadingsByStation() map[string]models.SampleReading
	GetRecentReadings(int) []models.SampleReading
	GetRecentReadingsByStation(string, int) []models.SampleReading
	GetReadingsByStation(string) []models.SampleReading
	GetReadingsInRange(time.Time, time.Time) []models.SampleReading
	GetReadingCount() int
	GetActiveStations() []string

	// WQI assessments derived on demand from stored readings
	GetLatestAssessment() (*models.StationAssessment, bool)
	GetLatestAssessmentByStation(string) (*models.StationAssessment, bool)
	GetAllLatestAssessments() []models.StationAssessment

	// Periodic WQI snapshots written by the snapshot job
	AddWQISnapshot(models.StationAssessment)
	GetRecentSnapshots(limit int) []models.StationAssessment
	GetSnapshotsByStation(stationID string, limit int) []models.StationAssessment
}
