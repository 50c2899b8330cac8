package store

import (
	"sort"
	"sync"
	"time"

	"github.com/RiverWatch-MH/riverwatch_backend/internal/models"
)

// Store manages sample data storage and retrieval in memory. It is the
// fallback when no database is configured and the backing store for
// tests.
type Store struct {
	mu              sync.RWMutex
	sampleReadings  []models.SampleReading
	latestReading   *models.SampleReading                   // Latest reading overall
	latestByStation map[string]*models.SampleReading        // Latest reading per station
	snapshots       []models.StationAssessment              // Periodic WQI snapshots
	maxReadings     int
}

// NewStore creates a new in-memory store
func NewStore(maxReadings int) *Store {
	if maxReadings <= 0 {
		maxReadings = 1000 // Default to store last 1000 readings
	}

	return &Store{
		sampleReadings:  make([]models.SampleReading, 0, maxReadings),
		latestReading:   nil,
		latestByStation: make(map[string]*models.SampleReading),
		snapshots:       make([]models.StationAssessment, 0, maxReadings),
		maxReadings:     maxReadings,
	}
}

// Ping always succeeds for the in-memory store
func (s *Store) Ping() error {
	return nil
}

// AddSampleReading stores a new sample reading
func (s *Store) AddSampleReading(reading models.SampleReading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Add to readings slice
	s.sampleReadings = append(s.sampleReadings, reading)

	// Maintain maximum size by removing oldest entries
	if len(s.sampleReadings) > s.maxReadings {
		s.sampleReadings = s.sampleReadings[1:]
	}

	// Update latest reading overall
	s.latestReading = &reading

	// Update latest reading for this station
	if reading.StationID != "" {
		readingCopy := reading
		s.latestByStation[reading.StationID] = &readingCopy
	}
}

// GetLatestReading returns the most recent reading
func (s *Store) GetLatestReading() (*models.SampleReading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latestReading == nil {
		return nil, false
	}

	// Return a copy to avoid race conditions
	reading := *s.latestReading
	return &reading, true
}

// GetLatestReadingByStation returns the most recent reading for a specific station
func (s *Store) GetLatestReadingByStation(stationID string) (*models.SampleReading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reading, exists := s.latestByStation[stationID]
	if !exists || reading == nil {
		return nil, false
	}

	// Return a copy to avoid race conditions
	readingCopy := *reading
	return &readingCopy, true
}

// GetAllLatestReadingsByStation returns the latest reading for each station
func (s *Store) GetAllLatestReadingsByStation() map[string]models.SampleReading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]models.SampleReading)
	for stationID, reading := range s.latestByStation {
		if reading != nil {
			result[stationID] = *reading
		}
	}
	return result
}

// GetRecentReadings returns the most recent N readings
func (s *Store) GetRecentReadings(limit int) []models.SampleReading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	readings := make([]models.SampleReading, len(s.sampleReadings))
	copy(readings, s.sampleReadings)

	// Sort by timestamp descending (most recent first)
	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Timestamp.After(readings[j].Timestamp)
	})

	if limit > 0 && len(readings) > limit {
		readings = readings[:limit]
	}

	return readings
}

// GetRecentReadingsByStation returns the most recent N readings for a specific station
func (s *Store) GetRecentReadingsByStation(stationID string, limit int) []models.SampleReading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var readings []models.SampleReading
	for _, reading := range s.sampleReadings {
		if reading.StationID == stationID {
			readings = append(readings, reading)
		}
	}

	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Timestamp.After(readings[j].Timestamp)
	})

	if limit > 0 && len(readings) > limit {
		readings = readings[:limit]
	}

	return readings
}

// GetReadingsByStation returns all readings for a specific station
func (s *Store) GetReadingsByStation(stationID string) []models.SampleReading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.SampleReading
	for _, reading := range s.sampleReadings {
		if reading.StationID == stationID {
			result = append(result, reading)
		}
	}

	// Sort by timestamp ascending
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})

	return result
}

// GetReadingsInRange returns sample readings within a time range
func (s *Store) GetReadingsInRange(start, end time.Time) []models.SampleReading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.SampleReading
	for _, reading := range s.sampleReadings {
		if reading.Timestamp.After(start) && reading.Timestamp.Before(end) {
			result = append(result, reading)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})

	return result
}

// GetReadingCount returns the total number of stored readings
func (s *Store) GetReadingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sampleReadings)
}

// GetActiveStations returns the IDs of all stations that have reported
func (s *Store) GetActiveStations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stations := make([]string, 0, len(s.latestByStation))
	for stationID := range s.latestByStation {
		stations = append(stations, stationID)
	}
	sort.Strings(stations)
	return stations
}

// GetLatestAssessment returns the WQI assessment for the latest reading
func (s *Store) GetLatestAssessment() (*models.StationAssessment, bool) {
	reading, exists := s.GetLatestReading()
	if !exists {
		return nil, false
	}

	assessment := reading.Assess()
	return &assessment, true
}

// GetLatestAssessmentByStation returns the WQI assessment for a station's latest reading
func (s *Store) GetLatestAssessmentByStation(stationID string) (*models.StationAssessment, bool) {
	reading, exists := s.GetLatestReadingByStation(stationID)
	if !exists {
		return nil, false
	}

	assessment := reading.Assess()
	return &assessment, true
}

// GetAllLatestAssessments returns the WQI assessment for every station's latest reading
func (s *Store) GetAllLatestAssessments() []models.StationAssessment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assessments := make([]models.StationAssessment, 0, len(s.latestByStation))
	for _, reading := range s.latestByStation {
		if reading != nil {
			assessments = append(assessments, reading.Assess())
		}
	}

	sort.Slice(assessments, func(i, j int) bool {
		return assessments[i].StationID < assessments[j].StationID
	})

	return assessments
}

// AddWQISnapshot stores a periodic WQI snapshot
func (s *Store) AddWQISnapshot(assessment models.StationAssessment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots = append(s.snapshots, assessment)

	if len(s.snapshots) > s.maxReadings {
		s.snapshots = s.snapshots[1:]
	}
}

// GetRecentSnapshots returns the most recent N WQI snapshots
func (s *Store) GetRecentSnapshots(limit int) []models.StationAssessment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshots := make([]models.StationAssessment, len(s.snapshots))
	copy(snapshots, s.snapshots)

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp.After(snapshots[j].Timestamp)
	})

	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}

	return snapshots
}

// GetSnapshotsByStation returns the most recent N snapshots for a specific station
func (s *Store) GetSnapshotsByStation(stationID string, limit int) []models.StationAssessment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var snapshots []models.StationAssessment
	for _, snapshot := range s.snapshots {
		if snapshot.StationID == stationID {
			snapshots = append(snapshots, snapshot)
		}
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp.After(snapshots[j].Timestamp)
	})

	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}

	return snapshots
}

// ClearReadings removes all stored readings (useful for testing)
func (s *Store) ClearReadings() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sampleReadings = make([]models.SampleReading, 0, s.maxReadings)
	s.latestReading = nil
	s.latestByStation = make(map[string]*models.SampleReading)
}
