package store

import (
	"testing"
	"time"

	"github.com/RiverWatch-MH/riverwatch_backend/internal/models"
)

func sampleAt(stationID string, ts time.Time, do float64) models.SampleReading {
	return models.SampleReading{
		StationID:       stationID,
		Timestamp:       ts,
		DissolvedOxygen: do,
		FecalColiform:   500,
		Ph:              7.5,
		Bod:             2.0,
	}
}

func TestStore_AddAndGetLatest(t *testing.T) {
	s := NewStore(100)

	if _, exists := s.GetLatestReading(); exists {
		t.Error("Expected no latest reading in an empty store")
	}

	now := time.Now()
	s.AddSampleReading(sampleAt("godavari_nashik", now.Add(-time.Hour), 6.0))
	s.AddSampleReading(sampleAt("godavari_nashik", now, 8.0))

	reading, exists := s.GetLatestReading()
	if !exists {
		t.Fatal("Expected a latest reading")
	}
	if reading.DissolvedOxygen != 8.0 {
		t.Errorf("Expected latest reading DO 8.0, got %v", reading.DissolvedOxygen)
	}
}

func TestStore_LatestByStation(t *testing.T) {
	s := NewStore(100)
	now := time.Now()

	s.AddSampleReading(sampleAt("godavari_nashik", now, 8.0))
	s.AddSampleReading(sampleAt("krishna_sangli", now, 4.5))

	reading, exists := s.GetLatestReadingByStation("krishna_sangli")
	if !exists {
		t.Fatal("Expected a reading for krishna_sangli")
	}
	if reading.DissolvedOxygen != 4.5 {
		t.Errorf("Expected DO 4.5, got %v", reading.DissolvedOxygen)
	}

	if _, exists := s.GetLatestReadingByStation("unknown_station"); exists {
		t.Error("Expected no reading for an unknown station")
	}

	latest := s.GetAllLatestReadingsByStation()
	if len(latest) != 2 {
		t.Errorf("Expected latest readings for 2 stations, got %d", len(latest))
	}
}

func TestStore_MaxReadingsEviction(t *testing.T) {
	s := NewStore(5)
	now := time.Now()

	for i := 0; i < 10; i++ {
		s.AddSampleReading(sampleAt("godavari_nashik", now.Add(time.Duration(i)*time.Minute), float64(i)))
	}

	if count := s.GetReadingCount(); count != 5 {
		t.Errorf("Expected store to cap at 5 readings, got %d", count)
	}

	// Oldest readings are evicted first
	readings := s.GetRecentReadings(0)
	for _, r := range readings {
		if r.DissolvedOxygen < 5 {
			t.Errorf("Expected reading %v to have been evicted", r.DissolvedOxygen)
		}
	}
}

func TestStore_RecentReadingsOrderAndLimit(t *testing.T) {
	s := NewStore(100)
	now := time.Now()

	for i := 0; i < 5; i++ {
		s.AddSampleReading(sampleAt("godavari_nashik", now.Add(time.Duration(i)*time.Minute), float64(i)))
	}

	readings := s.GetRecentReadings(3)
	if len(readings) != 3 {
		t.Fatalf("Expected 3 readings, got %d", len(readings))
	}
	if readings[0].DissolvedOxygen != 4.0 {
		t.Errorf("Expected most recent reading first, got DO %v", readings[0].DissolvedOxygen)
	}
	if readings[0].Timestamp.Before(readings[1].Timestamp) {
		t.Error("Expected readings sorted most recent first")
	}
}

func TestStore_ReadingsInRange(t *testing.T) {
	s := NewStore(100)
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		s.AddSampleReading(sampleAt("godavari_nashik", base.Add(time.Duration(i)*time.Hour), float64(i)))
	}

	readings := s.GetReadingsInRange(base.Add(90*time.Minute), base.Add(5*time.Hour))
	if len(readings) != 3 {
		t.Fatalf("Expected 3 readings in range, got %d", len(readings))
	}
	if !readings[0].Timestamp.Before(readings[len(readings)-1].Timestamp) {
		t.Error("Expected range results sorted oldest first")
	}
}

func TestStore_ActiveStations(t *testing.T) {
	s := NewStore(100)
	now := time.Now()

	s.AddSampleReading(sampleAt("krishna_sangli", now, 6.0))
	s.AddSampleReading(sampleAt("godavari_nashik", now, 8.0))

	stations := s.GetActiveStations()
	if len(stations) != 2 {
		t.Fatalf("Expected 2 active stations, got %d", len(stations))
	}
	if stations[0] != "godavari_nashik" || stations[1] != "krishna_sangli" {
		t.Errorf("Expected stations sorted by ID, got %v", stations)
	}
}

func TestStore_LatestAssessment(t *testing.T) {
	s := NewStore(100)

	if _, exists := s.GetLatestAssessment(); exists {
		t.Error("Expected no assessment in an empty store")
	}

	s.AddSampleReading(sampleAt("godavari_nashik", time.Now(), 8.0))

	assessment, exists := s.GetLatestAssessment()
	if !exists {
		t.Fatal("Expected an assessment")
	}
	if assessment.Result.Classification != "Good to Excellent" {
		t.Errorf("Expected 'Good to Excellent', got %q", assessment.Result.Classification)
	}

	assessments := s.GetAllLatestAssessments()
	if len(assessments) != 1 {
		t.Errorf("Expected 1 assessment, got %d", len(assessments))
	}
}

func TestStore_Snapshots(t *testing.T) {
	s := NewStore(100)
	now := time.Now()

	first := sampleAt("godavari_nashik", now.Add(-time.Hour), 8.0)
	second := sampleAt("krishna_sangli", now, 4.5)
	s.AddWQISnapshot(first.Assess())
	s.AddWQISnapshot(second.Assess())

	snapshots := s.GetRecentSnapshots(10)
	if len(snapshots) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(snapshots))
	}
	if snapshots[0].StationID != "krishna_sangli" {
		t.Errorf("Expected most recent snapshot first, got %q", snapshots[0].StationID)
	}

	byStation := s.GetSnapshotsByStation("godavari_nashik", 10)
	if len(byStation) != 1 {
		t.Fatalf("Expected 1 snapshot for godavari_nashik, got %d", len(byStation))
	}
}
