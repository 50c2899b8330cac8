package database

import (
	"database/sql"
	"log"
	"time"

	"github.com/RiverWatch-MH/riverwatch_backend/internal/models"
)

// DatabaseStore implements persistent storage using PostgreSQL
type DatabaseStore struct {
	db *sql.DB
}

// NewDatabaseStore creates a new database store
func NewDatabaseStore(db *sql.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Ping checks the database connection
func (s *DatabaseStore) Ping() error {
	return s.db.Ping()
}

const readingColumns = "station_id, timestamp, dissolved_oxygen, fecal_coliform, ph, bod, temperature"

// scanReading scans one sample_readings row, mapping a NULL temperature
// to the optional field.
func scanReading(row interface{ Scan(...interface{}) error }) (models.SampleReading, error) {
	var reading models.SampleReading
	var temperature sql.NullFloat64

	err := row.Scan(&reading.StationID, &reading.Timestamp, &reading.DissolvedOxygen,
		&reading.FecalColiform, &reading.Ph, &reading.Bod, &temperature)
	if err != nil {
		return reading, err
	}

	if temperature.Valid {
		t := temperature.Float64
		reading.Temperature = &t
	}
	return reading, nil
}

// AddSampleReading stores a sample reading in the database
func (s *DatabaseStore) AddSampleReading(reading models.SampleReading) {
	query := `
		INSERT INTO sample_readings (station_id, timestamp, dissolved_oxygen, fecal_coliform, ph, bod, temperature)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (station_id, timestamp) DO UPDATE SET
			dissolved_oxygen = EXCLUDED.dissolved_oxygen,
			fecal_coliform = EXCLUDED.fecal_coliform,
			ph = EXCLUDED.ph,
			bod = EXCLUDED.bod,
			temperature = EXCLUDED.temperature`

	var temperature sql.NullFloat64
	if reading.Temperature != nil {
		temperature = sql.NullFloat64{Float64: *reading.Temperature, Valid: true}
	}

	_, err := s.db.Exec(query, reading.StationID, reading.Timestamp, reading.DissolvedOxygen,
		reading.FecalColiform, reading.Ph, reading.Bod, temperature)
	if err != nil {
		log.Printf("❌ Error storing sample reading: %v", err)
		return
	}

	// Update station status (last_seen, total_readings)
	s.updateStationStatus(reading.StationID)
}

// updateStationStatus updates the station status when new data arrives
func (s *DatabaseStore) updateStationStatus(stationID string) {
	query := `
		INSERT INTO station_status (station_id, last_seen, total_readings, updated_at)
		VALUES ($1, NOW(), 1, NOW())
		ON CONFLICT (station_id) DO UPDATE SET
			last_seen = NOW(),
			total_readings = station_status.total_readings + 1,
			updated_at = NOW()`

	_, err := s.db.Exec(query, stationID)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to update station status: %v", err)
	}
}

// GetLatestReading returns the most recent sample reading
func (s *DatabaseStore) GetLatestReading() (*models.SampleReading, bool) {
	query := `
		SELECT ` + readingColumns + `
		FROM sample_readings
		ORDER BY timestamp DESC
		LIMIT 1`

	reading, err := scanReading(s.db.QueryRow(query))
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("❌ Error getting latest reading: %v", err)
		return nil, false
	}

	return &reading, true
}

// GetLatestReadingByStation returns the most recent reading for a specific station
func (s *DatabaseStore) GetLatestReadingByStation(stationID string) (*models.SampleReading, bool) {
	query := `
		SELECT ` + readingColumns + `
		FROM sample_readings
		WHERE station_id = $1
		ORDER BY timestamp DESC
		LIMIT 1`

	reading, err := scanReading(s.db.QueryRow(query, stationID))
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("❌ Error getting latest reading by station: %v", err)
		return nil, false
	}

	return &reading, true
}

// GetAllLatestReadingsByStation returns the latest reading for each station
func (s *DatabaseStore) GetAllLatestReadingsByStation() map[string]models.SampleReading {
	query := `
		SELECT DISTINCT ON (station_id) ` + readingColumns + `
		FROM sample_readings
		ORDER BY station_id, timestamp DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		log.Printf("❌ Error getting all latest readings by station: %v", err)
		return map[string]models.SampleReading{}
	}
	defer rows.Close()

	result := make(map[string]models.SampleReading)
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			log.Printf("⚠️  Warning: Error scanning reading: %v", err)
			continue
		}
		result[reading.StationID] = reading
	}

	return result
}

// queryReadings runs a sample_readings query and scans all rows
func (s *DatabaseStore) queryReadings(query string, args ...interface{}) []models.SampleReading {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Printf("❌ Error querying sample readings: %v", err)
		return []models.SampleReading{}
	}
	defer rows.Close()

	var readings []models.SampleReading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			log.Printf("⚠️  Warning: Error scanning reading: %v", err)
			continue
		}
		readings = append(readings, reading)
	}

	return readings
}

// GetRecentReadings returns the N most recent sample readings
func (s *DatabaseStore) GetRecentReadings(limit int) []models.SampleReading {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + readingColumns + `
		FROM sample_readings
		ORDER BY timestamp DESC
		LIMIT $1`

	return s.queryReadings(query, limit)
}

// GetRecentReadingsByStation returns recent readings for a specific station
func (s *DatabaseStore) GetRecentReadingsByStation(stationID string, limit int) []models.SampleReading {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + readingColumns + `
		FROM sample_readings
		WHERE station_id = $1
		ORDER BY timestamp DESC
		LIMIT $2`

	return s.queryReadings(query, stationID, limit)
}

// GetReadingsByStation returns all readings for a specific station
func (s *DatabaseStore) GetReadingsByStation(stationID string) []models.SampleReading {
	query := `
		SELECT ` + readingColumns + `
		FROM sample_readings
		WHERE station_id = $1
		ORDER BY timestamp ASC`

	return s.queryReadings(query, stationID)
}

// GetReadingsInRange returns all readings within a time range
func (s *DatabaseStore) GetReadingsInRange(start, end time.Time) []models.SampleReading {
	query := `
		SELECT ` + readingColumns + `
		FROM sample_readings
		WHERE timestamp BETWEEN $1 AND $2
		ORDER BY timestamp ASC`

	return s.queryReadings(query, start, end)
}

// GetReadingCount returns the total number of readings stored
func (s *DatabaseStore) GetReadingCount() int {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM sample_readings").Scan(&count)
	if err != nil {
		log.Printf("❌ Error getting reading count: %v", err)
		return 0
	}
	return count
}

// GetActiveStations returns the IDs of all active stations
func (s *DatabaseStore) GetActiveStations() []string {
	query := `SELECT station_id FROM station_status WHERE is_active = true ORDER BY station_id`

	rows, err := s.db.Query(query)
	if err != nil {
		log.Printf("❌ Error getting active stations: %v", err)
		return []string{}
	}
	defer rows.Close()

	var stations []string
	for rows.Next() {
		var stationID string
		if err := rows.Scan(&stationID); err != nil {
			continue
		}
		stations = append(stations, stationID)
	}

	return stations
}

// GetLatestAssessment returns the WQI assessment for the latest reading
func (s *DatabaseStore) GetLatestAssessment() (*models.StationAssessment, bool) {
	reading, exists := s.GetLatestReading()
	if !exists {
		return nil, false
	}

	assessment := reading.Assess()
	return &assessment, true
}

// GetLatestAssessmentByStation returns the WQI assessment for a station's latest reading
func (s *DatabaseStore) GetLatestAssessmentByStation(stationID string) (*models.StationAssessment, bool) {
	reading, exists := s.GetLatestReadingByStation(stationID)
	if !exists {
		return nil, false
	}

	assessment := reading.Assess()
	return &assessment, true
}

// GetAllLatestAssessments returns the WQI assessment for every station's latest reading
func (s *DatabaseStore) GetAllLatestAssessments() []models.StationAssessment {
	latest := s.GetAllLatestReadingsByStation()

	assessments := make([]models.StationAssessment, 0, len(latest))
	for _, reading := range latest {
		assessments = append(assessments, reading.Assess())
	}

	return assessments
}

// AddWQISnapshot stores a periodic WQI snapshot. The sub-indices and
// labels are denormalized into columns so reports can query them
// without re-running the engine.
func (s *DatabaseStore) AddWQISnapshot(assessment models.StationAssessment) {
	query := `
		INSERT INTO wqi_snapshots (station_id, timestamp,
			dissolved_oxygen, fecal_coliform, ph, bod, temperature,
			wqi, classification, cpcb_class, mpcb_class, status,
			do_sub_index, fc_sub_index, ph_sub_index, bod_sub_index, is_valid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	var temperature sql.NullFloat64
	if assessment.Reading.Temperature != nil {
		temperature = sql.NullFloat64{Float64: *assessment.Reading.Temperature, Valid: true}
	}

	_, err := s.db.Exec(query, assessment.StationID, assessment.Timestamp,
		assessment.Reading.DissolvedOxygen, assessment.Reading.FecalColiform,
		assessment.Reading.Ph, assessment.Reading.Bod, temperature,
		assessment.Result.WQI, assessment.Result.Classification,
		assessment.Result.CPCBClass, assessment.Result.MPCBClass, assessment.Result.Status,
		assessment.Result.SubIndices.DissolvedOxygen, assessment.Result.SubIndices.FecalColiform,
		assessment.Result.SubIndices.Ph, assessment.Result.SubIndices.Bod,
		assessment.Validation.IsValid)
	if err != nil {
		log.Printf("❌ Error storing WQI snapshot: %v", err)
	}
}

// querySnapshots runs a wqi_snapshots query and rebuilds assessments
// from the stored sample parameters. The engine is deterministic, so
// re-assessing reproduces the stored scores exactly.
func (s *DatabaseStore) querySnapshots(query string, args ...interface{}) []models.StationAssessment {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Printf("❌ Error querying WQI snapshots: %v", err)
		return []models.StationAssessment{}
	}
	defer rows.Close()

	var assessments []models.StationAssessment
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			log.Printf("⚠️  Warning: Error scanning snapshot: %v", err)
			continue
		}
		assessments = append(assessments, reading.Assess())
	}

	return assessments
}

// GetRecentSnapshots returns the most recent N WQI snapshots
func (s *DatabaseStore) GetRecentSnapshots(limit int) []models.StationAssessment {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + readingColumns + `
		FROM wqi_snapshots
		ORDER BY timestamp DESC
		LIMIT $1`

	return s.querySnapshots(query, limit)
}

// GetSnapshotsByStation returns the most recent N snapshots for a specific station
func (s *DatabaseStore) GetSnapshotsByStation(stationID string, limit int) []models.StationAssessment {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + readingColumns + `
		FROM wqi_snapshots
		WHERE station_id = $1
		ORDER BY timestamp DESC
		LIMIT $2`

	return s.querySnapshots(query, stationID, limit)
}
