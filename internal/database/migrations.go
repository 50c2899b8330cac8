package database

import (
	"database/sql"
	"fmt"
	"log"
)

// CreateTables creates all necessary tables for the RiverWatch system
func CreateTables(db *sql.DB) error {
	log.Println("Creating database tables...")

	// Create sample_readings table - stores raw samples from monitoring stations
	sampleReadingsTable := `
	CREATE TABLE IF NOT EXISTS sample_readings (
		id SERIAL PRIMARY KEY,
		station_id VARCHAR(100) NOT NULL,
		timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		dissolved_oxygen DECIMAL(10,3) NOT NULL,
		fecal_coliform DECIMAL(14,2) NOT NULL,
		ph DECIMAL(5,2) NOT NULL,
		bod DECIMAL(10,3) NOT NULL,
		temperature DECIMAL(6,2),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CONSTRAINT unique_station_timestamp UNIQUE(station_id, timestamp)
	);`

	if _, err := db.Exec(sampleReadingsTable); err != nil {
		return fmt.Errorf("failed to create sample_readings table: %w", err)
	}

	// Create station_status table - tracks which stations are reporting
	stationStatusTable := `
	CREATE TABLE IF NOT EXISTS station_status (
		id SERIAL PRIMARY KEY,
		station_id VARCHAR(100) UNIQUE NOT NULL,
		last_seen TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		is_active BOOLEAN DEFAULT true,
		total_readings INTEGER DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	if _, err := db.Exec(stationStatusTable); err != nil {
		return fmt.Errorf("failed to create station_status table: %w", err)
	}

	// Create wqi_snapshots table - periodic WQI assessments written by the snapshot job.
	// Sub-indices are stored alongside the aggregate so every score stays auditable.
	wqiSnapshotsTable := `
	CREATE TABLE IF NOT EXISTS wqi_snapshots (
		id SERIAL PRIMARY KEY,
		station_id VARCHAR(100) NOT NULL,
		timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		dissolved_oxygen DECIMAL(10,3) NOT NULL,
		fecal_coliform DECIMAL(14,2) NOT NULL,
		ph DECIMAL(5,2) NOT NULL,
		bod DECIMAL(10,3) NOT NULL,
		temperature DECIMAL(6,2),
		wqi DECIMAL(6,3) NOT NULL CHECK (wqi >= 0 AND wqi <= 100),
		classification VARCHAR(50) NOT NULL,
		cpcb_class VARCHAR(10) NOT NULL,
		mpcb_class VARCHAR(10) NOT NULL,
		status VARCHAR(50) NOT NULL,
		do_sub_index DECIMAL(6,3) NOT NULL,
		fc_sub_index DECIMAL(6,3) NOT NULL,
		ph_sub_index DECIMAL(6,3) NOT NULL,
		bod_sub_index DECIMAL(6,3) NOT NULL,
		is_valid BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	if _, err := db.Exec(wqiSnapshotsTable); err != nil {
		return fmt.Errorf("failed to create wqi_snapshots table: %w", err)
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_sample_readings_timestamp ON sample_readings(timestamp DESC);",
		"CREATE INDEX IF NOT EXISTS idx_sample_readings_station_id ON sample_readings(station_id);",
		"CREATE INDEX IF NOT EXISTS idx_station_status_station_id ON station_status(station_id);",
		"CREATE INDEX IF NOT EXISTS idx_wqi_snapshots_station_id ON wqi_snapshots(station_id);",
		"CREATE INDEX IF NOT EXISTS idx_wqi_snapshots_timestamp ON wqi_snapshots(timestamp DESC);",
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
		}
	}

	log.Println("✅ Database tables created successfully")
	return nil
}

// DropTables drops all tables (useful for testing)
func DropTables(db *sql.DB) error {
	log.Println("Dropping database tables...")

	tables := []string{
		"wqi_snapshots",
		"sample_readings",
		"station_status",
	}

	for _, table := range tables {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;", table)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	log.Println("✅ Database tables dropped successfully")
	return nil
}

// CheckTablesExist checks if all required tables exist
func CheckTablesExist(db *sql.DB) error {
	requiredTables := []string{
		"sample_readings",
		"station_status",
		"wqi_snapshots",
	}

	for _, table := range requiredTables {
		var exists bool
		query := `SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = $1
		);`

		err := db.QueryRow(query, table).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}

		if !exists {
			return fmt.Errorf("table %s does not exist", table)
		}
	}

	log.Println("✅ All required tables exist")
	return nil
}
