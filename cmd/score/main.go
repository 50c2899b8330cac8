package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/RiverWatch-MH/riverwatch_backend/internal/export"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/models"
)

// Batch scorer for offline sample files. Input is a CSV with columns
// station_id, timestamp (RFC3339), dissolved_oxygen, fecal_coliform,
// ph, bod and an optional temperature. Output is the scored history in
// the same CSV format the export endpoint serves.
func main() {
	var (
		inPath  = flag.String("in", "", "Input CSV file with raw samples")
		outPath = flag.String("out", "", "Output CSV file (default: stdout)")
		workers = flag.Int("workers", 4, "Number of concurrent scoring workers")
	)
	flag.Parse()

	if *inPath == "" {
		log.Fatal("Usage: score -in samples.csv [-out scored.csv] [-workers 4]")
	}

	readings, err := readSamples(*inPath)
	if err != nil {
		log.Fatalf("❌ Failed to read samples: %v", err)
	}
	log.Printf("📥 Read %d sample(s) from %s", len(readings), *inPath)

	assessments := scoreAll(readings, *workers)

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("❌ Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	exportService := export.NewExportService()
	records, err := exportService.GenerateCSV(assessments)
	if err != nil {
		log.Fatalf("❌ Failed to generate CSV: %v", err)
	}

	writer := csv.NewWriter(out)
	if err := exportService.WriteCSV(writer, records); err != nil {
		log.Fatalf("❌ Failed to write CSV: %v", err)
	}

	if *outPath != "" {
		log.Printf("✅ Wrote %d scored sample(s) to %s", len(assessments), *outPath)
	}
}

// readSamples parses the input CSV into sample readings. A header row
// starting with "station_id" is skipped.
func readSamples(path string) ([]models.SampleReading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // Temperature column is optional

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var readings []models.SampleReading
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == "station_id" {
			continue
		}
		if len(row) != 6 && len(row) != 7 {
			return nil, fmt.Errorf("row %d: expected 6 or 7 columns, got %d", i+1, len(row))
		}

		timestamp, err := time.Parse(time.RFC3339, row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp %q: %w", i+1, row[1], err)
		}

		values := make([]float64, 0, 5)
		for _, field := range row[2:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid value %q: %w", i+1, field, err)
			}
			values = append(values, v)
		}

		reading := models.SampleReading{
			StationID:       row[0],
			Timestamp:       timestamp,
			DissolvedOxygen: values[0],
			FecalColiform:   values[1],
			Ph:              values[2],
			Bod:             values[3],
		}
		if len(values) == 5 {
			temperature := values[4]
			reading.Temperature = &temperature
		}

		readings = append(readings, reading)
	}

	return readings, nil
}

// scoreAll assesses every reading using a fixed worker pool, preserving
// input order in the output.
func scoreAll(readings []models.SampleReading, workers int) []models.StationAssessment {
	if workers <= 0 {
		workers = 1
	}

	assessments := make([]models.StationAssessment, len(readings))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				assessments[i] = readings[i].Assess()
			}
		}()
	}

	for i := range readings {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	flagged := 0
	for _, assessment := range assessments {
		if !assessment.Validation.IsValid {
			flagged++
		}
	}
	if flagged > 0 {
		log.Printf("⚠️  %d sample(s) outside plausible parameter ranges", flagged)
	}

	return assessments
}
