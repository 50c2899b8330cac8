package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/RiverWatch-MH/riverwatch_backend/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportService handles data export functionality
type ExportService struct{}

// NewExportService creates a new export service instance
func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportData represents data to be exported
type ExportData struct {
	SampleReadings []models.SampleReading
	Assessments    []models.StationAssessment
	ExportMetadata ExportMetadata
}

// ExportMetadata contains information about the export
type ExportMetadata struct {
	GeneratedAt   time.Time `json:"generated_at"`
	DateRange     string    `json:"date_range"`
	TotalReadings int       `json:"total_readings"`
	Stations      []string  `json:"stations"`
}

// GenerateExcel creates an Excel file with monitoring history
func (es *ExportService) GenerateExcel(data ExportData) (*excelize.File, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Println(err)
		}
	}()

	// Set document properties
	f.SetDocProps(&excelize.DocProperties{
		Category:       "RiverWatch Water Quality Monitoring",
		ContentStatus:  "Draft",
		Created:        data.ExportMetadata.GeneratedAt.Format(time.RFC3339),
		Creator:        "RiverWatch System",
		Description:    "River water quality history and WQI assessment export",
		LastModifiedBy: "RiverWatch Backend",
		Modified:       data.ExportMetadata.GeneratedAt.Format(time.RFC3339),
		Subject:        "Water Quality Index History",
		Title:          "RiverWatch Monitoring Report",
		Version:        "1.0",
	})

	// Create Summary sheet
	es.createSummarySheet(f, data)

	// Create Sample Data sheet
	es.createSampleDataSheet(f, data.SampleReadings)

	// Create WQI Assessments sheet
	es.createAssessmentSheet(f, data.Assessments)

	// Set active sheet to Summary
	f.SetActiveSheet(0)

	return f, nil
}

// createSummarySheet creates the summary overview sheet
func (es *ExportService) createSummarySheet(f *excelize.File, data ExportData) error {
	sheetName := "Summary"
	f.SetSheetName("Sheet1", sheetName)

	// Header styling
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// Title
	f.SetCellValue(sheetName, "A1", "RiverWatch Water Quality Report")
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "D1", headerStyle)
	f.SetRowHeight(sheetName, 1, 25)

	// Export metadata
	f.SetCellValue(sheetName, "A3", "Generated At:")
	f.SetCellValue(sheetName, "B3", data.ExportMetadata.GeneratedAt.Format("2006-01-02 15:04:05"))
	f.SetCellValue(sheetName, "A4", "Date Range:")
	f.SetCellValue(sheetName, "B4", data.ExportMetadata.DateRange)
	f.SetCellValue(sheetName, "A5", "Total Readings:")
	f.SetCellValue(sheetName, "B5", data.ExportMetadata.TotalReadings)

	// Statistics
	f.SetCellValue(sheetName, "A7", "System Statistics")
	f.SetCellStyle(sheetName, "A7", "A7", headerStyle)

	f.SetCellValue(sheetName, "A8", "Total Sample Readings:")
	f.SetCellValue(sheetName, "B8", len(data.SampleReadings))
	f.SetCellValue(sheetName, "A9", "WQI Assessments:")
	f.SetCellValue(sheetName, "B9", len(data.Assessments))
	f.SetCellValue(sheetName, "A10", "Stations:")
	f.SetCellValue(sheetName, "B10", len(data.ExportMetadata.Stations))

	// Column widths
	f.SetColWidth(sheetName, "A", "A", 22)
	f.SetColWidth(sheetName, "B", "D", 15)

	return nil
}

// createSampleDataSheet creates the raw sample readings sheet
func (es *ExportService) createSampleDataSheet(f *excelize.File, readings []models.SampleReading) error {
	sheetName := "Sample Data"
	f.NewSheet(sheetName)

	// Headers
	headers := []string{"Timestamp", "Station", "DO (mg/l)", "FC (MPN/100ml)", "pH", "BOD (mg/l)", "Temperature (°C)"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// Header styling
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"70AD47"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	f.SetCellStyle(sheetName, "A1", "G1", headerStyle)

	// Data rows
	for i, reading := range readings {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), reading.Timestamp.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), reading.StationID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), reading.DissolvedOxygen)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), reading.FecalColiform)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), reading.Ph)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), reading.Bod)
		if reading.Temperature != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), *reading.Temperature)
		} else {
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), "n/a")
		}
	}

	// Format columns
	f.SetColWidth(sheetName, "A", "B", 20)
	f.SetColWidth(sheetName, "C", "G", 14)

	return nil
}

// createAssessmentSheet creates the WQI assessments sheet
func (es *ExportService) createAssessmentSheet(f *excelize.File, assessments []models.StationAssessment) error {
	sheetName := "WQI Assessments"
	f.NewSheet(sheetName)

	// Headers
	headers := []string{"Timestamp", "Station", "WQI", "Classification", "CPCB Class", "MPCB Class", "Status",
		"DO Sub-Index", "FC Sub-Index", "pH Sub-Index", "BOD Sub-Index", "Plausible"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// Header styling
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"7030A0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	f.SetCellStyle(sheetName, "A1", "L1", headerStyle)

	// Data rows
	for i, assessment := range assessments {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), assessment.Timestamp.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), assessment.StationID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), assessment.Result.WQI)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), assessment.Result.Classification)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), assessment.Result.CPCBClass)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), assessment.Result.MPCBClass)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), assessment.Result.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), assessment.Result.SubIndices.DissolvedOxygen)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), assessment.Result.SubIndices.FecalColiform)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), assessment.Result.SubIndices.Ph)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), assessment.Result.SubIndices.Bod)
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), assessment.Validation.IsValid)
	}

	// Format columns
	f.SetColWidth(sheetName, "A", "B", 20)
	f.SetColWidth(sheetName, "C", "L", 13)

	return nil
}

// GenerateCSV creates CSV data for scored sample history
func (es *ExportService) GenerateCSV(assessments []models.StationAssessment) ([][]string, error) {
	// CSV headers
	records := [][]string{
		{"Timestamp", "Station", "DO (mg/l)", "FC (MPN/100ml)", "pH", "BOD (mg/l)", "Temperature (°C)",
			"WQI", "Classification", "CPCB Class", "MPCB Class", "Status"},
	}

	// Add data rows
	for _, assessment := range assessments {
		temperature := ""
		if assessment.Reading.Temperature != nil {
			temperature = strconv.FormatFloat(*assessment.Reading.Temperature, 'f', 1, 64)
		}

		record := []string{
			assessment.Timestamp.Format("2006-01-02 15:04:05"),
			assessment.StationID,
			strconv.FormatFloat(assessment.Reading.DissolvedOxygen, 'f', 2, 64),
			strconv.FormatFloat(assessment.Reading.FecalColiform, 'f', 0, 64),
			strconv.FormatFloat(assessment.Reading.Ph, 'f', 2, 64),
			strconv.FormatFloat(assessment.Reading.Bod, 'f', 2, 64),
			temperature,
			strconv.FormatFloat(assessment.Result.WQI, 'f', 2, 64),
			assessment.Result.Classification,
			assessment.Result.CPCBClass,
			assessment.Result.MPCBClass,
			assessment.Result.Status,
		}
		records = append(records, record)
	}

	return records, nil
}

// WriteCSV writes CSV data to a writer
func (es *ExportService) WriteCSV(w *csv.Writer, records [][]string) error {
	return w.WriteAll(records)
}
