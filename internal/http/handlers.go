package http

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/RiverWatch-MH/riverwatch_backend/internal/export"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/models"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/store"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/wqi"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/ws"
	"github.com/go-chi/chi/v5"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	store         store.DataStore
	wsHub         *ws.Hub
	exportService *export.ExportService
}

// NewHandlers creates a new handlers instance
func NewHandlers(dataStore store.DataStore, wsHub *ws.Hub) *Handlers {
	return &Handlers{
		store:         dataStore,
		wsHub:         wsHub,
		exportService: export.NewExportService(),
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// sendJSONResponse sends a standardized success response
func (h *Handlers) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// sendErrorResponse sends a standardized error response
func (h *Handlers) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	response := APIResponse{
		Success: false,
		Error:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// ComputeWQI scores a single sample without storing it.
// Endpoint: POST /api/v1/wqi/compute
func (h *Handlers) ComputeWQI(w http.ResponseWriter, r *http.Request) {
	var request models.SampleData
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.sendErrorResponse(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	reading := wqi.Reading{
		DissolvedOxygen: request.DissolvedOxygen,
		FecalColiform:   request.FecalColiform,
		Ph:              request.Ph,
		Bod:             request.Bod,
		Temperature:     request.Temperature,
	}

	// Scoring is total: implausible values are flagged, never rejected
	h.sendJSONResponse(w, map[string]interface{}{
		"result":     wqi.Compute(reading),
		"validation": wqi.Validate(reading),
	})
}

// ValidateSample checks a sample against plausible parameter ranges.
// Endpoint: POST /api/v1/wqi/validate
func (h *Handlers) ValidateSample(w http.ResponseWriter, r *http.Request) {
	var request models.SampleData
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.sendErrorResponse(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	reading := wqi.Reading{
		DissolvedOxygen: request.DissolvedOxygen,
		FecalColiform:   request.FecalColiform,
		Ph:              request.Ph,
		Bod:             request.Bod,
		Temperature:     request.Temperature,
	}

	h.sendJSONResponse(w, wqi.Validate(reading))
}

// AddSampleData handles POST requests to manually add sample data (for testing)
func (h *Handlers) AddSampleData(w http.ResponseWriter, r *http.Request) {
	var request struct {
		StationID       string   `json:"station_id"`
		DissolvedOxygen float64  `json:"dissolved_oxygen"`
		FecalColiform   float64  `json:"fecal_coliform"`
		Ph              float64  `json:"ph"`
		Bod             float64  `json:"bod"`
		Temperature     *float64 `json:"temperature,omitempty"`
	}

	// Parse request body
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if request.StationID == "" {
		h.sendErrorResponse(w, "station_id is required", http.StatusBadRequest)
		return
	}

	// Create sample reading
	reading := models.SampleReading{
		StationID:       request.StationID,
		Timestamp:       time.Now(),
		DissolvedOxygen: request.DissolvedOxygen,
		FecalColiform:   request.FecalColiform,
		Ph:              request.Ph,
		Bod:             request.Bod,
		Temperature:     request.Temperature,
	}

	// Store the reading. Implausible values are stored and flagged, the
	// validator is advisory and never blocks ingestion.
	h.store.AddSampleReading(reading)

	if h.wsHub != nil {
		h.wsHub.BroadcastSampleReading(&reading)
	}

	validation := reading.Validate()

	response := APIResponse{
		Success: true,
		Message: "Sample data added successfully",
		Data: map[string]interface{}{
			"reading":    reading,
			"validation": validation,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetLatestReadings returns the latest sample readings (optionally filtered by station)
func (h *Handlers) GetLatestReadings(w http.ResponseWriter, r *http.Request) {
	stationID := r.URL.Query().Get("station_id")

	// If station_id is specified, return the reading for that station
	if stationID != "" {
		reading, exists := h.store.GetLatestReadingByStation(stationID)
		if !exists {
			h.sendErrorResponse(w, "No sample data available for specified station", http.StatusNotFound)
			return
		}

		h.sendJSONResponse(w, reading)
		return
	}

	// Return the latest reading for every station
	readings := h.store.GetAllLatestReadingsByStation()

	h.sendJSONResponse(w, readings)
}

// GetRecentReadings returns recent sample readings (optionally filtered by station)
func (h *Handlers) GetRecentReadings(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	stationID := r.URL.Query().Get("station_id")

	limit := 50 // Default limit
	if limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	var readings []models.SampleReading
	if stationID != "" {
		readings = h.store.GetRecentReadingsByStation(stationID, limit)
	} else {
		readings = h.store.GetRecentReadings(limit)
	}

	h.sendJSONResponse(w, readings)
}

// GetReadingsInRange returns sample readings within a time range
func (h *Handlers) GetReadingsInRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		h.sendErrorResponse(w, "Both start and end time parameters are required", http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		h.sendErrorResponse(w, "Invalid start time format. Use RFC3339 format", http.StatusBadRequest)
		return
	}

	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		h.sendErrorResponse(w, "Invalid end time format. Use RFC3339 format", http.StatusBadRequest)
		return
	}

	if end.Before(start) {
		h.sendErrorResponse(w, "End time must be after start time", http.StatusBadRequest)
		return
	}

	readings := h.store.GetReadingsInRange(start, end)

	h.sendJSONResponse(w, readings)
}

// GetWaterQuality returns WQI assessments for the latest readings
// (optionally filtered by station)
func (h *Handlers) GetWaterQuality(w http.ResponseWriter, r *http.Request) {
	stationID := r.URL.Query().Get("station_id")

	if stationID != "" {
		assessment, exists := h.store.GetLatestAssessmentByStation(stationID)
		if !exists {
			h.sendErrorResponse(w, "No sample data available for specified station", http.StatusNotFound)
			return
		}

		h.sendJSONResponse(w, assessment)
		return
	}

	assessments := h.store.GetAllLatestAssessments()

	h.sendJSONResponse(w, assessments)
}

// GetSnapshots returns recent WQI snapshots (optionally filtered by station)
func (h *Handlers) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	stationID := r.URL.Query().Get("station_id")

	limit := 50 // Default limit
	if limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	var snapshots []models.StationAssessment
	if stationID != "" {
		snapshots = h.store.GetSnapshotsByStation(stationID, limit)
	} else {
		snapshots = h.store.GetRecentSnapshots(limit)
	}

	h.sendJSONResponse(w, snapshots)
}

// GetStations returns the IDs of all active monitoring stations
func (h *Handlers) GetStations(w http.ResponseWriter, r *http.Request) {
	h.sendJSONResponse(w, h.store.GetActiveStations())
}

// GetStationLatest returns the latest WQI assessment for a specific station
func (h *Handlers) GetStationLatest(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationID")

	assessment, exists := h.store.GetLatestAssessmentByStation(stationID)
	if !exists {
		h.sendErrorResponse(w, "No sample data available for specified station", http.StatusNotFound)
		return
	}

	h.sendJSONResponse(w, assessment)
}

// GetStationReadings returns all readings for a specific station
func (h *Handlers) GetStationReadings(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationID")

	readings := h.store.GetReadingsByStation(stationID)
	if len(readings) == 0 {
		h.sendErrorResponse(w, "No sample data available for specified station", http.StatusNotFound)
		return
	}

	h.sendJSONResponse(w, readings)
}

// GetSystemStats returns system statistics
func (h *Handlers) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]interface{}{
		"total_readings":  h.store.GetReadingCount(),
		"active_stations": len(h.store.GetActiveStations()),
		"server_time":     time.Now(),
	}

	if h.wsHub != nil {
		stats["ws_clients"] = h.wsHub.GetConnectedClientsCount()
	}

	h.sendJSONResponse(w, stats)
}

// exportRange parses the start/end query parameters, defaulting to the
// last 30 days.
func (h *Handlers) exportRange(r *http.Request) (time.Time, time.Time, error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	start := time.Now().AddDate(0, 0, -30)
	end := time.Now()
	var err error

	if startStr != "" {
		start, err = time.Parse(time.RFC3339, startStr)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date format, use RFC3339")
		}
	}

	if endStr != "" {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date format, use RFC3339")
		}
	}

	return start, end, nil
}

// ExportHistoryExcel handles GET requests to export monitoring history as Excel
func (h *Handlers) ExportHistoryExcel(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.exportRange(r)
	if err != nil {
		h.sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	stationID := r.URL.Query().Get("station_id")

	// Get sample readings from the store
	readings := h.store.GetReadingsInRange(start, end)

	// Filter by station if specified
	if stationID != "" {
		filtered := []models.SampleReading{}
		for _, reading := range readings {
			if reading.StationID == stationID {
				filtered = append(filtered, reading)
			}
		}
		readings = filtered
	}

	// Score every reading in the export window
	assessments := make([]models.StationAssessment, 0, len(readings))
	for _, reading := range readings {
		assessments = append(assessments, reading.Assess())
	}

	// Prepare export data
	exportData := export.ExportData{
		SampleReadings: readings,
		Assessments:    assessments,
		ExportMetadata: export.ExportMetadata{
			GeneratedAt:   time.Now(),
			DateRange:     fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
			TotalReadings: len(readings),
			Stations:      h.store.GetActiveStations(),
		},
	}

	// Generate Excel file
	excelFile, err := h.exportService.GenerateExcel(exportData)
	if err != nil {
		h.sendErrorResponse(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	// Set response headers
	filename := fmt.Sprintf("riverwatch_history_%s_to_%s.xlsx",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	// Write Excel file to response
	if err := excelFile.Write(w); err != nil {
		h.sendErrorResponse(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}
}

// ExportHistoryCSV handles GET requests to export scored history as CSV
func (h *Handlers) ExportHistoryCSV(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.exportRange(r)
	if err != nil {
		h.sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	stationID := r.URL.Query().Get("station_id")

	// Get sample readings from the store
	readings := h.store.GetReadingsInRange(start, end)

	// Filter by station if specified
	if stationID != "" {
		filtered := []models.SampleReading{}
		for _, reading := range readings {
			if reading.StationID == stationID {
				filtered = append(filtered, reading)
			}
		}
		readings = filtered
	}

	// Score every reading in the export window
	assessments := make([]models.StationAssessment, 0, len(readings))
	for _, reading := range readings {
		assessments = append(assessments, reading.Assess())
	}

	// Generate CSV data
	csvData, err := h.exportService.GenerateCSV(assessments)
	if err != nil {
		h.sendErrorResponse(w, "Failed to generate CSV data", http.StatusInternalServerError)
		return
	}

	// Set response headers
	filename := fmt.Sprintf("riverwatch_history_%s_to_%s.csv",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	// Write CSV data to response
	csvWriter := csv.NewWriter(w)
	if err := h.exportService.WriteCSV(csvWriter, csvData); err != nil {
		h.sendErrorResponse(w, "Failed to write CSV data", http.StatusInternalServerError)
		return
	}
}
