package http

import (
	"github.com/RiverWatch-MH/riverwatch_backend/internal/store"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all HTTP routes for the river monitoring API
func SetupRoutes(dataStore store.DataStore, wsHub *ws.Hub) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // In production, specify allowed origins
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handlers
	handlers := NewHandlers(dataStore, wsHub)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// System stats
		r.Get("/stats", handlers.GetSystemStats)

		// WQI engine routes (stateless scoring)
		r.Route("/wqi", func(r chi.Router) {
			// Score a sample without storing it
			r.Post("/compute", handlers.ComputeWQI)

			// Check a sample against plausible parameter ranges
			r.Post("/validate", handlers.ValidateSample)
		})

		// Sample data routes
		r.Route("/samples", func(r chi.Router) {
			// Latest readings
			r.Get("/latest", handlers.GetLatestReadings)

			// Recent readings with optional filtering
			r.Get("/recent", handlers.GetRecentReadings)

			// Historical data in time range
			r.Get("/history", handlers.GetReadingsInRange)

			// WQI assessments for latest readings
			r.Get("/quality", handlers.GetWaterQuality)

			// Periodic WQI snapshots
			r.Get("/snapshots", handlers.GetSnapshots)

			// Add sample data manually (for testing)
			r.Post("/data", handlers.AddSampleData)
		})

		// Station routes
		r.Route("/stations", func(r chi.Router) {
			r.Get("/", handlers.GetStations)                            // List active stations
			r.Get("/{stationID}/latest", handlers.GetStationLatest)     // Latest assessment for a station
			r.Get("/{stationID}/readings", handlers.GetStationReadings) // All readings for a station
		})

		// Export routes for data history
		r.Route("/export", func(r chi.Router) {
			r.Get("/history.xlsx", handlers.ExportHistoryExcel)
			r.Get("/history.csv", handlers.ExportHistoryCSV)
		})
	})

	// WebSocket route for real-time updates
	r.HandleFunc("/ws", wsHub.HandleWebSocket)

	return r
}
