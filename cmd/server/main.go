package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/RiverWatch-MH/riverwatch_backend/config"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/database"
	httphandlers "github.com/RiverWatch-MH/riverwatch_backend/internal/http"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/models"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/mqtt"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/services"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/store"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/ws"
)

func main() {
	log.Println("🌊 Starting RiverWatch Water Quality Monitoring Backend...")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found: %v", err)
	} else {
		log.Println("✅ Loaded .env file")
	}

	// Load configuration
	cfg := config.Load()
	log.Printf("📋 Loaded configuration: Server port=%s, DB host=%s",
		cfg.Server.Port, cfg.Database.Host)

	// Initialize data store with PostgreSQL or fallback to in-memory
	var dataStore store.DataStore

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to connect to database: %v", err)
		log.Println("📱 Falling back to in-memory storage")
		// Fallback to in-memory store
		dataStore = store.NewStore(1000)
		log.Println("💾 Initialized in-memory data store")
	} else {
		log.Println("✅ Connected to PostgreSQL database")

		if err := database.CreateTables(db.DB); err != nil {
			log.Fatalf("❌ Failed to create database tables: %v", err)
		}

		// Use database store
		dataStore = database.NewDatabaseStore(db.DB)
		log.Println("💾 Initialized database data store with PostgreSQL")
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()
	log.Println("🔌 Started WebSocket hub")

	// Initialize MQTT client (skip if no broker URL configured)
	var mqttClient *mqtt.Client
	if cfg.MQTT.BrokerURL != "" && cfg.MQTT.BrokerURL != "tcp://localhost:1883" {
		log.Println("📡 Attempting to connect to MQTT broker...")

		mqttClient = mqtt.NewClient(&mqtt.Config{
			BrokerURL:    cfg.MQTT.BrokerURL,
			ClientID:     cfg.MQTT.ClientID,
			Username:     cfg.MQTT.Username,
			Password:     cfg.MQTT.Password,
			TopicSamples: cfg.MQTT.TopicSamples,
			KeepAlive:    cfg.MQTT.KeepAlive,
			PingTimeout:  cfg.MQTT.PingTimeout,
			ConnectRetry: cfg.MQTT.ConnectRetry,
		})

		// Every parsed sample is stored, scored and broadcast. Implausible
		// samples are stored too, with the advisory issues attached.
		mqttClient.SetDataHandler(func(reading *models.SampleReading) {
			dataStore.AddSampleReading(*reading)
			wsHub.BroadcastSampleReading(reading)

			assessment := reading.Assess()
			wsHub.BroadcastAssessment(&assessment)
		})
		mqttClient.SetErrorHandler(func(err error) {
			wsHub.BroadcastError(err.Error())
		})

		if err := mqttClient.Connect(); err != nil {
			log.Printf("⚠️  Warning: Failed to connect to MQTT broker: %v", err)
			log.Println("📡 Continuing without MQTT support")
			mqttClient = nil
		} else {
			if err := mqttClient.SubscribeToSampleData(); err != nil {
				log.Printf("⚠️  Warning: Failed to subscribe to sample topics: %v", err)
			}
			log.Printf("📡 MQTT client connected - Broker: %s", cfg.MQTT.BrokerURL)
			defer mqttClient.Disconnect()
		}
	} else {
		log.Println("📡 MQTT broker not configured, skipping MQTT initialization")
	}

	// Initialize and start the periodic WQI snapshot job
	var snapshotJob *services.SnapshotJob
	if cfg.Snapshot.Enabled {
		snapshotJob = services.NewSnapshotJob(dataStore, wsHub, cfg.Snapshot.Interval)
		snapshotJob.Start()
	} else {
		log.Println("🕐 Snapshot job disabled by configuration")
	}

	// Setup HTTP routes
	router := httphandlers.SetupRoutes(dataStore, wsHub)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Printf("🚀 Starting HTTP server on port %s", cfg.Server.Port)
		log.Println("📡 API endpoints available:")
		log.Println("  GET /api/v1/stats - System statistics")
		log.Println("  POST /api/v1/wqi/compute - Score a sample without storing it")
		log.Println("  POST /api/v1/wqi/validate - Check a sample against plausible ranges")
		log.Println("  GET /api/v1/samples/latest - Latest readings from all stations")
		log.Println("  GET /api/v1/samples/recent?limit=50 - Recent readings")
		log.Println("  GET /api/v1/samples/history - Historical data in time range")
		log.Println("  GET /api/v1/samples/quality - WQI assessments for latest readings")
		log.Println("  GET /api/v1/samples/snapshots - Periodic WQI snapshots")
		log.Println("  POST /api/v1/samples/data - Add sample data (testing)")
		log.Println("  GET /api/v1/stations - List active stations")
		log.Println("  GET /api/v1/stations/{stationID}/latest - Latest assessment for a station")
		log.Println("  GET /api/v1/stations/{stationID}/readings - All readings for a station")
		log.Println("  GET /api/v1/export/history.xlsx - Export history to Excel")
		log.Println("  GET /api/v1/export/history.csv - Export history to CSV")
		log.Println("  WS /ws - WebSocket for real-time updates")
		log.Printf("🌐 Server running at http://localhost:%s", cfg.Server.Port)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ HTTP server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	// Stop snapshot job
	if snapshotJob != nil {
		snapshotJob.Stop()
	}

	// Shutdown HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server shutdown complete")
}
