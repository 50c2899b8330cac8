package services

import (
	"log"
	"sync"
	"time"

	"github.com/RiverWatch-MH/riverwatch_backend/internal/store"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/ws"
)

// SnapshotJob periodically re-assesses the latest reading of every
// active station and persists the WQI snapshot. Each assessment is a
// pure engine call, so one pass over all stations holds no locks
// between stations.
type SnapshotJob struct {
	store     store.DataStore
	wsHub     *ws.Hub
	interval  time.Duration
	ticker    *time.Ticker
	stopChan  chan bool
	mu        sync.RWMutex
	isRunning bool
	lastRun   time.Time
}

// NewSnapshotJob creates a new snapshot job instance
func NewSnapshotJob(dataStore store.DataStore, wsHub *ws.Hub, interval time.Duration) *SnapshotJob {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	return &SnapshotJob{
		store:    dataStore,
		wsHub:    wsHub,
		interval: interval,
		// Buffered so Stop never blocks while holding the mutex
		stopChan: make(chan bool, 1),
	}
}

// Start begins the snapshot background process
func (j *SnapshotJob) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.isRunning {
		log.Println("⚠️  Snapshot job: Already running")
		return
	}

	j.ticker = time.NewTicker(j.interval)
	j.isRunning = true

	log.Printf("🕐 Snapshot job: Started - assessing stations every %s", j.interval)

	go j.run()
}

// Stop halts the snapshot job
func (j *SnapshotJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.isRunning {
		return
	}

	j.ticker.Stop()
	j.stopChan <- true
	j.isRunning = false

	log.Println("🛑 Snapshot job: Stopped")
}

// run is the main snapshot loop
func (j *SnapshotJob) run() {
	// Take an initial snapshot on start
	j.TakeSnapshots()

	for {
		select {
		case <-j.ticker.C:
			j.TakeSnapshots()
		case <-j.stopChan:
			return
		}
	}
}

// TakeSnapshots assesses the latest reading of every active station,
// persists the snapshots and broadcasts them to WebSocket clients.
func (j *SnapshotJob) TakeSnapshots() int {
	assessments := j.store.GetAllLatestAssessments()
	if len(assessments) == 0 {
		return 0
	}

	for _, assessment := range assessments {
		j.store.AddWQISnapshot(assessment)

		if !assessment.Validation.IsValid {
			log.Printf("⚠️  Snapshot job: Station %s reading out of plausible range: %v",
				assessment.StationID, assessment.Validation.Issues)
		}

		if j.wsHub != nil {
			j.wsHub.BroadcastAssessment(&assessment)
		}
	}

	j.mu.Lock()
	j.lastRun = time.Now()
	j.mu.Unlock()

	log.Printf("✅ Snapshot job: Assessed %d station(s)", len(assessments))
	return len(assessments)
}

// IsRunning returns whether the snapshot job is currently running
func (j *SnapshotJob) IsRunning() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.isRunning
}

// LastRun returns when snapshots were last taken
func (j *SnapshotJob) LastRun() time.Time {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.lastRun
}
