package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionStats tracks statistics about a schedule ingestion run
type IngestionStats struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	DatesFetched     int
	TotalGames       int
	UpsertedGames    int
	ValidationErrors int
	Errors           int
}

// NewIngestionStats creates a new stats tracker
func NewIngestionStats() *IngestionStats {
	return &IngestionStats{
		StartTime: time.Now(),
	}
}

// Reset resets all counters
func (s *IngestionStats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.StartTime = time.Now()
	s.Duration = 0
	s.DatesFetched = 0
	s.TotalGames = 0
	s.UpsertedGames = 0
	s.ValidationErrors = 0
	s.Errors = 0
}

// RecordDate increments the fetched-date count
func (s *IngestionStats) RecordDate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DatesFetched++
}

// RecordGame increments the seen-game count
func (s *IngestionStats) RecordGame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalGames++
}

// RecordUpsert increments the upserted-game count
func (s *IngestionStats) RecordUpsert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpsertedGames++
}

// RecordValidationError increments the validation error count
func (s *IngestionStats) RecordValidationError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ValidationErrors++
}

// RecordError increments the error count
func (s *IngestionStats) RecordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors++
}

// String returns a formatted string representation of the run
func (s *IngestionStats) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	upsertRate := float64(0)
	if s.TotalGames > 0 {
		upsertRate = float64(s.UpsertedGames) / float64(s.TotalGames) * 100
	}

	return fmt.Sprintf(
		"IngestionStats{Dates=%d, Games=%d, Upserted=%d (%.1f%%), ValidationErrors=%d, Errors=%d, Duration=%v}",
		s.DatesFetched,
		s.TotalGames,
		s.UpsertedGames,
		upsertRate,
		s.ValidationErrors,
		s.Errors,
		s.Duration,
	)
}
