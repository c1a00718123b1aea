// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"sync"
	"time"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/metrics"
)

type stubMetricsCollection struct{}

func (s stubMetricsCollection) AddRoomFormed(gameID string, ready bool) {
}

func (s stubMetricsCollection) AddNotReadySeats(gameID string, role string, reason string, seats int) {
}

func (s stubMetricsCollection) AddElapsedTimeMs(gameID, function string, elapsedTime time.Duration) {
}

func (s stubMetricsCollection) SetQueueWaitSeconds(gameID string, seconds float64) {
}

func (s stubMetricsCollection) AddStandInSeat(gameID string, outcome string) {
}

func NewMetrics() metrics.MatchmakingMetrics {
	return stubMetricsCollection{}
}

// RecordingMetrics keeps counters in memory so tests can assert on them.
type RecordingMetrics struct {
	mu              sync.Mutex
	RoomsReady      int
	RoomsNotReady   int
	NotReadySeats   map[string]int
	StandInSeats    map[string]int
	Functions       []string
	QueueWaitByGame map[string]float64
}

func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{
		NotReadySeats:   map[string]int{},
		StandInSeats:    map[string]int{},
		QueueWaitByGame: map[string]float64{},
	}
}

func (r *RecordingMetrics) AddRoomFormed(gameID string, ready bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ready {
		r.RoomsReady++
	} else {
		r.RoomsNotReady++
	}
}

// AddNotReadySeats keys seats by "role/reason".
func (r *RecordingMetrics) AddNotReadySeats(gameID string, role string, reason string, seats int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.NotReadySeats[role+"/"+reason] += seats
}

func (r *RecordingMetrics) AddElapsedTimeMs(gameID, function string, elapsedTime time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Functions = append(r.Functions, function)
}

func (r *RecordingMetrics) SetQueueWaitSeconds(gameID string, seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.QueueWaitByGame[gameID] = seconds
}

func (r *RecordingMetrics) AddStandInSeat(gameID string, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.StandInSeats[outcome]++
}
