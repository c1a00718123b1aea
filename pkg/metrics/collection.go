// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	roomsFormed      prometheus.CounterVec
	notReadySeats    prometheus.CounterVec
	elapsedTime      prometheus.HistogramVec
	queueWaitSeconds prometheus.GaugeVec
	standInSeats     prometheus.CounterVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)

	roomsFormed := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rank_mm_rooms_formed_total",
			Help: "Number of candidate rooms formed by the room builder",
		}, []string{"game_id", "ready"})

	notReadySeats := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rank_mm_not_ready_seats_total",
			Help: "Missing seats of not ready rooms grouped by role and reason",
		}, []string{"game_id", "role", "reason"})

	//nolint:promlinter
	elapsedTime := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rank_mm_elapsed_time_ms",
			Help:    "A histogram of matchmaking pipeline steps elapsed time in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"game_id", "function"})

	queueWaitSeconds := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rank_mm_queue_wait_seconds",
			Help: "Wait time of the oldest queued entry",
		}, []string{"game_id"})

	standInSeats := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rank_mm_standin_seats_total",
			Help: "Seats processed by the stand-in resolver grouped by outcome",
		}, []string{"game_id", "outcome"})

	return prometheusMetrics{
		roomsFormed:      *roomsFormed,
		notReadySeats:    *notReadySeats,
		elapsedTime:      *elapsedTime,
		queueWaitSeconds: *queueWaitSeconds,
		standInSeats:     *standInSeats,
	}
}

func (metrics prometheusMetrics) AddRoomFormed(gameID string, ready bool) {
	metrics.roomsFormed.With(prometheus.Labels{"game_id": gameID, "ready": strconv.FormatBool(ready)}).Inc()
}

func (metrics prometheusMetrics) AddNotReadySeats(gameID string, role string, reason string, seats int) {
	if seats <= 0 {
		return
	}
	metrics.notReadySeats.With(prometheus.Labels{"game_id": gameID, "role": role, "reason": reason}).Add(float64(seats))
}

func (metrics prometheusMetrics) AddElapsedTimeMs(gameID, function string, elapsedTime time.Duration) {
	metrics.elapsedTime.With(prometheus.Labels{"game_id": gameID, "function": function}).Observe(float64(elapsedTime.Milliseconds()))
}

func (metrics prometheusMetrics) SetQueueWaitSeconds(gameID string, seconds float64) {
	metrics.queueWaitSeconds.With(prometheus.Labels{"game_id": gameID}).Set(seconds)
}

func (metrics prometheusMetrics) AddStandInSeat(gameID string, outcome string) {
	metrics.standInSeats.With(prometheus.Labels{"game_id": gameID, "outcome": outcome}).Inc()
}
