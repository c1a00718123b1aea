// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type MatchmakingMetrics interface {
	AddRoomFormed(gameID string, ready bool)
	AddNotReadySeats(gameID string, role string, reason string, seats int)
	AddElapsedTimeMs(gameID, function string, elapsedTime time.Duration)
	SetQueueWaitSeconds(gameID string, seconds float64)
	AddStandInSeat(gameID string, outcome string)
}

func NewMetrics(registry *prometheus.Registry) MatchmakingMetrics {
	return setupPrometheusMetrics(registry)
}
