// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package rankmatchmaker wires the sampler, room builder, readiness reporter and
// stand-in resolver into one matchmaking cycle.
package rankmatchmaker

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/config"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/envelope"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/matchmaker"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/matchmaker/readiness"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/matchmaker/roombuilder"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/matchmaker/sampler"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/matchmaker/standin"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/metrics"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

type RankMatchMaker struct {
	cfg      *config.Config
	metrics  metrics.MatchmakingMetrics
	provider matchmaker.CandidateProvider
	now      func() time.Time
}

// NewRankMatchMaker creates the matchmaker. A nil provider disables stand-in resolution.
func NewRankMatchMaker(cfg *config.Config, metrics metrics.MatchmakingMetrics, provider matchmaker.CandidateProvider) *RankMatchMaker {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			logrus.WithError(err).Warn("unable to load config from environment, using zero config")
			loaded = &config.Config{}
		}
		cfg = loaded
	}
	return &RankMatchMaker{
		cfg:      cfg,
		metrics:  metrics,
		provider: provider,
		now:      time.Now,
	}
}

// MatchRoom runs one cycle. Not-ready rooms are reported as data; an error is only
// returned when the request itself is malformed.
func (mm *RankMatchMaker) MatchRoom(rootScope *envelope.Scope, request matchmaker.MatchRequest) (*matchmaker.MatchOutcome, error) {
	scope := rootScope.NewChildScope("RankMatchMaker.MatchRoom")
	defer scope.Finish()

	scope.SetAttributes(envelope.GameIDTag, request.GameID)
	if request.RoomID != "" {
		scope.SetAttributes(envelope.RoomIDTag, request.RoomID)
	}

	if err := request.Roles.Validate(); err != nil {
		scope.RecordError(err)
		return nil, fmt.Errorf("invalid roles for game %s: %w", request.GameID, err)
	}
	rules := mm.samplerRules(request.Rules)
	if err := rules.Validate(); err != nil {
		scope.RecordError(err)
		return nil, fmt.Errorf("invalid sampler rules for game %s: %w", request.GameID, err)
	}

	var (
		totalTimer   elapsedTimer
		sampleTimer  elapsedTimer
		buildTimer   elapsedTimer
		standInTimer elapsedTimer
	)
	totalTimer.start()
	defer func() {
		totalTimer.end()

		elapsedTimeMaps := map[string]time.Duration{
			constants.MatchRoomFunction:      totalTimer.elapsed(),
			constants.SampleFunction:         sampleTimer.elapsed(),
			constants.BuildRoomsFunction:     buildTimer.elapsed(),
			constants.ResolveStandInFunction: standInTimer.elapsed(),
		}
		scope.Log.WithFields(convertToMapInterface(elapsedTimeMaps)).
			WithField("gameID", request.GameID).
			Info("rank matchmaker match room")

		if mm.metrics != nil {
			for k, v := range elapsedTimeMaps {
				mm.metrics.AddElapsedTimeMs(request.GameID, k, v)
			}
		}
	}()

	rng := newRand(request.RandomSeed)

	sampleTimer.start()
	sample, meta := sampler.BuildCandidateSample(scope, sampler.Input{
		Queue:           request.Queue,
		ParticipantPool: request.ParticipantPool,
		RealtimeEnabled: request.Realtime,
		Roles:           request.Roles,
		Rules:           rules,
	}, rng)
	sampleTimer.end()

	buildTimer.start()
	result := roombuilder.MatchRankParticipants(scope, roombuilder.Input{
		Roles:        request.Roles,
		Queue:        sample,
		ScoreWindows: mm.scoreWindows(request.ScoreWindows),
	}, roombuilder.OptionsFromConfig(mm.cfg))
	buildTimer.end()

	report := readiness.BuildReport(result, request.Roles.CapacityMap(), request.Queue, mm.now())

	outcome := &matchmaker.MatchOutcome{
		SampleMeta: meta,
		Result:     result,
		Report:     report,
		Final:      result,
	}

	if room, ok := result.FirstRoom(); ok && !result.Ready && mm.standInEnabled() {
		standInTimer.start()
		resolver := standin.NewResolver(mm.provider, standin.OptionsFromConfig(mm.cfg), rng)
		response := resolver.Resolve(scope, models.ResolveRequest{
			GameID:            request.GameID,
			RoomID:            request.RoomID,
			SeatRequests:      standin.SeatRequestsFromRoom(room),
			ExcludeOwnerIDs:   excludedOwners(request.Queue, sample),
			ExcludeHeroIDs:    standin.SeatedHeroes(room),
			Limit:             mm.cfg.StandinCandidateLimit,
			AllowPlaceholders: mm.cfg.StandinAllowPlaceholder,
		})
		standInTimer.end()

		outcome.StandIn = &response
		outcome.Final = MergeStandIns(result, response)
	}

	mm.recordMetrics(request.GameID, outcome)
	scope.SetAttributes(envelope.ReadyTag, outcome.Final.Ready)

	return outcome, nil
}

func (mm *RankMatchMaker) standInEnabled() bool {
	return mm.cfg.StandinEnabled && mm.provider != nil
}

func (mm *RankMatchMaker) samplerRules(rules *models.SamplerRules) models.SamplerRules {
	if rules != nil {
		return *rules
	}
	return models.SamplerRules{
		NonRealtimeScoreWindow:      mm.cfg.NonRealtimeScoreWindow,
		NonRealtimeSimulatedPerRole: mm.cfg.NonRealtimePerRole,
		NonRealtimeSimulatedTotal:   mm.cfg.NonRealtimeTotal,
	}
}

// scoreWindows keeps an explicit request list, including an empty one, and
// falls back to the configured list otherwise.
func (mm *RankMatchMaker) scoreWindows(windows []float64) []float64 {
	if windows != nil || len(mm.cfg.ScoreWindows) == 0 {
		return windows
	}
	return mm.cfg.ScoreWindows
}

func (mm *RankMatchMaker) recordMetrics(gameID string, outcome *matchmaker.MatchOutcome) {
	if mm.metrics == nil {
		return
	}

	mm.metrics.AddRoomFormed(gameID, outcome.Final.Ready)
	mm.metrics.SetQueueWaitSeconds(gameID, outcome.Report.QueueWaitSeconds)
	for _, group := range outcome.Report.ErrorAggregates {
		mm.metrics.AddNotReadySeats(gameID, group.Role, group.Reason, group.Size)
	}

	if outcome.StandIn == nil {
		return
	}
	for _, seat := range outcome.StandIn.Diagnostics.Seats {
		mm.metrics.AddStandInSeat(gameID, standInOutcome(seat))
	}
}

func standInOutcome(seat models.SeatDiagnostic) string {
	switch {
	case seat.Filled && seat.Placeholder:
		return constants.StandInOutcomePlaceholder
	case seat.Filled:
		return constants.StandInOutcomeReal
	case seat.Error != "":
		return constants.StandInOutcomeFailed
	default:
		return constants.StandInOutcomeEmpty
	}
}

// excludedOwners are every owner already queued or sampled; stand-ins never duplicate them.
func excludedOwners(queue []models.QueueEntry, sample []models.QueueEntry) []string {
	owners := make([]string, 0, len(queue)+len(sample))
	for _, entry := range queue {
		owners = append(owners, entry.OwnerID)
	}
	for _, entry := range sample {
		owners = append(owners, entry.OwnerID)
	}
	owners = pie.Filter(owners, func(ownerID string) bool { return ownerID != "" })
	return pie.Sort(pie.Unique(owners))
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
