// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package constants

const (
	DefaultScoreWindow = 200.0
	DefaultMaxRooms    = 8
	// keeps the subset search of one role below a few thousand combinations
	DefaultMaxCombinationGroups = 12
)

// DefaultScoreToleranceSteps are the gap tolerances tried by the stand-in resolver, narrowest first.
var DefaultScoreToleranceSteps = []float64{50, 100, 150, 200, 300, 400, 600}

const (
	MatchRoomFunction      = "matchRoom"
	SampleFunction         = "buildCandidateSample"
	BuildRoomsFunction     = "matchRankParticipants"
	ResolveStandInFunction = "resolveStandIns"
)

// sample types.
const (
	SampleTypeRealtimeQueue   = "realtime_queue"
	SampleTypeParticipantPool = "participant_pool_sample"
)

// match sources.
const (
	MatchSourceQueue                   = "queue"
	MatchSourceParticipantPool         = "participant_pool"
	MatchSourceParticipantDuplicate    = "participant_pool_duplicate"
	MatchSourceAsyncStandIn            = "async_standin"
	MatchSourceAsyncStandInPlaceholder = "async_standin_placeholder"
)

const PlaceholderHeroName = "AI 자동 대역"

// not ready reason constants.
const (
	ReasonScoreWindowExceeded    = "score_window_exceeded"
	ReasonDuplicateHeroConflict  = "duplicate_hero_conflict"
	ReasonInsufficientCandidates = "insufficient_candidates"
	ReasonUnsupportedRole        = "unsupported_role"
)

// stand-in seat outcomes.
const (
	StandInOutcomeReal        = "real"
	StandInOutcomePlaceholder = "placeholder"
	StandInOutcomeEmpty       = "empty"
	StandInOutcomeFailed      = "failed"
)
