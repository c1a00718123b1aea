// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package matchmaker provides the core interfaces and data structures of the rank matchmaking
// and seat-filling engine.
package matchmaker

import (
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

// MatchRequest is one matchmaking cycle for a game.
type MatchRequest struct {
	GameID          string               `json:"game_id"`
	RoomID          string               `json:"room_id,omitempty"`
	Roles           models.Roles         `json:"roles"`
	Queue           []models.QueueEntry  `json:"queue"`
	ParticipantPool []models.QueueEntry  `json:"participant_pool,omitempty"`
	Realtime        bool                 `json:"realtime"`
	ScoreWindows    []float64            `json:"score_windows,omitempty"`
	Rules           *models.SamplerRules `json:"rules,omitempty"`

	// RandomSeed makes sampling and stand-in picks reproducible; 0 means time based.
	RandomSeed int64 `json:"random_seed,omitempty"`
}

// MatchOutcome carries every stage of one cycle.
// Final is Result with stand-ins merged into the first room; it equals Result when no stand-ins ran.
type MatchOutcome struct {
	SampleMeta models.SampleMeta       `json:"sample_meta"`
	Result     models.MatchResult      `json:"result"`
	Report     models.Report           `json:"report"`
	StandIn    *models.ResolveResponse `json:"standin,omitempty"`
	Final      models.MatchResult      `json:"final"`
}

// CandidateQuery asks a provider for ranked stand-in candidates.
// An empty Role means any role.
type CandidateQuery struct {
	GameID          string   `json:"game_id"`
	Role            string   `json:"role,omitempty"`
	Score           *float64 `json:"score,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	ExcludeOwnerIDs []string `json:"exclude_owner_ids"`
	ExcludeHeroIDs  []string `json:"exclude_hero_ids,omitempty"`
	Limit           int      `json:"limit"`
}
