// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"io"

	"github.com/go-openapi/swag"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/utils"
)

// SeatRequest asks the stand-in resolver to fill one empty seat.
// Score and Rating are optional references used to measure candidate gaps.
// ExcludeHeroIDs are heroes already seated in the room.
type SeatRequest struct {
	SlotIndex       int      `json:"slot_index"`
	Role            string   `json:"role"`
	Score           *float64 `json:"score,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	ExcludeOwnerIDs []string `json:"exclude_owner_ids,omitempty"`
	ExcludeHeroIDs  []string `json:"exclude_hero_ids,omitempty"`
}

// Candidate is a real or synthetic stand-in for a seat.
type Candidate struct {
	OwnerID     string   `json:"owner_id"`
	HeroID      string   `json:"hero_id,omitempty"`
	HeroName    string   `json:"hero_name,omitempty"`
	Role        string   `json:"role"`
	Score       float64  `json:"score"`
	Rating      float64  `json:"rating"`
	Gap         *float64 `json:"gap,omitempty"`
	Placeholder bool     `json:"placeholder"`
	MatchSource string   `json:"match_source"`
}

// Selection describes how a stand-in was picked.
// Iteration is the number of tolerance steps tried, PoolSize the qualifying pool at the winning tolerance.
type Selection struct {
	OwnerID   string  `json:"owner_id"`
	Tolerance float64 `json:"tolerance"`
	Iteration int     `json:"iteration"`
	PoolSize  int     `json:"pool_size"`
}

// NewPlaceholderCandidate builds a synthetic stand-in for the seat.
// The owner id is a 36 char uuid read from r; it is never persisted.
func NewPlaceholderCandidate(seat SeatRequest, r io.Reader) Candidate {
	return Candidate{
		OwnerID:     utils.GenerateUUIDFrom(r),
		HeroName:    constants.PlaceholderHeroName,
		Role:        seat.Role,
		Score:       swag.Float64Value(seat.Score),
		Rating:      swag.Float64Value(seat.Rating),
		Gap:         swag.Float64(0),
		Placeholder: true,
		MatchSource: constants.MatchSourceAsyncStandInPlaceholder,
	}
}

// ToQueueEntry converts the candidate into an entry that can be seated in a room.
func (c Candidate) ToQueueEntry() QueueEntry {
	source := c.MatchSource
	if source == "" {
		source = constants.MatchSourceAsyncStandIn
	}
	return QueueEntry{
		ID:          "standin-" + c.OwnerID,
		OwnerID:     c.OwnerID,
		HeroID:      c.HeroID,
		Role:        c.Role,
		Score:       c.Score,
		Rating:      c.Rating,
		MatchSource: source,
	}
}

// ResolveRequest asks for stand-ins for the empty seats of a room.
type ResolveRequest struct {
	GameID            string        `json:"game_id"`
	RoomID            string        `json:"room_id,omitempty"`
	SeatRequests      []SeatRequest `json:"seat_requests"`
	ExcludeOwnerIDs   []string      `json:"exclude_owner_ids"`
	ExcludeHeroIDs    []string      `json:"exclude_hero_ids,omitempty"`
	Limit             int           `json:"limit,omitempty"`
	AllowPlaceholders bool          `json:"allow_placeholders"`
}

// SeatAssignment is a filled seat of a resolution pass.
type SeatAssignment struct {
	SlotIndex int        `json:"slot_index"`
	Role      string     `json:"role"`
	Candidate Candidate  `json:"candidate"`
	Selection *Selection `json:"selection"`
}

// SeatDiagnostic reports what happened to one requested seat.
type SeatDiagnostic struct {
	SlotIndex    int     `json:"slot_index"`
	Role         string  `json:"role"`
	Filled       bool    `json:"filled"`
	Placeholder  bool    `json:"placeholder"`
	RoleFallback bool    `json:"role_fallback"`
	Fetched      int     `json:"fetched"`
	PoolSize     int     `json:"pool_size"`
	Tolerance    float64 `json:"tolerance"`
	Iteration    int     `json:"iteration"`
	Error        string  `json:"error,omitempty"`
}

type ResolveDiagnostics struct {
	Requested      int              `json:"requested"`
	Filled         int              `json:"filled"`
	Placeholders   int              `json:"placeholders"`
	Seats          []SeatDiagnostic `json:"seats"`
	ExcludedOwners []string         `json:"excluded_owners"`
	ExcludedHeroes []string         `json:"excluded_heroes"`
}

// ResolveResponse lists the stand-ins picked in seat order.
type ResolveResponse struct {
	RequestID   string             `json:"request_id"`
	Queue       []Candidate        `json:"queue"`
	Assignments []SeatAssignment   `json:"assignments"`
	Diagnostics ResolveDiagnostics `json:"diagnostics"`
}
