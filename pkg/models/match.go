// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"github.com/mitchellh/copystructure"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/constants"
)

// RoleSlot is one seat of a role; SlotIndex is unique within the room.
type RoleSlot struct {
	SlotIndex int          `json:"slot_index"`
	Role      string       `json:"role"`
	Occupied  bool         `json:"occupied"`
	Members   []QueueEntry `json:"members"`
}

// RoomAssignment holds the seats of one role within a room.
type RoomAssignment struct {
	Role      string       `json:"role"`
	RoleSlots []RoleSlot   `json:"role_slots"`
	Members   []QueueEntry `json:"members"`
	Ready     bool         `json:"ready"`
}

// FilledSlots counts occupied slots.
func (a RoomAssignment) FilledSlots() int {
	var filled int
	for _, slot := range a.RoleSlots {
		if slot.Occupied {
			filled++
		}
	}
	return filled
}

// Room is one fully or partially assembled candidate match.
type Room struct {
	Index        int              `json:"index"`
	Ready        bool             `json:"ready"`
	Window       float64          `json:"window"`
	AverageScore float64          `json:"average_score"`
	Assignments  []RoomAssignment `json:"assignments"`
	FilledSlots  int              `json:"filled_slots"`
	TotalSlots   int              `json:"total_slots"`
	MissingSlots int              `json:"missing_slots"`
	Error        *MatchError      `json:"error"`
}

// Members returns every seated entry in slot order.
func (r Room) Members() []QueueEntry {
	members := make([]QueueEntry, 0, r.FilledSlots)
	for _, assignment := range r.Assignments {
		for _, slot := range assignment.RoleSlots {
			members = append(members, slot.Members...)
		}
	}
	return members
}

// OwnerIDs returns the owners seated in the room.
func (r Room) OwnerIDs() []string {
	members := r.Members()
	owners := make([]string, 0, len(members))
	for _, member := range members {
		owners = append(owners, member.OwnerID)
	}
	return owners
}

// EmptySlots returns the unoccupied slots in slot order.
func (r Room) EmptySlots() []RoleSlot {
	var empty []RoleSlot
	for _, assignment := range r.Assignments {
		for _, slot := range assignment.RoleSlots {
			if !slot.Occupied {
				empty = append(empty, slot)
			}
		}
	}
	return empty
}

// IsComplete reports whether every slot of every assignment is occupied.
func (r Room) IsComplete() bool {
	if len(r.Assignments) == 0 {
		return false
	}
	for _, assignment := range r.Assignments {
		for _, slot := range assignment.RoleSlots {
			if !slot.Occupied {
				return false
			}
		}
	}
	return true
}

// ErrorGroup counts missing seats for one role and reason.
type ErrorGroup struct {
	Role   string `json:"role"`
	Reason string `json:"reason"`
	Size   int    `json:"size"`
}

// MatchError explains why a room is not ready.
type MatchError struct {
	Type   string       `json:"type"`
	Groups []ErrorGroup `json:"groups"`
}

var reasonPriority = map[string]int{
	constants.ReasonScoreWindowExceeded:    0,
	constants.ReasonDuplicateHeroConflict:  1,
	constants.ReasonInsufficientCandidates: 2,
	constants.ReasonUnsupportedRole:        3,
}

// NewMatchError typed by the reason holding the most missing seats.
func NewMatchError(groups []ErrorGroup) *MatchError {
	totals := make(map[string]int)
	for _, group := range groups {
		totals[group.Reason] += group.Size
	}
	dominant := constants.ReasonInsufficientCandidates
	bestSize := -1
	for reason, size := range totals {
		if size > bestSize || (size == bestSize && reasonPriority[reason] < reasonPriority[dominant]) {
			dominant = reason
			bestSize = size
		}
	}
	return &MatchError{Type: dominant, Groups: groups}
}

// MatchResult is the outcome of one room builder pass.
// Ready, Assignments, MaxWindow and Error describe the first room only. MaxWindow is the
// widest window consulted while building it. Unsupported counts the entries dropped for
// a role outside the capacity model, ready or not.
type MatchResult struct {
	Ready          bool             `json:"ready"`
	TotalSlots     int              `json:"total_slots"`
	Assignments    []RoomAssignment `json:"assignments"`
	Rooms          []Room           `json:"rooms"`
	MaxWindow      float64          `json:"max_window"`
	Error          *MatchError      `json:"error"`
	Unsupported    []ErrorGroup     `json:"unsupported"`
	SkippedEntries int              `json:"skipped_entries"`
}

// FirstRoom returns the room the result readiness is about.
func (r MatchResult) FirstRoom() (Room, bool) {
	if len(r.Rooms) == 0 {
		return Room{}, false
	}
	return r.Rooms[0], true
}

func (r MatchResult) Copy() MatchResult {
	copied, err := copystructure.Copy(r)
	if err != nil {
		logrus.Warn("failed copy matchResult:", err)
		return r
	}
	result, _ := copied.(MatchResult)
	return result
}
