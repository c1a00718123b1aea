// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rankmatchmaker

import (
	"github.com/AccelByte/extend-rank-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

// MergeStandIns seats the resolved stand-ins into the empty slots of the first room
// and recomputes its readiness. Stand-ins whose owner or hero is already seated are
// skipped. The given result is left untouched.
func MergeStandIns(result models.MatchResult, response models.ResolveResponse) models.MatchResult {
	merged := result.Copy()
	if len(merged.Rooms) == 0 || len(response.Assignments) == 0 {
		return merged
	}

	bySlot := make(map[int]models.SeatAssignment, len(response.Assignments))
	for _, assignment := range response.Assignments {
		bySlot[assignment.SlotIndex] = assignment
	}

	room := &merged.Rooms[0]
	seated := make(map[string]struct{}, room.TotalSlots)
	heroes := make(map[string]struct{}, room.TotalSlots)
	for _, member := range room.Members() {
		seated[member.OwnerID] = struct{}{}
		if member.HeroID != "" {
			heroes[member.HeroID] = struct{}{}
		}
	}

	filledByRole := make(map[string]int)
	for ai := range room.Assignments {
		assignment := &room.Assignments[ai]
		for si := range assignment.RoleSlots {
			slot := &assignment.RoleSlots[si]
			if slot.Occupied {
				continue
			}
			standIn, ok := bySlot[slot.SlotIndex]
			if !ok {
				continue
			}
			if _, dup := seated[standIn.Candidate.OwnerID]; dup {
				continue
			}
			if _, dup := heroes[standIn.Candidate.HeroID]; dup && standIn.Candidate.HeroID != "" {
				continue
			}

			entry := standIn.Candidate.ToQueueEntry()
			entry.Role = slot.Role
			slot.Members = []models.QueueEntry{entry}
			slot.Occupied = true
			assignment.Members = append(assignment.Members, entry)
			seated[entry.OwnerID] = struct{}{}
			if entry.HeroID != "" {
				heroes[entry.HeroID] = struct{}{}
			}
			filledByRole[slot.Role]++
			room.FilledSlots++
		}
		assignment.Ready = assignment.FilledSlots() == len(assignment.RoleSlots)
	}

	room.MissingSlots = room.TotalSlots - room.FilledSlots
	room.Ready = room.IsComplete()
	if room.Ready {
		room.Error = nil
	} else if room.Error != nil {
		room.Error = models.NewMatchError(shrinkGroups(room.Error.Groups, filledByRole))
	}

	merged.Ready = room.Ready
	merged.Assignments = room.Assignments
	if merged.Ready {
		merged.Error = nil
	} else if merged.Error != nil {
		merged.Error = models.NewMatchError(shrinkGroups(merged.Error.Groups, filledByRole))
	}
	return merged
}

// shrinkGroups removes filled seats from the error groups of their role,
// insufficient candidates first since that is what a stand-in makes up for.
func shrinkGroups(groups []models.ErrorGroup, filledByRole map[string]int) []models.ErrorGroup {
	remaining := make(map[string]int, len(filledByRole))
	for role, filled := range filledByRole {
		remaining[role] = filled
	}

	shrunk := make([]models.ErrorGroup, len(groups))
	copy(shrunk, groups)
	for _, reason := range []string{
		constants.ReasonInsufficientCandidates,
		constants.ReasonScoreWindowExceeded,
		constants.ReasonDuplicateHeroConflict,
	} {
		for i := range shrunk {
			group := &shrunk[i]
			if group.Reason != reason || remaining[group.Role] == 0 {
				continue
			}
			taken := min(group.Size, remaining[group.Role])
			group.Size -= taken
			remaining[group.Role] -= taken
		}
	}

	kept := shrunk[:0]
	for _, group := range shrunk {
		if group.Size > 0 {
			kept = append(kept, group)
		}
	}
	return kept
}
