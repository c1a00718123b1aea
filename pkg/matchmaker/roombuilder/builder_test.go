// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package roombuilder

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/testsetup"
)

var (
	attackDefense = models.Roles{{Name: "attack", SlotCount: 1}, {Name: "defense", SlotCount: 2}}
	baseTime      = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
)

func queueEntry(id, role string, score float64) models.QueueEntry {
	return models.QueueEntry{ID: id, OwnerID: "owner-" + id, HeroID: "hero-" + id, Role: role, Score: score}
}

func memberIDs(room models.Room) []string {
	var ids []string
	for _, member := range room.Members() {
		ids = append(ids, member.ID)
	}
	return ids
}

func assignmentFor(room models.Room, role string) models.RoomAssignment {
	for _, assignment := range room.Assignments {
		if assignment.Role == role {
			return assignment
		}
	}
	return models.RoomAssignment{}
}

// assertRoomInvariants checks capacity on ready rooms and owner/hero uniqueness on every room.
func assertRoomInvariants(t *testing.T, roles models.Roles, result models.MatchResult) {
	t.Helper()
	for _, room := range result.Rooms {
		owners := map[string]bool{}
		heroes := map[string]bool{}
		for _, member := range room.Members() {
			assert.False(t, owners[member.OwnerID], "room %d seats owner %s twice", room.Index, member.OwnerID)
			owners[member.OwnerID] = true
			if member.HeroID != "" {
				assert.False(t, heroes[member.HeroID], "room %d seats hero %s twice", room.Index, member.HeroID)
				heroes[member.HeroID] = true
			}
		}
		if !room.Ready {
			continue
		}
		for _, role := range roles {
			seated := 0
			for _, slot := range assignmentFor(room, role.Name).RoleSlots {
				seated += len(slot.Members)
			}
			assert.Equal(t, role.SlotCount, seated, "room %d role %s", room.Index, role.Name)
		}
	}
}

func TestMatchRankParticipants_readyRoom(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)

	queue := []models.QueueEntry{
		queueEntry("a1", "attack", 1200),
		queueEntry("d1", "defense", 1180),
		queueEntry("d2", "defense", 1210),
	}

	result := MatchRankParticipants(g.TestScope, Input{Roles: attackDefense, Queue: queue}, Options{})
	defer g.DumpOnFailure(result)

	g.Expect(result.Ready).To(BeTrue())
	g.Expect(result.TotalSlots).To(Equal(3))
	g.Expect(result.Error).To(BeNil())
	g.Expect(result.MaxWindow).To(Equal(constants.DefaultScoreWindow))
	g.Expect(result.Rooms).To(HaveLen(1))

	defense := assignmentFor(result.Rooms[0], "defense")
	g.Expect(defense.Members).To(HaveLen(2))
	g.Expect(defense.Ready).To(BeTrue())
	g.Expect(defense.RoleSlots[0].SlotIndex).To(Equal(1))
	g.Expect(defense.RoleSlots[1].SlotIndex).To(Equal(2))
	g.Expect(result.Assignments).To(Equal(result.Rooms[0].Assignments))
	assertRoomInvariants(t, attackDefense, result)
}

func TestMatchRankParticipants_scoreWindowExceeded(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)

	queue := []models.QueueEntry{
		queueEntry("a1", "attack", 1200),
		queueEntry("d1", "defense", 800),
		queueEntry("d2", "defense", 2200),
	}

	result := MatchRankParticipants(g.TestScope, Input{Roles: attackDefense, Queue: queue, ScoreWindows: []float64{200}}, Options{})
	defer g.DumpOnFailure(result)

	g.Expect(result.Ready).To(BeFalse())
	g.Expect(result.Error).NotTo(BeNil())
	g.Expect(result.Error.Type).To(Equal(constants.ReasonScoreWindowExceeded))
	g.Expect(result.Error.Groups).To(ContainElement(models.ErrorGroup{
		Role: "defense", Reason: constants.ReasonScoreWindowExceeded, Size: 2,
	}))
	g.Expect(result.Rooms[0].FilledSlots).To(Equal(1))
	g.Expect(result.Rooms[0].MissingSlots).To(Equal(2))
	assertRoomInvariants(t, attackDefense, result)
}

func TestMatchRankParticipants_duplicateHero(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)

	attack := queueEntry("a1", "attack", 1200)
	attack.HeroID = "999"
	clash := queueEntry("d1", "defense", 1180)
	clash.HeroID = "999"
	queue := []models.QueueEntry{attack, clash, queueEntry("d2", "defense", 1210)}

	result := MatchRankParticipants(g.TestScope, Input{Roles: attackDefense, Queue: queue}, Options{})
	defer g.DumpOnFailure(result)

	g.Expect(result.Ready).To(BeFalse())
	g.Expect(result.Error.Type).To(Equal(constants.ReasonDuplicateHeroConflict))
	for _, room := range result.Rooms {
		ids := memberIDs(room)
		g.Expect(ids).NotTo(ContainElements("a1", "d1"), "room %d seats both hero 999 entries", room.Index)
	}
	assertRoomInvariants(t, attackDefense, result)
}

func TestMatchRankParticipants_widerWindowsOnlyHelp(t *testing.T) {
	queue := []models.QueueEntry{
		queueEntry("a1", "attack", 1200),
		queueEntry("d1", "defense", 800),
		queueEntry("d2", "defense", 2200),
	}

	windows := []float64{200}
	wasReady := false
	for _, extra := range []float64{400, 800, 1500, 3000} {
		windows = append(windows, extra)
		result := MatchRankParticipants(testsetup.NewTestScope(), Input{Roles: attackDefense, Queue: queue, ScoreWindows: windows}, Options{})
		if wasReady {
			assert.True(t, result.Ready, "windows %v turned a ready result not ready", windows)
		}
		wasReady = wasReady || result.Ready
		assertRoomInvariants(t, attackDefense, result)
	}
	assert.True(t, wasReady, "the widest window should close the room")

	result := MatchRankParticipants(testsetup.NewTestScope(), Input{Roles: attackDefense, Queue: queue, ScoreWindows: []float64{1500, 200, 1500}}, Options{})
	assert.True(t, result.Ready)
	assert.Equal(t, 1500.0, result.MaxWindow)
	assert.Equal(t, 1500.0, result.Rooms[0].Window)
}

func TestMatchRankParticipants_partyIsSeatedAtomically(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)

	single := queueEntry("a2", "attack", 1205)
	single.JoinedAt = baseTime
	partyAttack := queueEntry("a1", "attack", 1200)
	partyAttack.PartyKey = "p1"
	partyAttack.JoinedAt = baseTime.Add(time.Second)
	partyDefense := queueEntry("d1", "defense", 1190)
	partyDefense.PartyKey = "p1"
	partyDefense.JoinedAt = baseTime.Add(time.Second)
	other := queueEntry("d2", "defense", 1210)
	other.JoinedAt = baseTime.Add(2 * time.Second)

	queue := []models.QueueEntry{single, partyAttack, partyDefense, other}
	result := MatchRankParticipants(g.TestScope, Input{Roles: attackDefense, Queue: queue}, Options{})
	defer g.DumpOnFailure(result)

	g.Expect(result.Ready).To(BeTrue())
	g.Expect(memberIDs(result.Rooms[0])).To(ConsistOf("a1", "d1", "d2"))
	for _, room := range result.Rooms {
		ids := memberIDs(room)
		hasAttack, hasDefense := false, false
		for _, id := range ids {
			hasAttack = hasAttack || id == "a1"
			hasDefense = hasDefense || id == "d1"
		}
		g.Expect(hasAttack).To(Equal(hasDefense), "party split in room %d", room.Index)
	}
	assertRoomInvariants(t, attackDefense, result)
}

func TestMatchRankParticipants_unselectableParties(t *testing.T) {
	tests := []struct {
		name  string
		party []models.QueueEntry
	}{
		{
			name: "unsupported role member",
			party: []models.QueueEntry{
				{ID: "p1", OwnerID: "o1", Role: "attack", Score: 1200, PartyKey: "x"},
				{ID: "p2", OwnerID: "o2", Role: "healer", Score: 1200, PartyKey: "x"},
			},
		},
		{
			name: "same owner twice",
			party: []models.QueueEntry{
				{ID: "p1", OwnerID: "o1", Role: "attack", Score: 1200, PartyKey: "x"},
				{ID: "p2", OwnerID: "o1", Role: "defense", Score: 1200, PartyKey: "x"},
			},
		},
		{
			name: "same hero twice",
			party: []models.QueueEntry{
				{ID: "p1", OwnerID: "o1", HeroID: "h", Role: "attack", Score: 1200, PartyKey: "x"},
				{ID: "p2", OwnerID: "o2", HeroID: "h", Role: "defense", Score: 1200, PartyKey: "x"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			queue := append(append([]models.QueueEntry{}, tt.party...), queueEntry("d1", "defense", 1200), queueEntry("d2", "defense", 1200))

			result := MatchRankParticipants(testsetup.NewTestScope(), Input{Roles: attackDefense, Queue: queue}, Options{})

			assert.False(t, result.Ready)
			assert.Equal(t, 2, result.SkippedEntries)
			for _, room := range result.Rooms {
				assert.NotContains(t, memberIDs(room), "p1")
				assert.NotContains(t, memberIDs(room), "p2")
			}
		})
	}
}

func TestMatchRankParticipants_unsupportedRoleCounted(t *testing.T) {
	queue := []models.QueueEntry{
		queueEntry("a1", "attack", 1200),
		queueEntry("h1", "healer", 1200),
		queueEntry("h2", "healer", 1210),
	}

	result := MatchRankParticipants(testsetup.NewTestScope(), Input{Roles: attackDefense, Queue: queue}, Options{})

	require.False(t, result.Ready)
	assert.Equal(t, 2, result.SkippedEntries)
	assert.Contains(t, result.Error.Groups, models.ErrorGroup{Role: "healer", Reason: constants.ReasonUnsupportedRole, Size: 2})
	assert.Contains(t, result.Error.Groups, models.ErrorGroup{Role: "defense", Reason: constants.ReasonInsufficientCandidates, Size: 2})
	assert.Equal(t, []models.ErrorGroup{{Role: "healer", Reason: constants.ReasonUnsupportedRole, Size: 2}}, result.Unsupported)
	for _, room := range result.Rooms {
		assert.NotContains(t, memberIDs(room), "h1")
	}
}

func TestMatchRankParticipants_unsupportedRoleKeptWhenReady(t *testing.T) {
	queue := []models.QueueEntry{
		queueEntry("a1", "attack", 1200),
		queueEntry("d1", "defense", 1180),
		queueEntry("d2", "defense", 1210),
		queueEntry("m1", "mage", 1200),
		queueEntry("h1", "healer", 1200),
	}

	result := MatchRankParticipants(testsetup.NewTestScope(), Input{Roles: attackDefense, Queue: queue}, Options{})

	require.True(t, result.Ready)
	assert.Nil(t, result.Error)
	assert.Equal(t, 2, result.SkippedEntries)
	assert.Equal(t, []models.ErrorGroup{
		{Role: "healer", Reason: constants.ReasonUnsupportedRole, Size: 1},
		{Role: "mage", Reason: constants.ReasonUnsupportedRole, Size: 1},
	}, result.Unsupported)
}

func TestMatchRankParticipants_exactCombinationWhenGreedyOvershoots(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)

	roles := models.Roles{{Name: "attack", SlotCount: 1}, {Name: "defense", SlotCount: 4}}
	party := func(key string, offset time.Duration, ids ...string) []models.QueueEntry {
		var members []models.QueueEntry
		for _, id := range ids {
			member := queueEntry(id, "defense", 1200)
			member.PartyKey = key
			member.JoinedAt = baseTime.Add(offset)
			members = append(members, member)
		}
		return members
	}

	attack := queueEntry("a1", "attack", 1200)
	attack.JoinedAt = baseTime
	single := queueEntry("s1", "defense", 1200)
	single.JoinedAt = baseTime.Add(time.Second)

	queue := []models.QueueEntry{attack, single}
	queue = append(queue, party("x", 2*time.Second, "x1", "x2")...)
	queue = append(queue, party("y", 3*time.Second, "y1", "y2")...)

	result := MatchRankParticipants(g.TestScope, Input{Roles: roles, Queue: queue}, Options{})
	defer g.DumpOnFailure(result)

	g.Expect(result.Ready).To(BeTrue())
	g.Expect(memberIDs(result.Rooms[0])).To(ConsistOf("a1", "x1", "x2", "y1", "y2"))
	g.Expect(result.Rooms).To(HaveLen(2))
	g.Expect(memberIDs(result.Rooms[1])).To(ConsistOf("s1"))
	assertRoomInvariants(t, roles, result)
}

func TestMatchRankParticipants_multipleRooms(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)

	roles := models.Roles{{Name: "attack", SlotCount: 1}, {Name: "defense", SlotCount: 1}}
	queue := []models.QueueEntry{
		queueEntry("a1", "attack", 1000),
		queueEntry("d1", "defense", 1010),
		queueEntry("a2", "attack", 1500),
		queueEntry("d2", "defense", 1490),
	}

	result := MatchRankParticipants(g.TestScope, Input{Roles: roles, Queue: queue, ScoreWindows: []float64{100}}, Options{})
	defer g.DumpOnFailure(result)

	g.Expect(result.Ready).To(BeTrue())
	g.Expect(result.Rooms).To(HaveLen(2))
	g.Expect(memberIDs(result.Rooms[0])).To(ConsistOf("a1", "d1"))
	g.Expect(memberIDs(result.Rooms[1])).To(ConsistOf("a2", "d2"))
	g.Expect(result.Rooms[1].Ready).To(BeTrue())
	g.Expect(result.Rooms[1].Index).To(Equal(1))

	bounded := MatchRankParticipants(g.TestScope, Input{Roles: roles, Queue: queue, ScoreWindows: []float64{100}}, Options{MaxRooms: 1})
	g.Expect(bounded.Rooms).To(HaveLen(1))
	assertRoomInvariants(t, roles, result)
}

func TestMatchRankParticipants_maxWindowIsTheFirstRoomWindow(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)

	roles := models.Roles{{Name: "attack", SlotCount: 1}, {Name: "defense", SlotCount: 1}}
	queue := []models.QueueEntry{
		queueEntry("a1", "attack", 1000),
		queueEntry("d1", "defense", 1010),
		queueEntry("a2", "attack", 1500),
		queueEntry("d2", "defense", 1800),
	}

	result := MatchRankParticipants(g.TestScope, Input{Roles: roles, Queue: queue, ScoreWindows: []float64{100, 500}}, Options{})
	defer g.DumpOnFailure(result)

	g.Expect(result.Ready).To(BeTrue())
	g.Expect(result.Rooms).To(HaveLen(2))
	g.Expect(result.Rooms[0].Window).To(Equal(100.0))
	g.Expect(result.Rooms[1].Ready).To(BeTrue())
	g.Expect(result.Rooms[1].Window).To(Equal(500.0))
	g.Expect(result.MaxWindow).To(Equal(100.0))
}

func TestMatchRankParticipants_fifoByJoinTime(t *testing.T) {
	roles := models.Roles{{Name: "attack", SlotCount: 1}, {Name: "defense", SlotCount: 1}}
	late := queueEntry("late", "attack", 1000)
	late.JoinedAt = baseTime.Add(time.Minute)
	early := queueEntry("early", "attack", 1000)
	early.JoinedAt = baseTime
	defense := queueEntry("d1", "defense", 1000)
	defense.JoinedAt = baseTime

	result := MatchRankParticipants(testsetup.NewTestScope(), Input{Roles: roles, Queue: []models.QueueEntry{late, early, defense}}, Options{MaxRooms: 1})

	require.True(t, result.Ready)
	assert.ElementsMatch(t, []string{"early", "d1"}, memberIDs(result.Rooms[0]))
}

func TestMatchRankParticipants_emptyAndMissingWindowsUseDefault(t *testing.T) {
	queue := []models.QueueEntry{
		queueEntry("a1", "attack", 1200),
		queueEntry("d1", "defense", 1180),
		queueEntry("d2", "defense", 1210),
	}

	logger, hook := logrustest.NewNullLogger()
	scope := testsetup.NewTestScopeWithLogger(logger)

	missing := MatchRankParticipants(scope, Input{Roles: attackDefense, Queue: queue}, Options{DefaultWindow: 150})
	assert.Equal(t, 150.0, missing.MaxWindow)
	assert.Empty(t, hook.AllEntries())

	empty := MatchRankParticipants(scope, Input{Roles: attackDefense, Queue: queue, ScoreWindows: []float64{}}, Options{DefaultWindow: 150})
	assert.Equal(t, 150.0, empty.MaxWindow)
	assert.Equal(t, missing.Ready, empty.Ready)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestMatchRankParticipants_emptyQueue(t *testing.T) {
	result := MatchRankParticipants(testsetup.NewTestScope(), Input{Roles: attackDefense}, Options{})

	require.Len(t, result.Rooms, 1)
	assert.False(t, result.Ready)
	assert.Equal(t, 3, result.Rooms[0].MissingSlots)
	assert.Equal(t, constants.ReasonInsufficientCandidates, result.Error.Type)
}

func TestMatchRankParticipants_doesNotModifyQueue(t *testing.T) {
	queue := []models.QueueEntry{
		queueEntry("a1", "attack", 1200),
		queueEntry("d1", "defense", 1180),
		queueEntry("d2", "defense", 1210),
	}
	snapshot := append([]models.QueueEntry{}, queue...)

	_ = MatchRankParticipants(testsetup.NewTestScope(), Input{Roles: attackDefense, Queue: queue}, Options{})

	assert.Equal(t, snapshot, queue)
}
