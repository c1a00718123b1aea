// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package roombuilder

import (
	"github.com/AccelByte/extend-rank-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/mathutil"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

// roomDraft is a room under construction for one window.
type roomDraft struct {
	roles    models.Roles
	capacity map[string]int
	window   float64

	groups   []*candidateGroup
	members  map[string][]models.QueueEntry // map[role]members in seating order
	owners   map[string]struct{}
	heroes   map[string]struct{}
	scoreSum float64
	seated   int

	blocked map[string]map[string]int // map[role]map[reason]seats
}

func newRoomDraft(roles models.Roles, window float64) *roomDraft {
	return &roomDraft{
		roles:    roles,
		capacity: roles.CapacityMap(),
		window:   window,
		members:  make(map[string][]models.QueueEntry),
		owners:   make(map[string]struct{}),
		heroes:   make(map[string]struct{}),
		blocked:  make(map[string]map[string]int),
	}
}

func (d *roomDraft) clone() *roomDraft {
	c := &roomDraft{
		roles:    d.roles,
		capacity: d.capacity,
		window:   d.window,
		groups:   append([]*candidateGroup(nil), d.groups...),
		members:  make(map[string][]models.QueueEntry, len(d.members)),
		owners:   make(map[string]struct{}, len(d.owners)),
		heroes:   make(map[string]struct{}, len(d.heroes)),
		scoreSum: d.scoreSum,
		seated:   d.seated,
		blocked:  make(map[string]map[string]int, len(d.blocked)),
	}
	for role, members := range d.members {
		c.members[role] = append([]models.QueueEntry(nil), members...)
	}
	for owner := range d.owners {
		c.owners[owner] = struct{}{}
	}
	for hero := range d.heroes {
		c.heroes[hero] = struct{}{}
	}
	for role, reasons := range d.blocked {
		c.blocked[role] = make(map[string]int, len(reasons))
		for reason, seats := range reasons {
			c.blocked[role][reason] = seats
		}
	}
	return c
}

// average is the running room average score over seated members.
func (d *roomDraft) average() (float64, bool) {
	if d.seated == 0 {
		return 0, false
	}
	return d.scoreSum / float64(d.seated), true
}

func (d *roomDraft) remaining(role string) int {
	return d.capacity[role] - len(d.members[role])
}

func (d *roomDraft) hasGroup(group *candidateGroup) bool {
	for _, g := range d.groups {
		if g.key == group.key {
			return true
		}
	}
	return false
}

// fits reports whether every member of the group still has a free seat of its role.
func (d *roomDraft) fits(group *candidateGroup) bool {
	for role, count := range group.roleCounts {
		if count > d.remaining(role) {
			return false
		}
	}
	return true
}

// conflict returns the reason the group cannot join the room, or "" when it can.
func (d *roomDraft) conflict(group *candidateGroup) string {
	for _, hero := range group.heroes {
		if _, taken := d.heroes[hero]; taken {
			return constants.ReasonDuplicateHeroConflict
		}
	}
	for _, owner := range group.owners {
		if _, taken := d.owners[owner]; taken {
			return constants.ReasonInsufficientCandidates
		}
	}
	if avg, ok := d.average(); ok && mathutil.Distance(group.score, avg) > d.window {
		return constants.ReasonScoreWindowExceeded
	}
	return ""
}

func (d *roomDraft) block(group *candidateGroup, reason string) {
	for role, count := range group.roleCounts {
		if d.blocked[role] == nil {
			d.blocked[role] = make(map[string]int)
		}
		d.blocked[role][reason] += count
	}
}

func (d *roomDraft) add(group *candidateGroup) {
	d.groups = append(d.groups, group)
	for _, member := range group.members {
		d.members[member.Role] = append(d.members[member.Role], member)
		d.owners[member.OwnerID] = struct{}{}
		if member.HeroID != "" {
			d.heroes[member.HeroID] = struct{}{}
		}
		d.scoreSum += member.Score
		d.seated++
	}
}

func (d *roomDraft) complete() bool {
	for _, role := range d.roles {
		if d.remaining(role.Name) != 0 {
			return false
		}
	}
	return true
}

// deficit buckets the missing seats of a role: hero conflicts first, then window misses,
// the rest is attributed to a lack of candidates.
func (d *roomDraft) deficit(role models.RoleSpec) []models.ErrorGroup {
	missing := d.remaining(role.Name)
	if missing <= 0 {
		return nil
	}
	var groups []models.ErrorGroup
	for _, reason := range []string{constants.ReasonDuplicateHeroConflict, constants.ReasonScoreWindowExceeded} {
		seats := mathutil.Min(missing, d.blocked[role.Name][reason])
		if seats <= 0 {
			continue
		}
		groups = append(groups, models.ErrorGroup{Role: role.Name, Reason: reason, Size: seats})
		missing -= seats
	}
	if missing > 0 {
		groups = append(groups, models.ErrorGroup{Role: role.Name, Reason: constants.ReasonInsufficientCandidates, Size: missing})
	}
	return groups
}
