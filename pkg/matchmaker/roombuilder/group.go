// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package roombuilder

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

// candidateGroup is a party, or a single entry without party key. It is seated atomically.
type candidateGroup struct {
	key         string
	order       int
	members     []models.QueueEntry
	roleCounts  map[string]int
	primaryRole string
	score       float64
	joinedAt    time.Time
	owners      []string
	heroes      []string
	selectable  bool
}

func (g *candidateGroup) size() int {
	return len(g.members)
}

// groupingResult holds the selectable groups in FIFO order and what was dropped.
type groupingResult struct {
	groups      []*candidateGroup
	unsupported map[string]int
	skipped     int
}

// buildGroups groups the queue by party key. Parties containing an unsupported role,
// a repeated owner or a repeated hero are dropped as a whole.
func buildGroups(roles models.Roles, queue []models.QueueEntry) groupingResult {
	result := groupingResult{unsupported: make(map[string]int)}

	byKey := make(map[string]*candidateGroup)
	ordered := make([]*candidateGroup, 0, len(queue))
	for i, entry := range queue {
		supported := roles.Has(entry.Role)
		if !supported {
			result.unsupported[entry.Role]++
		}
		if entry.PartyKey == "" {
			if !supported {
				result.skipped++
				continue
			}
			group := &candidateGroup{key: fmt.Sprintf("entry:%d:%s", i, entry.ID), order: i, selectable: true}
			group.members = append(group.members, entry)
			ordered = append(ordered, group)
			continue
		}
		key := "party:" + entry.PartyKey
		group, ok := byKey[key]
		if !ok {
			group = &candidateGroup{key: key, order: i, selectable: true}
			byKey[key] = group
			ordered = append(ordered, group)
		}
		group.members = append(group.members, entry)
		if !supported {
			group.selectable = false
		}
	}

	roleOrder := make(map[string]int, len(roles))
	for i, role := range roles {
		roleOrder[role.Name] = i
	}

	for _, group := range ordered {
		finalizeGroup(group, roleOrder)
		if !group.selectable {
			result.skipped += group.size()
			continue
		}
		result.groups = append(result.groups, group)
	}

	sort.SliceStable(result.groups, func(i, j int) bool {
		a, b := result.groups[i], result.groups[j]
		if !a.joinedAt.Equal(b.joinedAt) {
			return a.joinedAt.Before(b.joinedAt)
		}
		return a.order < b.order
	})

	return result
}

func finalizeGroup(group *candidateGroup, roleOrder map[string]int) {
	sort.SliceStable(group.members, func(i, j int) bool {
		return group.members[i].JoinedAt.Before(group.members[j].JoinedAt)
	})

	group.roleCounts = make(map[string]int)
	scores := make([]float64, 0, group.size())
	owners := make(map[string]struct{}, group.size())
	heroes := make(map[string]struct{}, group.size())
	primaryOrder := -1
	for i, member := range group.members {
		if i == 0 || member.JoinedAt.Before(group.joinedAt) {
			group.joinedAt = member.JoinedAt
		}
		scores = append(scores, member.Score)
		group.roleCounts[member.Role]++

		if _, dup := owners[member.OwnerID]; dup {
			group.selectable = false
		}
		owners[member.OwnerID] = struct{}{}
		group.owners = append(group.owners, member.OwnerID)

		if member.HeroID != "" {
			if _, dup := heroes[member.HeroID]; dup {
				group.selectable = false
			}
			heroes[member.HeroID] = struct{}{}
			group.heroes = append(group.heroes, member.HeroID)
		}

		if order, ok := roleOrder[member.Role]; ok && (primaryOrder < 0 || order < primaryOrder) {
			primaryOrder = order
			group.primaryRole = member.Role
		}
	}
	group.score = stat.Mean(scores, nil)
}
