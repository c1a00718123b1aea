// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package standin

import (
	"sync"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

// Filter reports owners and heroes that may no longer be picked.
// An empty hero id is never excluded.
type Filter interface {
	Contains(ownerID string) bool
	ContainsHero(heroID string) bool
}

// ExclusionSet holds the owners and heroes shared by every seat of one resolution pass.
type ExclusionSet struct {
	mu     sync.Mutex
	owners idSet
	heroes idSet
}

func NewExclusionSet(ownerIDs ...string) *ExclusionSet {
	set := &ExclusionSet{owners: newIDSet(), heroes: newIDSet()}
	for _, ownerID := range ownerIDs {
		set.owners.add(ownerID)
	}
	return set
}

// ExcludeHeroes marks heroes already seated in the room.
func (s *ExclusionSet) ExcludeHeroes(heroIDs ...string) *ExclusionSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, heroID := range heroIDs {
		s.heroes.add(heroID)
	}
	return s
}

func (s *ExclusionSet) Contains(ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owners.has(ownerID)
}

func (s *ExclusionSet) ContainsHero(heroID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heroes.has(heroID)
}

// Claim adds the owner and reports false when it was already excluded.
func (s *ExclusionSet) Claim(ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owners.add(ownerID)
}

// Snapshot returns the excluded owners in claim order.
func (s *ExclusionSet) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owners.snapshot()
}

// HeroSnapshot returns the excluded heroes in claim order.
func (s *ExclusionSet) HeroSnapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heroes.snapshot()
}

func (s *ExclusionSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.owners.order)
}

// Commit runs pick while holding the lock and claims the owner and hero of the
// candidate it returns, so the read and the insert of one seat are atomic.
func (s *ExclusionSet) Commit(pick func(excluded Filter) *models.Candidate) *models.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	picked := pick(lockedSet{s})
	if picked != nil {
		s.owners.add(picked.OwnerID)
		s.heroes.add(picked.HeroID)
	}
	return picked
}

// lockedSet reads the set while Commit holds its lock.
type lockedSet struct {
	set *ExclusionSet
}

func (l lockedSet) Contains(ownerID string) bool {
	return l.set.owners.has(ownerID)
}

func (l lockedSet) ContainsHero(heroID string) bool {
	return l.set.heroes.has(heroID)
}

// idSet is an insertion ordered set of non-empty ids.
type idSet struct {
	ids   map[string]struct{}
	order []string
}

func newIDSet(ids ...string) idSet {
	set := idSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		set.add(id)
	}
	return set
}

func (s *idSet) add(id string) bool {
	if id == "" {
		return false
	}
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

func (s idSet) has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s idSet) snapshot() []string {
	snapshot := make([]string, len(s.order))
	copy(snapshot, s.order)
	return snapshot
}

// staticFilter excludes fixed owners and heroes.
type staticFilter struct {
	owners idSet
	heroes idSet
}

func newStaticFilter(ownerIDs, heroIDs []string) staticFilter {
	return staticFilter{owners: newIDSet(ownerIDs...), heroes: newIDSet(heroIDs...)}
}

func (f staticFilter) Contains(ownerID string) bool {
	return f.owners.has(ownerID)
}

func (f staticFilter) ContainsHero(heroID string) bool {
	return f.heroes.has(heroID)
}

// anyOf excludes an owner or hero when any filter does.
type anyOf []Filter

func (filters anyOf) Contains(ownerID string) bool {
	for _, filter := range filters {
		if filter != nil && filter.Contains(ownerID) {
			return true
		}
	}
	return false
}

func (filters anyOf) ContainsHero(heroID string) bool {
	if heroID == "" {
		return false
	}
	for _, filter := range filters {
		if filter != nil && filter.ContainsHero(heroID) {
			return true
		}
	}
	return false
}

// excludes reports whether the candidate owner or hero is taken.
func excludes(filter Filter, candidate models.Candidate) bool {
	return filter.Contains(candidate.OwnerID) || filter.ContainsHero(candidate.HeroID)
}
