// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package sampler draws the candidates eligible for one room builder pass,
// either the live queue or the queue topped up with simulated participants.
package sampler

import (
	"math/rand"
	"sort"
	"time"

	"github.com/elliotchance/pie/v2"
	"gonum.org/v1/gonum/stat"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/envelope"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/mathutil"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

// Input of one sampling cycle. Queue and ParticipantPool are never modified.
type Input struct {
	Queue           []models.QueueEntry
	ParticipantPool []models.QueueEntry
	RealtimeEnabled bool
	Roles           models.Roles
	Rules           models.SamplerRules
}

// indexed keeps the pool position so selections can be returned in input order.
type indexed struct {
	index int
	entry models.QueueEntry
}

// BuildCandidateSample returns the entries the room builder should consider and how they were drawn.
// rng is only consulted when a cap forces truncation; nil falls back to a time seeded source.
func BuildCandidateSample(rootScope *envelope.Scope, input Input, rng *rand.Rand) ([]models.QueueEntry, models.SampleMeta) {
	scope := rootScope.NewChildScope("sampler.BuildCandidateSample")
	defer scope.Finish()

	if input.RealtimeEnabled {
		sample := make([]models.QueueEntry, len(input.Queue))
		copy(sample, input.Queue)
		return sample, models.SampleMeta{
			Realtime:     true,
			SampleType:   constants.SampleTypeRealtimeQueue,
			QueueSampled: len(input.Queue),
		}
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec
	}

	rules := input.Rules
	window := rules.NonRealtimeScoreWindow
	perRoleLimit := mathutil.Max(rules.NonRealtimeSimulatedPerRole, 0)
	totalLimit := mathutil.Max(rules.NonRealtimeSimulatedTotal, 0)

	meta := models.SampleMeta{
		Realtime:          false,
		SampleType:        constants.SampleTypeParticipantPool,
		QueueSampled:      len(input.Queue),
		PerRoleLimit:      perRoleLimit,
		TotalLimit:        totalLimit,
		ScoreWindow:       window,
		RoleAverageScores: roleAverageScores(input.Queue, input.Roles),
	}

	queueOwners := make(map[string]struct{}, len(input.Queue))
	for _, ownerID := range pie.Map(input.Queue, func(e models.QueueEntry) string { return e.OwnerID }) {
		queueOwners[ownerID] = struct{}{}
	}
	queueCounts := make(map[string]int)
	for _, entry := range input.Queue {
		queueCounts[entry.Role]++
	}

	eligibleByRole := make(map[string][]indexed)
	duplicatesByRole := make(map[string][]indexed)
	selectedOwners := make(map[string]struct{})

	for i, participant := range input.ParticipantPool {
		if !input.Roles.Has(participant.Role) {
			meta.SimulatedFiltered++
			continue
		}
		avg, hasAvg := meta.RoleAverageScores[participant.Role]
		// roles nobody queued for get no simulated participants
		if !hasAvg || mathutil.Distance(participant.Score, avg) > window {
			meta.SimulatedFiltered++
			continue
		}
		if _, inQueue := queueOwners[participant.OwnerID]; inQueue {
			meta.SimulatedFiltered++
			duplicatesByRole[participant.Role] = append(duplicatesByRole[participant.Role], indexed{index: i, entry: participant})
			continue
		}
		if _, taken := selectedOwners[participant.OwnerID]; taken {
			meta.SimulatedFiltered++
			continue
		}
		selectedOwners[participant.OwnerID] = struct{}{}
		eligibleByRole[participant.Role] = append(eligibleByRole[participant.Role], indexed{index: i, entry: participant})
		meta.SimulatedEligible++
	}

	var selected []indexed
	for _, role := range input.Roles {
		selected = append(selected, capSample(eligibleByRole[role.Name], perRoleLimit, rng)...)
	}
	sortByIndex(selected)
	selected = capSample(selected, totalLimit, rng)

	selectedPerRole := make(map[string]int)
	for _, item := range selected {
		selectedPerRole[item.entry.Role]++
	}

	// duplicate-owner stand-ins for roles the filter left empty
	var duplicates []indexed
	for _, role := range input.Roles {
		if len(eligibleByRole[role.Name]) > 0 || queueCounts[role.Name] >= role.SlotCount {
			continue
		}
		candidates := uniqueOwners(duplicatesByRole[role.Name])
		meta.DuplicateEligible += len(candidates)

		need := role.SlotCount - queueCounts[role.Name]
		remainingTotal := totalLimit - len(selected) - len(duplicates)
		limit := mathutil.Min(need, mathutil.Min(perRoleLimit-selectedPerRole[role.Name], remainingTotal))
		if limit <= 0 {
			continue
		}
		duplicates = append(duplicates, capSample(candidates, limit, rng)...)
	}
	sortByIndex(duplicates)

	meta.SimulatedSelected = len(selected)
	meta.DuplicateSelected = len(duplicates)

	sample := make([]models.QueueEntry, 0, len(input.Queue)+len(selected)+len(duplicates))
	sample = append(sample, input.Queue...)
	for _, item := range selected {
		sample = append(sample, item.entry.WithSource(constants.MatchSourceParticipantPool))
	}
	for _, item := range duplicates {
		sample = append(sample, item.entry.WithSource(constants.MatchSourceParticipantDuplicate))
	}

	scope.Log.
		WithField("queueSampled", meta.QueueSampled).
		WithField("simulatedEligible", meta.SimulatedEligible).
		WithField("simulatedSelected", meta.SimulatedSelected).
		WithField("duplicateSelected", meta.DuplicateSelected).
		Debug("offline candidate sample built")

	return sample, meta
}

// roleAverageScores averages queued scores per targeted role; roles without queued entries are absent.
func roleAverageScores(queue []models.QueueEntry, roles models.Roles) map[string]float64 {
	scores := make(map[string][]float64)
	for _, entry := range queue {
		if !roles.Has(entry.Role) {
			continue
		}
		scores[entry.Role] = append(scores[entry.Role], entry.Score)
	}
	averages := make(map[string]float64, len(scores))
	for role, values := range scores {
		averages[role] = stat.Mean(values, nil)
	}
	return averages
}

// capSample keeps at most limit items, picked uniformly when truncating, in their original order.
func capSample(items []indexed, limit int, rng *rand.Rand) []indexed {
	if limit <= 0 {
		return nil
	}
	if len(items) <= limit {
		return items
	}
	picks := rng.Perm(len(items))[:limit]
	sort.Ints(picks)
	kept := make([]indexed, 0, limit)
	for _, pick := range picks {
		kept = append(kept, items[pick])
	}
	return kept
}

func uniqueOwners(items []indexed) []indexed {
	seen := make(map[string]struct{}, len(items))
	unique := make([]indexed, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.entry.OwnerID]; ok {
			continue
		}
		seen[item.entry.OwnerID] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}

func sortByIndex(items []indexed) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].index < items[j].index
	})
}
