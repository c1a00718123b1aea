// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package sampler

import (
	"math/rand"
	"sort"
	"strconv"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/testsetup"
)

var attackDefense = models.Roles{{Name: "attack", SlotCount: 1}, {Name: "defense", SlotCount: 2}}

func entry(id, owner, role string, score float64) models.QueueEntry {
	return models.QueueEntry{ID: id, OwnerID: owner, Role: role, Score: score}
}

func defaultRules() models.SamplerRules {
	return models.SamplerRules{NonRealtimeScoreWindow: 200, NonRealtimeSimulatedPerRole: 3, NonRealtimeSimulatedTotal: 10}
}

func ids(entries []models.QueueEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestBuildCandidateSample_realtimeUsesQueue(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)

	queue := []models.QueueEntry{entry("a1", "o1", "attack", 1200), entry("d1", "o2", "defense", 1180)}
	pool := []models.QueueEntry{entry("p1", "o3", "defense", 1190)}

	sample, meta := BuildCandidateSample(g.TestScope, Input{
		Queue:           queue,
		ParticipantPool: pool,
		RealtimeEnabled: true,
		Roles:           attackDefense,
		Rules:           defaultRules(),
	}, rand.New(rand.NewSource(1)))

	g.Expect(ids(sample)).To(Equal([]string{"a1", "d1"}))
	g.Expect(meta.Realtime).To(BeTrue())
	g.Expect(meta.SampleType).To(Equal(constants.SampleTypeRealtimeQueue))
	g.Expect(meta.QueueSampled).To(Equal(2))

	sample[0].OwnerID = "changed"
	g.Expect(queue[0].OwnerID).To(Equal("o1"), "sample must not alias the queue")
}

func TestBuildCandidateSample_offlineFilters(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)

	queue := []models.QueueEntry{entry("a1", "o1", "attack", 1000), entry("d1", "o2", "defense", 1200)}
	pool := []models.QueueEntry{
		entry("p1", "o10", "attack", 1100),
		entry("p2", "o11", "attack", 1500),  // outside the window
		entry("p3", "o12", "support", 1000), // role not targeted
		entry("p4", "o13", "defense", 1250),
		entry("p5", "o13", "defense", 1300), // owner already selected
		entry("p6", "o1", "attack", 1000),   // owner already queued
	}

	sample, meta := BuildCandidateSample(g.TestScope, Input{
		Queue:           queue,
		ParticipantPool: pool,
		Roles:           attackDefense,
		Rules:           defaultRules(),
	}, rand.New(rand.NewSource(1)))

	defer g.DumpOnFailure(sample, meta)

	g.Expect(ids(sample)).To(Equal([]string{"a1", "d1", "p1", "p4"}))
	g.Expect(sample[0].Source()).To(Equal(constants.MatchSourceQueue))
	g.Expect(sample[2].Source()).To(Equal(constants.MatchSourceParticipantPool))
	g.Expect(meta.SampleType).To(Equal(constants.SampleTypeParticipantPool))
	g.Expect(meta.SimulatedEligible).To(Equal(2))
	g.Expect(meta.SimulatedSelected).To(Equal(2))
	g.Expect(meta.SimulatedFiltered).To(Equal(4))
	g.Expect(meta.DuplicateSelected).To(Equal(0))
	g.Expect(meta.RoleAverageScores).To(Equal(map[string]float64{"attack": 1000, "defense": 1200}))
	g.Expect(pool[0].MatchSource).To(BeEmpty(), "pool entries must not be modified")
}

func TestBuildCandidateSample_rolesAbsentFromQueueGetNoSimulatedRows(t *testing.T) {
	queue := []models.QueueEntry{entry("a1", "o1", "attack", 1000)}
	pool := []models.QueueEntry{entry("p1", "o10", "defense", 1000), entry("p2", "o11", "defense", 1010)}

	sample, meta := BuildCandidateSample(testsetup.NewTestScope(), Input{
		Queue:           queue,
		ParticipantPool: pool,
		Roles:           attackDefense,
		Rules:           defaultRules(),
	}, rand.New(rand.NewSource(1)))

	assert.Equal(t, []string{"a1"}, ids(sample))
	assert.Equal(t, 0, meta.SimulatedSelected)
	assert.NotContains(t, meta.RoleAverageScores, "defense")
}

func TestBuildCandidateSample_caps(t *testing.T) {
	queue := []models.QueueEntry{entry("a1", "o1", "attack", 1000), entry("d1", "o2", "defense", 1000)}

	var pool []models.QueueEntry
	for i := 0; i < 5; i++ {
		n := strconv.Itoa(i)
		pool = append(pool, entry("pa"+n, "oa"+n, "attack", 1000+float64(i)))
		pool = append(pool, entry("pd"+n, "od"+n, "defense", 1000+float64(i)))
	}

	tests := []struct {
		name          string
		rules         models.SamplerRules
		wantSelected  int
		wantMaxByRole int
	}{
		{name: "per role cap", rules: models.SamplerRules{NonRealtimeScoreWindow: 200, NonRealtimeSimulatedPerRole: 2, NonRealtimeSimulatedTotal: 10}, wantSelected: 4, wantMaxByRole: 2},
		{name: "total cap", rules: models.SamplerRules{NonRealtimeScoreWindow: 200, NonRealtimeSimulatedPerRole: 3, NonRealtimeSimulatedTotal: 4}, wantSelected: 4, wantMaxByRole: 3},
		{name: "zero caps select nothing", rules: models.SamplerRules{NonRealtimeScoreWindow: 200}, wantSelected: 0, wantMaxByRole: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			input := Input{Queue: queue, ParticipantPool: pool, Roles: attackDefense, Rules: tt.rules}
			sample, meta := BuildCandidateSample(testsetup.NewTestScope(), input, rand.New(rand.NewSource(42)))

			require.Equal(t, tt.wantSelected, meta.SimulatedSelected)
			require.Len(t, sample, len(queue)+tt.wantSelected)

			simulated := sample[len(queue):]
			byRole := map[string]int{}
			positions := make([]int, 0, len(simulated))
			for _, e := range simulated {
				byRole[e.Role]++
				for i, p := range pool {
					if p.ID == e.ID {
						positions = append(positions, i)
					}
				}
			}
			for _, count := range byRole {
				assert.LessOrEqual(t, count, tt.wantMaxByRole)
			}
			assert.True(t, sort.IntsAreSorted(positions), "kept rows stay in input order: %v", positions)

			again, _ := BuildCandidateSample(testsetup.NewTestScope(), input, rand.New(rand.NewSource(42)))
			assert.Equal(t, ids(sample), ids(again), "same seed gives the same sample")
		})
	}
}

func TestBuildCandidateSample_duplicateOwnerFallback(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)

	queue := []models.QueueEntry{entry("a1", "o1", "attack", 1000), entry("d1", "o2", "defense", 1200)}
	pool := []models.QueueEntry{
		entry("p1", "o1", "defense", 1150),
		entry("p2", "o1", "defense", 1180),
		entry("p3", "o2", "defense", 1210),
	}

	sample, meta := BuildCandidateSample(g.TestScope, Input{
		Queue:           queue,
		ParticipantPool: pool,
		Roles:           attackDefense,
		Rules:           defaultRules(),
	}, rand.New(rand.NewSource(3)))

	g.Expect(meta.SimulatedEligible).To(Equal(0))
	g.Expect(meta.DuplicateEligible).To(Equal(2))
	g.Expect(meta.DuplicateSelected).To(Equal(1))
	g.Expect(sample).To(HaveLen(3))
	g.Expect(sample[2].Source()).To(Equal(constants.MatchSourceParticipantDuplicate))
	g.Expect(sample[2].ID).To(BeElementOf("p1", "p3"))
}
