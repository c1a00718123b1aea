// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package standin

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/go-openapi/swag"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/mathutil"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

// SelectCandidate picks one stand-in for the seat.
// Tolerance widens through steps until some candidate gap fits, then one of the fitting
// candidates is chosen uniformly with rng. Candidates whose owner or hero is excluded by
// the seat or by excluded never qualify. It returns nil when no candidate qualifies.
func SelectCandidate(seat models.SeatRequest, candidates []models.Candidate, excluded Filter, steps []float64, rng *rand.Rand) (*models.Candidate, *models.Selection) {
	skip := anyOf{newStaticFilter(seat.ExcludeOwnerIDs, seat.ExcludeHeroIDs), excluded}

	eligible := make([]models.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.OwnerID == "" || excludes(skip, candidate) {
			continue
		}
		candidate.Gap = swag.Float64(Gap(seat, candidate))
		eligible = append(eligible, candidate)
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for i, tolerance := range NormalizeSteps(steps) {
		tolerance := tolerance
		pool := pie.Filter(eligible, func(c models.Candidate) bool {
			return *c.Gap <= tolerance
		})
		if len(pool) == 0 {
			continue
		}

		picked := pool[rng.Intn(len(pool))]
		return &picked, &models.Selection{
			OwnerID:   picked.OwnerID,
			Tolerance: tolerance,
			Iteration: i + 1,
			PoolSize:  len(pool),
		}
	}

	return nil, nil
}

// Gap is the candidate distance to the seat reference: the provided gap when present,
// else the score gap, else the rating gap, else zero.
func Gap(seat models.SeatRequest, candidate models.Candidate) float64 {
	switch {
	case candidate.Gap != nil && !math.IsNaN(*candidate.Gap):
		return mathutil.Abs(*candidate.Gap)
	case seat.Score != nil:
		return mathutil.Distance(*seat.Score, candidate.Score)
	case seat.Rating != nil:
		return mathutil.Distance(*seat.Rating, candidate.Rating)
	default:
		return 0
	}
}

// NormalizeSteps sorts the tolerances ascending and drops invalid or repeated ones.
// An empty result falls back to the default steps.
func NormalizeSteps(steps []float64) []float64 {
	valid := pie.Filter(steps, func(step float64) bool {
		return step >= 0 && !math.IsNaN(step) && !math.IsInf(step, 0)
	})
	if len(valid) == 0 {
		valid = constants.DefaultScoreToleranceSteps
	}
	normalized := pie.Unique(valid)
	sort.Float64s(normalized)
	return normalized
}
