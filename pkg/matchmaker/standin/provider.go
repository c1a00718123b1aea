// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package standin

import (
	"sort"

	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/envelope"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/matchmaker"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

// StaticCandidateProvider serves stand-ins from an in-memory ranked pool.
type StaticCandidateProvider struct {
	candidates []models.Candidate
}

func NewStaticCandidateProvider(candidates []models.Candidate) *StaticCandidateProvider {
	pool := make([]models.Candidate, len(candidates))
	copy(pool, candidates)
	return &StaticCandidateProvider{candidates: pool}
}

// RankedCandidates returns the closest candidates to the query reference, nearest first.
func (p *StaticCandidateProvider) RankedCandidates(scope *envelope.Scope, query matchmaker.CandidateQuery) ([]models.Candidate, error) {
	if err := scope.Ctx.Err(); err != nil {
		return nil, err
	}

	excluded := newStaticFilter(query.ExcludeOwnerIDs, query.ExcludeHeroIDs)
	matches := pie.Filter(p.candidates, func(c models.Candidate) bool {
		if query.Role != "" && c.Role != query.Role {
			return false
		}
		return !excludes(excluded, c)
	})

	reference := models.SeatRequest{Score: query.Score, Rating: query.Rating}
	sort.SliceStable(matches, func(i, j int) bool {
		return Gap(reference, matches[i]) < Gap(reference, matches[j])
	})

	if query.Limit > 0 && len(matches) > query.Limit {
		matches = matches[:query.Limit]
	}
	return matches, nil
}
