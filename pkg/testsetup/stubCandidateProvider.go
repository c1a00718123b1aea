// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"sync"
	"time"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/envelope"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/matchmaker"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

// StubCandidateProvider returns Candidates in the given order, filtered by role and exclusions.
// Err fails every lookup, ErrByRole only the role-scoped ones.
type StubCandidateProvider struct {
	Candidates     []models.Candidate
	Err            error
	ErrByRole      map[string]error
	PerLookupDelay time.Duration

	mu      sync.Mutex
	queries []matchmaker.CandidateQuery
}

func (s *StubCandidateProvider) RankedCandidates(scope *envelope.Scope, query matchmaker.CandidateQuery) ([]models.Candidate, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()

	if s.PerLookupDelay > 0 {
		select {
		case <-time.After(s.PerLookupDelay):
		case <-scope.Ctx.Done():
			return nil, scope.Ctx.Err()
		}
	}
	if err := scope.Ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if err, ok := s.ErrByRole[query.Role]; ok && query.Role != "" {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(query.ExcludeOwnerIDs))
	for _, ownerID := range query.ExcludeOwnerIDs {
		excluded[ownerID] = struct{}{}
	}

	var result []models.Candidate
	for _, candidate := range s.Candidates {
		if query.Role != "" && candidate.Role != query.Role {
			continue
		}
		if _, ok := excluded[candidate.OwnerID]; ok {
			continue
		}
		result = append(result, candidate)
		if query.Limit > 0 && len(result) == query.Limit {
			break
		}
	}
	return result, nil
}

// Queries returns every query received so far.
func (s *StubCandidateProvider) Queries() []matchmaker.CandidateQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	queries := make([]matchmaker.CandidateQuery, len(s.queries))
	copy(queries, s.queries)
	return queries
}
