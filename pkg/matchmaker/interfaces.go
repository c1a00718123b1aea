// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"github.com/AccelByte/extend-rank-matchmaker/pkg/envelope"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

// Matchmaker runs one matchmaking cycle: sample candidates, build rooms, report readiness
// and fill the remaining seats of the first room with stand-ins.
type Matchmaker interface {
	MatchRoom(rootScope *envelope.Scope, request MatchRequest) (*MatchOutcome, error)
}

// CandidateProvider looks up ranked stand-in candidates, usually from the participant history store.
// Implementations must honour scope.Ctx cancellation.
type CandidateProvider interface {
	RankedCandidates(scope *envelope.Scope, query CandidateQuery) ([]models.Candidate, error)
}
