// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package standin fills the seats the live queue could not satisfy with historical
// participants or synthesized placeholders.
package standin

import (
	"math/rand"
	"sync"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/config"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/envelope"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/matchmaker"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

const (
	defaultCandidateLimit = 20
	defaultParallelism    = 4
)

type Options struct {
	ToleranceSteps []float64
	CandidateLimit int
	Parallelism    int
}

func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{}.withDefaults()
	}
	return Options{
		ToleranceSteps: cfg.StandinToleranceSteps,
		CandidateLimit: cfg.StandinCandidateLimit,
		Parallelism:    cfg.StandinParallelism,
	}.withDefaults()
}

func (o Options) withDefaults() Options {
	o.ToleranceSteps = NormalizeSteps(o.ToleranceSteps)
	if o.CandidateLimit <= 0 {
		o.CandidateLimit = defaultCandidateLimit
	}
	if o.Parallelism <= 0 {
		o.Parallelism = defaultParallelism
	}
	return o
}

// Resolver looks up stand-ins for a batch of seats.
// Lookups run in parallel, picks are committed one seat at a time in request order.
type Resolver struct {
	provider matchmaker.CandidateProvider
	opts     Options

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewResolver creates a resolver. A nil rng falls back to a time seeded source.
func NewResolver(provider matchmaker.CandidateProvider, opts Options, rng *rand.Rand) *Resolver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Resolver{
		provider: provider,
		opts:     opts.withDefaults(),
		rng:      rng,
	}
}

type seatLookup struct {
	candidates   []models.Candidate
	roleFallback bool
	err          error
}

type seatOutcome struct {
	assignment *models.SeatAssignment
	diagnostic models.SeatDiagnostic
}

// Resolve never fails as a whole: every seat reports whether it was filled and why not.
// Seats committed before scope.Ctx is cancelled are kept in the response.
func (r *Resolver) Resolve(rootScope *envelope.Scope, request models.ResolveRequest) models.ResolveResponse {
	scope := rootScope.NewChildScope("standin.Resolve")
	defer scope.Finish()

	scope.SetAttributes(envelope.GameIDTag, request.GameID)
	scope.SetAttributes(envelope.SeatRequestTag, len(request.SeatRequests))
	if request.RoomID != "" {
		scope.SetAttributes(envelope.RoomIDTag, request.RoomID)
	}

	limit := request.Limit
	if limit <= 0 {
		limit = r.opts.CandidateLimit
	}

	excluded := NewExclusionSet(request.ExcludeOwnerIDs...).ExcludeHeroes(request.ExcludeHeroIDs...)
	outcomes := make([]seatOutcome, len(request.SeatRequests))

	var group errgroup.Group
	group.SetLimit(r.opts.Parallelism)

	previous := make(chan struct{})
	close(previous)
	for i := range request.SeatRequests {
		i := i
		seat := request.SeatRequests[i]
		wait, done := previous, make(chan struct{})
		previous = done

		group.Go(func() error {
			defer close(done)

			lookup := r.lookup(scope, request, seat, limit)
			<-wait
			outcomes[i] = r.commit(scope, seat, lookup, excluded, request.AllowPlaceholders)
			return nil
		})
	}
	_ = group.Wait()

	response := models.ResolveResponse{
		RequestID: ulid.Make().String(),
		Diagnostics: models.ResolveDiagnostics{
			Requested: len(request.SeatRequests),
			Seats:     make([]models.SeatDiagnostic, 0, len(outcomes)),
		},
	}
	for _, outcome := range outcomes {
		response.Diagnostics.Seats = append(response.Diagnostics.Seats, outcome.diagnostic)
		if outcome.assignment == nil {
			continue
		}
		response.Queue = append(response.Queue, outcome.assignment.Candidate)
		response.Assignments = append(response.Assignments, *outcome.assignment)
		response.Diagnostics.Filled++
		if outcome.assignment.Candidate.Placeholder {
			response.Diagnostics.Placeholders++
		}
	}
	response.Diagnostics.ExcludedOwners = excluded.Snapshot()
	response.Diagnostics.ExcludedHeroes = excluded.HeroSnapshot()

	scope.Log.
		WithField("requested", response.Diagnostics.Requested).
		WithField("filled", response.Diagnostics.Filled).
		WithField("placeholders", response.Diagnostics.Placeholders).
		Info("stand-in resolution finished")

	return response
}

// lookup queries the role pool and retries once without a role when it is empty.
// Queries only carry the request exclusions so the fetched pool does not depend on
// which seats committed first; commit filters the live exclusion set.
func (r *Resolver) lookup(scope *envelope.Scope, request models.ResolveRequest, seat models.SeatRequest, limit int) seatLookup {
	excludeOwnerIDs := pie.Sort(pie.Unique(concat(request.ExcludeOwnerIDs, seat.ExcludeOwnerIDs)))
	excludeHeroIDs := pie.Sort(pie.Unique(concat(request.ExcludeHeroIDs, seat.ExcludeHeroIDs)))

	query := matchmaker.CandidateQuery{
		GameID:          request.GameID,
		Role:            seat.Role,
		Score:           seat.Score,
		Rating:          seat.Rating,
		ExcludeOwnerIDs: excludeOwnerIDs,
		ExcludeHeroIDs:  excludeHeroIDs,
		Limit:           limit,
	}

	candidates, err := r.provider.RankedCandidates(scope, query)
	if err != nil {
		scope.Log.WithError(err).Errorf("stand-in lookup failed for slot %d role %q", seat.SlotIndex, seat.Role)
		return seatLookup{err: err}
	}
	if len(candidates) > 0 || seat.Role == "" {
		return seatLookup{candidates: candidates}
	}

	query.Role = ""
	candidates, err = r.provider.RankedCandidates(scope, query)
	if err != nil {
		scope.Log.WithError(err).Errorf("role agnostic stand-in lookup failed for slot %d", seat.SlotIndex)
		return seatLookup{roleFallback: true, err: err}
	}
	return seatLookup{candidates: candidates, roleFallback: true}
}

func (r *Resolver) commit(scope *envelope.Scope, seat models.SeatRequest, lookup seatLookup, excluded *ExclusionSet, allowPlaceholders bool) seatOutcome {
	diagnostic := models.SeatDiagnostic{
		SlotIndex:    seat.SlotIndex,
		Role:         seat.Role,
		RoleFallback: lookup.roleFallback,
		Fetched:      len(lookup.candidates),
	}
	if lookup.err != nil {
		diagnostic.Error = lookup.err.Error()
	}
	if err := scope.Ctx.Err(); err != nil {
		diagnostic.Error = err.Error()
		return seatOutcome{diagnostic: diagnostic}
	}

	r.rngMu.Lock()
	defer r.rngMu.Unlock()

	var selection *models.Selection
	picked := excluded.Commit(func(taken Filter) *models.Candidate {
		var candidate *models.Candidate
		candidate, selection = SelectCandidate(seat, lookup.candidates, taken, r.opts.ToleranceSteps, r.rng)
		if candidate == nil && allowPlaceholders {
			placeholder := models.NewPlaceholderCandidate(seat, r.rng)
			candidate = &placeholder
		}
		return candidate
	})

	if picked == nil {
		scope.Log.Debugf("no stand-in for slot %d role %q", seat.SlotIndex, seat.Role)
		return seatOutcome{diagnostic: diagnostic}
	}

	if !picked.Placeholder {
		picked.MatchSource = constants.MatchSourceAsyncStandIn
	}
	diagnostic.Filled = true
	diagnostic.Placeholder = picked.Placeholder
	if selection != nil {
		diagnostic.PoolSize = selection.PoolSize
		diagnostic.Tolerance = selection.Tolerance
		diagnostic.Iteration = selection.Iteration
	}

	return seatOutcome{
		assignment: &models.SeatAssignment{
			SlotIndex: seat.SlotIndex,
			Role:      seat.Role,
			Candidate: *picked,
			Selection: selection,
		},
		diagnostic: diagnostic,
	}
}

func concat(a, b []string) []string {
	joined := make([]string, 0, len(a)+len(b))
	joined = append(joined, a...)
	return append(joined, b...)
}
