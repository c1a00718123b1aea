// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package roombuilder partitions queued candidates into constraint-satisfying rooms,
// widening the score window until a room closes.
package roombuilder

import (
	"math"
	"sort"

	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/config"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/envelope"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

const defaultMaxPivots = 8

// Input of one room builder pass. ScoreWindows nil or empty means the default window only.
type Input struct {
	Roles        models.Roles
	Queue        []models.QueueEntry
	ScoreWindows []float64
}

type Options struct {
	DefaultWindow        float64
	MaxRooms             int
	MaxPivots            int
	MaxCombinationGroups int
}

func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{}.withDefaults()
	}
	return Options{
		DefaultWindow:        cfg.DefaultScoreWindow,
		MaxRooms:             cfg.MaxRoomsPerPass,
		MaxPivots:            cfg.MaxPivots,
		MaxCombinationGroups: cfg.MaxCombinationGroups,
	}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.DefaultWindow <= 0 || math.IsNaN(o.DefaultWindow) {
		o.DefaultWindow = constants.DefaultScoreWindow
	}
	if o.MaxRooms <= 0 {
		o.MaxRooms = constants.DefaultMaxRooms
	}
	if o.MaxPivots <= 0 {
		o.MaxPivots = defaultMaxPivots
	}
	if o.MaxCombinationGroups <= 0 {
		o.MaxCombinationGroups = constants.DefaultMaxCombinationGroups
	}
	return o
}

// MatchRankParticipants builds up to MaxRooms candidate rooms from the queue.
// The result readiness and error describe the first room; the queue is never modified.
func MatchRankParticipants(rootScope *envelope.Scope, input Input, opts Options) models.MatchResult {
	scope := rootScope.NewChildScope("roombuilder.MatchRankParticipants")
	defer scope.Finish()

	opts = opts.withDefaults()
	windows := normalizeWindows(scope, input.ScoreWindows, opts.DefaultWindow)

	grouping := buildGroups(input.Roles, input.Queue)
	pool := newArena(grouping.groups)

	result := models.MatchResult{
		TotalSlots:     input.Roles.TotalSlots(),
		Unsupported:    unsupportedGroups(grouping.unsupported),
		SkippedEntries: grouping.skipped,
	}

	for roomIndex := 0; roomIndex < opts.MaxRooms; roomIndex++ {
		if roomIndex > 0 && pool.isEmpty() {
			break
		}

		draft, consulted := searchRoom(scope, input.Roles, pool.available(), windows, opts)
		if roomIndex == 0 {
			result.MaxWindow = consulted
		}

		if roomIndex > 0 && len(draft.groups) == 0 {
			break
		}

		room := draft.toRoom(roomIndex)
		checkRoomInvariants(scope, room)
		result.Rooms = append(result.Rooms, room)

		scope.Log.
			WithField("room", roomIndex).
			WithField("ready", room.Ready).
			WithField("window", room.Window).
			WithField("filledSlots", room.FilledSlots).
			Debug("room attempt finished")

		if len(draft.groups) == 0 {
			break
		}
		pool.checkout(draft.groups)
	}

	first := result.Rooms[0]
	result.Ready = first.Ready
	result.Assignments = first.Assignments
	if !result.Ready {
		result.Error = buildMatchError(first, result.Unsupported)
	}

	scope.SetAttributes(envelope.ReadyTag, result.Ready)
	scope.SetAttributes(envelope.QueueSizeTag, len(input.Queue))

	return result
}

// searchRoom tries the windows narrowest first and returns the first complete draft,
// or the fullest partial one, with the widest window it consulted.
func searchRoom(scope *envelope.Scope, roles models.Roles, available []*candidateGroup, windows []float64, opts Options) (*roomDraft, float64) {
	byRole := make(map[string][]*candidateGroup)
	for _, group := range available {
		byRole[group.primaryRole] = append(byRole[group.primaryRole], group)
	}

	// the first role with candidates seeds the room average
	var pivots []*candidateGroup
	for _, role := range roles {
		if len(byRole[role.Name]) > 0 {
			pivots = byRole[role.Name]
			break
		}
	}
	if len(pivots) > opts.MaxPivots {
		pivots = pivots[:opts.MaxPivots]
	}

	var (
		best      *roomDraft
		consulted float64
	)
	for _, window := range windows {
		consulted = window

		attempts := 0
		for _, pivot := range pivots {
			seed := newRoomDraft(roles, window)
			if !seed.fits(pivot) {
				continue
			}
			seed.add(pivot)
			attempts++

			draft := fillRoles(seed, roles, byRole, opts)
			if draft.complete() {
				return draft, consulted
			}
			if best == nil || draft.seated > best.seated {
				best = draft
			}
		}

		if attempts == 0 {
			draft := fillRoles(newRoomDraft(roles, window), roles, byRole, opts)
			if draft.complete() {
				return draft, consulted
			}
			if best == nil || draft.seated > best.seated {
				best = draft
			}
		}

		scope.Log.WithField("window", window).Debug("no room closed within window")
	}

	return best, consulted
}

func fillRoles(draft *roomDraft, roles models.Roles, byRole map[string][]*candidateGroup, opts Options) *roomDraft {
	for _, role := range roles {
		draft = fillRole(draft, role, byRole[role.Name], opts.MaxCombinationGroups)
	}
	return draft
}

// normalizeWindows sorts, de-duplicates and drops invalid windows.
func normalizeWindows(scope *envelope.Scope, windows []float64, defaultWindow float64) []float64 {
	if windows == nil {
		return []float64{defaultWindow}
	}
	if len(windows) == 0 {
		scope.Log.Warn("empty score window list, using default window only")
		return []float64{defaultWindow}
	}

	valid := pie.Filter(windows, func(w float64) bool {
		return w >= 0 && !math.IsNaN(w) && !math.IsInf(w, 0)
	})
	valid = pie.Unique(valid)
	sort.Float64s(valid)
	if len(valid) == 0 {
		scope.Log.WithField("windows", windows).Warn("no valid score window, using default window only")
		return []float64{defaultWindow}
	}
	return valid
}

func (d *roomDraft) toRoom(index int) models.Room {
	room := models.Room{
		Index:      index,
		Window:     d.window,
		TotalSlots: d.roles.TotalSlots(),
	}
	if avg, ok := d.average(); ok {
		room.AverageScore = avg
	}

	offsets := d.roles.SlotOffsets()
	var deficits []models.ErrorGroup
	for _, role := range d.roles {
		members := d.members[role.Name]
		assignment := models.RoomAssignment{
			Role:      role.Name,
			RoleSlots: make([]models.RoleSlot, 0, role.SlotCount),
			Members:   append([]models.QueueEntry{}, members...),
			Ready:     len(members) == role.SlotCount,
		}
		for i := 0; i < role.SlotCount; i++ {
			slot := models.RoleSlot{
				SlotIndex: offsets[role.Name] + i,
				Role:      role.Name,
				Members:   []models.QueueEntry{},
			}
			if i < len(members) {
				slot.Occupied = true
				slot.Members = []models.QueueEntry{members[i]}
			}
			assignment.RoleSlots = append(assignment.RoleSlots, slot)
		}
		room.FilledSlots += len(members)
		room.Assignments = append(room.Assignments, assignment)
		deficits = append(deficits, d.deficit(role)...)
	}

	room.MissingSlots = room.TotalSlots - room.FilledSlots
	room.Ready = room.IsComplete()
	if !room.Ready {
		room.Error = models.NewMatchError(deficits)
	}
	return room
}

// buildMatchError adds the unsupported role groups to the first room deficits.
func buildMatchError(room models.Room, unsupported []models.ErrorGroup) *models.MatchError {
	var groups []models.ErrorGroup
	if room.Error != nil {
		groups = append(groups, room.Error.Groups...)
	}
	groups = append(groups, unsupported...)
	return models.NewMatchError(groups)
}

// unsupportedGroups turns the per-role skip counts into error groups ordered by role.
func unsupportedGroups(unsupported map[string]int) []models.ErrorGroup {
	roles := make([]string, 0, len(unsupported))
	for role := range unsupported {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	groups := make([]models.ErrorGroup, 0, len(roles))
	for _, role := range roles {
		groups = append(groups, models.ErrorGroup{Role: role, Reason: constants.ReasonUnsupportedRole, Size: unsupported[role]})
	}
	return groups
}

// checkRoomInvariants logs rooms that seat an owner or a hero twice.
func checkRoomInvariants(scope *envelope.Scope, room models.Room) {
	members := models.BorrowEntries()
	defer func() { models.ReturnEntries(members) }()

	for _, assignment := range room.Assignments {
		members = append(members, assignment.Members...)
	}
	owners := make(map[string]struct{}, len(members))
	heroes := make(map[string]struct{}, len(members))
	for _, member := range members {
		if _, dup := owners[member.OwnerID]; dup {
			scope.Log.WithField("room", room.Index).WithField("ownerID", member.OwnerID).Error("owner seated twice in room")
		}
		owners[member.OwnerID] = struct{}{}
		if member.HeroID == "" {
			continue
		}
		if _, dup := heroes[member.HeroID]; dup {
			scope.Log.WithField("room", room.Index).WithField("heroID", member.HeroID).Error("hero seated twice in room")
		}
		heroes[member.HeroID] = struct{}{}
	}
}
