// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package roombuilder

import (
	"gonum.org/v1/gonum/stat/combin"
	"gopkg.in/typ.v4/slices"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

// roleFinder fills the seats of one role on top of a base draft.
type roleFinder struct {
	role   models.RoleSpec
	base   *roomDraft // to reset
	result *roomDraft
}

func newRoleFinder(role models.RoleSpec, base *roomDraft) *roleFinder {
	return &roleFinder{
		role:   role,
		base:   base,
		result: base.clone(),
	}
}

func (f *roleFinder) Reset() {
	f.result = f.base.clone()
}

func (f *roleFinder) GetCurrentResult() *roomDraft {
	return f.result
}

// AssignGroup reports whether the group can be seated; conflicts are recorded for diagnostics.
func (f *roleFinder) AssignGroup(group *candidateGroup) (success bool) {
	if f.result.hasGroup(group) {
		return false
	}

	// skip this group if it does not fit the free seats (parties may span roles)
	if !f.result.fits(group) {
		return false
	}

	if reason := f.result.conflict(group); reason != "" {
		f.result.block(group, reason)
		return false
	}

	return true
}

func (f *roleFinder) AppendResult(group *candidateGroup) {
	f.result.add(group)
}

func (f *roleFinder) IsFulfilled() bool {
	return f.result.remaining(f.role.Name) == 0
}

// fillRole seats groups of the role FIFO; when the greedy pass cannot hit the exact
// slot count it searches the oldest eligible groups for an exact combination.
func fillRole(draft *roomDraft, role models.RoleSpec, candidates []*candidateGroup, maxCombinationGroups int) *roomDraft {
	finder := newRoleFinder(role, draft)
	if finder.IsFulfilled() {
		return finder.GetCurrentResult()
	}

	for _, group := range candidates {
		if finder.IsFulfilled() {
			break
		}
		if finder.AssignGroup(group) {
			finder.AppendResult(group)
		}
	}
	if finder.IsFulfilled() {
		return finder.GetCurrentResult()
	}

	greedy := finder.GetCurrentResult()
	exact := findExactCombination(draft, role, candidates, maxCombinationGroups)
	if exact == nil {
		return greedy
	}
	exact.blocked = greedy.blocked
	return exact
}

// findExactCombination returns the base draft extended with the fewest, oldest groups
// that fill the role exactly, or nil.
func findExactCombination(base *roomDraft, role models.RoleSpec, candidates []*candidateGroup, maxGroups int) *roomDraft {
	need := base.remaining(role.Name)
	if need <= 0 {
		return nil
	}

	eligible := slices.Filter(candidates, func(group *candidateGroup) bool {
		return !base.hasGroup(group) && base.fits(group) && base.conflict(group) == ""
	})
	if maxGroups > 0 && len(eligible) > maxGroups {
		eligible = eligible[:maxGroups]
	}

	n := len(eligible)
	combination := make([]int, 0, n)
	for k := 1; k <= n; k++ {
		generator := combin.NewCombinationGenerator(n, k)
		combination = combination[:k]
		for generator.Next() {
			generator.Combination(combination)

			seats := 0
			for _, idx := range combination {
				seats += eligible[idx].roleCounts[role.Name]
			}
			if seats != need {
				continue
			}

			draft := base.clone()
			ok := true
			for _, idx := range combination {
				group := eligible[idx]
				if !draft.fits(group) || draft.conflict(group) != "" {
					ok = false
					break
				}
				draft.add(group)
			}
			if ok {
				return draft
			}
		}
	}
	return nil
}
