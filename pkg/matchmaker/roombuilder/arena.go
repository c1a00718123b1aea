// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package roombuilder

// arena is the candidate pool the builder checks groups out of, one room at a time.
type arena struct {
	groups     []*candidateGroup
	checkedOut map[string]struct{}
}

func newArena(groups []*candidateGroup) *arena {
	return &arena{
		groups:     groups,
		checkedOut: make(map[string]struct{}),
	}
}

// available returns the groups still in the pool, FIFO ordered.
func (a *arena) available() []*candidateGroup {
	available := make([]*candidateGroup, 0, len(a.groups)-len(a.checkedOut))
	for _, group := range a.groups {
		if _, out := a.checkedOut[group.key]; out {
			continue
		}
		available = append(available, group)
	}
	return available
}

func (a *arena) checkout(groups []*candidateGroup) {
	for _, group := range groups {
		a.checkedOut[group.key] = struct{}{}
	}
}

func (a *arena) isEmpty() bool {
	return len(a.checkedOut) >= len(a.groups)
}
