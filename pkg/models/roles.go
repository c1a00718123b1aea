// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"strings"

	validator "github.com/AccelByte/justice-input-validation-go"
)

// RoleSpec describes one role of a game and how many seats it needs.
type RoleSpec struct {
	Name      string `json:"name"       valid:"stringlength(1|64)"`
	SlotCount int    `json:"slot_count" valid:"range(1|2147483647)"`
}

// Roles is the role capacity model of a game, in seating order.
type Roles []RoleSpec

func (r RoleSpec) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return newValidationError("name", ValidationErrorEmptyRoleName)
	}
	if r.SlotCount < 1 {
		return newValidationError(r.Name, ValidationErrorSlotCount)
	}
	if _, err := validator.ValidateStruct(r); err != nil {
		return newValidationError(r.Name, err)
	}
	return nil
}

func (roles Roles) Validate() error {
	if len(roles) == 0 {
		return newValidationError("roles", ValidationErrorNoRoles)
	}
	seen := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		if err := role.Validate(); err != nil {
			return err
		}
		if _, ok := seen[role.Name]; ok {
			return newValidationError(role.Name, ValidationErrorDuplicateRoleName)
		}
		seen[role.Name] = struct{}{}
	}
	return nil
}

// TotalSlots is the sum of slot counts over every role.
func (roles Roles) TotalSlots() int {
	var total int
	for _, role := range roles {
		total += role.SlotCount
	}
	return total
}

// CapacityMap returns role name -> slot count.
func (roles Roles) CapacityMap() map[string]int {
	capacity := make(map[string]int, len(roles))
	for _, role := range roles {
		capacity[role.Name] += role.SlotCount
	}
	return capacity
}

func (roles Roles) Has(name string) bool {
	for _, role := range roles {
		if role.Name == name {
			return true
		}
	}
	return false
}

func (roles Roles) Names() []string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	return names
}

// SlotOffsets returns the index of the first slot of each role when the room is laid out in role order.
func (roles Roles) SlotOffsets() map[string]int {
	offsets := make(map[string]int, len(roles))
	var offset int
	for _, role := range roles {
		offsets[role.Name] = offset
		offset += role.SlotCount
	}
	return offsets
}
