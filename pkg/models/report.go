// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

// SlotStatus is the occupancy of one seat of the first room.
type SlotStatus struct {
	SlotIndex   int    `json:"slot_index"`
	Role        string `json:"role"`
	Occupied    bool   `json:"occupied"`
	OwnerID     string `json:"owner_id,omitempty"`
	MatchSource string `json:"match_source,omitempty"`
}

// Report is the read-only readiness snapshot served to operational dashboards.
type Report struct {
	Ready            bool           `json:"ready"`
	TotalSlots       int            `json:"total_slots"`
	AssignedSlots    int            `json:"assigned_slots"`
	MissingSlots     int            `json:"missing_slots"`
	MaxWindow        float64        `json:"max_window"`
	Error            *MatchError    `json:"error"`
	ErrorAggregates  []ErrorGroup   `json:"error_aggregates"`
	CapacityMap      map[string]int `json:"capacity_map"`
	QueueCounts      map[string]int `json:"queue_counts"`
	QueueSize        int            `json:"queue_size"`
	QueueWaitSeconds float64        `json:"queue_wait_seconds"`
	Deficit          map[string]int `json:"deficit"`
	Slots            []SlotStatus   `json:"slots"`
	RoomCount        int            `json:"room_count"`
	SkippedEntries   int            `json:"skipped_entries"`
}
