// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package readiness reduces room builder output into a readiness snapshot for dashboards.
package readiness

import (
	"sort"
	"time"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/mathutil"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

// QueueCounts counts live queue entries per role.
func QueueCounts(queue []models.QueueEntry) map[string]int {
	counts := make(map[string]int)
	for _, entry := range queue {
		counts[entry.Role]++
	}
	return counts
}

// BuildReport summarizes a match result against role capacity and the live queue.
// It never modifies its inputs.
func BuildReport(result models.MatchResult, capacity map[string]int, queue []models.QueueEntry, now time.Time) models.Report {
	queueCounts := QueueCounts(queue)

	report := models.Report{
		Ready:           result.Ready,
		TotalSlots:      result.TotalSlots,
		MaxWindow:       result.MaxWindow,
		Error:           result.Error,
		ErrorAggregates: aggregateErrors(result),
		CapacityMap:     copyCounts(capacity),
		QueueCounts:     queueCounts,
		QueueSize:       len(queue),
		Deficit:         make(map[string]int, len(capacity)),
		RoomCount:       len(result.Rooms),
		SkippedEntries:  result.SkippedEntries,
	}

	for role, slots := range capacity {
		report.Deficit[role] = mathutil.Max(0, slots-queueCounts[role])
	}

	if room, ok := result.FirstRoom(); ok {
		for _, assignment := range room.Assignments {
			for _, slot := range assignment.RoleSlots {
				status := models.SlotStatus{
					SlotIndex: slot.SlotIndex,
					Role:      slot.Role,
					Occupied:  slot.Occupied,
				}
				if slot.Occupied && len(slot.Members) > 0 {
					status.OwnerID = slot.Members[0].OwnerID
					status.MatchSource = slot.Members[0].Source()
					report.AssignedSlots++
				}
				report.Slots = append(report.Slots, status)
			}
		}
	}
	report.MissingSlots = mathutil.Max(0, report.TotalSlots-report.AssignedSlots)
	report.QueueWaitSeconds = oldestWaitSeconds(queue, now)

	return report
}

// aggregateErrors sums error groups of every room by role and reason,
// plus the unsupported role counts of the result whether or not it is ready.
func aggregateErrors(result models.MatchResult) []models.ErrorGroup {
	type key struct{ role, reason string }
	totals := make(map[key]int)
	for _, room := range result.Rooms {
		if room.Error == nil {
			continue
		}
		for _, group := range room.Error.Groups {
			totals[key{group.Role, group.Reason}] += group.Size
		}
	}
	for _, group := range result.Unsupported {
		totals[key{group.Role, group.Reason}] += group.Size
	}

	aggregates := make([]models.ErrorGroup, 0, len(totals))
	for k, size := range totals {
		aggregates = append(aggregates, models.ErrorGroup{Role: k.role, Reason: k.reason, Size: size})
	}
	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].Role != aggregates[j].Role {
			return aggregates[i].Role < aggregates[j].Role
		}
		return aggregates[i].Reason < aggregates[j].Reason
	})
	return aggregates
}

func oldestWaitSeconds(queue []models.QueueEntry, now time.Time) float64 {
	var oldest time.Time
	for _, entry := range queue {
		if entry.JoinedAt.IsZero() {
			continue
		}
		if oldest.IsZero() || entry.JoinedAt.Before(oldest) {
			oldest = entry.JoinedAt
		}
	}
	if oldest.IsZero() || now.IsZero() {
		return 0
	}
	return mathutil.Max(0, now.Sub(oldest).Seconds())
}

func copyCounts(counts map[string]int) map[string]int {
	copied := make(map[string]int, len(counts))
	for k, v := range counts {
		copied[k] = v
	}
	return copied
}
