// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package standin

import (
	"github.com/elliotchance/pie/v2"
	"github.com/go-openapi/swag"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

// SeatRequestsFromRoom asks for one stand-in per unoccupied slot of the room.
// Seats are referenced to the room average when the room has members, and exclude the
// heroes already seated.
func SeatRequestsFromRoom(room models.Room) []models.SeatRequest {
	var score *float64
	if room.FilledSlots > 0 {
		score = swag.Float64(room.AverageScore)
	}
	heroes := SeatedHeroes(room)

	empty := room.EmptySlots()
	seats := make([]models.SeatRequest, 0, len(empty))
	for _, slot := range empty {
		seats = append(seats, models.SeatRequest{
			SlotIndex:      slot.SlotIndex,
			Role:           slot.Role,
			Score:          score,
			ExcludeHeroIDs: append([]string(nil), heroes...),
		})
	}
	return seats
}

// SeatedHeroes lists the distinct non-empty heroes seated in the room.
func SeatedHeroes(room models.Room) []string {
	heroes := pie.Map(room.Members(), func(e models.QueueEntry) string { return e.HeroID })
	heroes = pie.Filter(heroes, func(heroID string) bool { return heroID != "" })
	return pie.Sort(pie.Unique(heroes))
}
