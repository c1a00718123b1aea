// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/utils"
)

// QueueEntry is one candidate waiting to be seated.
// Entries sharing a PartyKey must be seated together.
type QueueEntry struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	HeroID      string    `json:"hero_id,omitempty"`
	Role        string    `json:"role"`
	Score       float64   `json:"score"`
	Rating      float64   `json:"rating,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
	PartyKey    string    `json:"party_key,omitempty"`
	MatchSource string    `json:"match_source,omitempty"`
}

// Source returns where the entry came from, queue by default.
func (e QueueEntry) Source() string {
	if e.MatchSource == "" {
		return constants.MatchSourceQueue
	}
	return e.MatchSource
}

// WithSource returns a copy of the entry tagged with the given match source.
func (e QueueEntry) WithSource(source string) QueueEntry {
	e.MatchSource = source
	return e
}

// QueueEntryParseError reports a rejected raw row.
type QueueEntryParseError struct {
	Row int
	Err error
}

func (e QueueEntryParseError) Error() string {
	return fmt.Sprintf("queue row %d: %s", e.Row, e.Err.Error())
}

func (e QueueEntryParseError) Unwrap() error {
	return e.Err
}

// ParseQueueEntry validates and normalizes a loosely typed queue row.
// Both snake_case and camelCase keys are accepted; ids may be numbers.
func ParseQueueEntry(raw map[string]interface{}) (QueueEntry, error) {
	var entry QueueEntry
	if raw == nil {
		return entry, newValidationError("id", ValidationErrorMissingEntryID)
	}

	entry.ID = stringField(raw, "id", "entry_id", "entryId")
	if entry.ID == "" {
		return entry, newValidationError("id", ValidationErrorMissingEntryID)
	}
	entry.OwnerID = stringField(raw, "owner_id", "ownerId")
	if entry.OwnerID == "" {
		return entry, newValidationError("owner_id", ValidationErrorMissingOwnerID)
	}
	entry.Role = stringField(raw, "role")
	if entry.Role == "" {
		return entry, newValidationError("role", ValidationErrorMissingRole)
	}
	entry.HeroID = stringField(raw, "hero_id", "heroId")
	entry.PartyKey = stringField(raw, "party_key", "partyKey")
	entry.MatchSource = stringField(raw, "match_source", "matchSource")

	score, err := numberField(raw, "score")
	if err != nil {
		return entry, newValidationError("score", err)
	}
	entry.Score = score

	rating, err := numberField(raw, "rating")
	if err != nil {
		return entry, newValidationError("rating", err)
	}
	entry.Rating = rating

	joinedAt, err := timeField(raw, "joined_at", "joinedAt")
	if err != nil {
		return entry, newValidationError("joined_at", err)
	}
	entry.JoinedAt = joinedAt

	return entry, nil
}

// ParseQueue parses every row, keeping valid entries in input order.
func ParseQueue(rows []map[string]interface{}) ([]QueueEntry, []QueueEntryParseError) {
	entries := make([]QueueEntry, 0, len(rows))
	var rejected []QueueEntryParseError
	for i, row := range rows {
		entry, err := ParseQueueEntry(row)
		if err != nil {
			rejected = append(rejected, QueueEntryParseError{Row: i, Err: err})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, rejected
}

func stringField(raw map[string]interface{}, keys ...string) string {
	v, ok := utils.FirstValue(raw, keys...)
	if !ok {
		return ""
	}
	return utils.ToString(v)
}

func numberField(raw map[string]interface{}, keys ...string) (float64, error) {
	v, ok := utils.FirstValue(raw, keys...)
	if !ok {
		return 0, nil
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return 0, nil
	}
	f, ok := utils.ToFloat64(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ValidationErrorInvalidScore
	}
	return f, nil
}

func timeField(raw map[string]interface{}, keys ...string) (time.Time, error) {
	v, ok := utils.FirstValue(raw, keys...)
	if !ok {
		return time.Time{}, nil
	}
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(val))
		if err != nil {
			return time.Time{}, ValidationErrorInvalidJoinedAt
		}
		return t, nil
	default:
		f, ok := utils.ToFloat64(v)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return time.Time{}, ValidationErrorInvalidJoinedAt
		}
		// millisecond timestamps
		if f > 1e12 {
			return time.UnixMilli(int64(f)).UTC(), nil
		}
		return time.Unix(int64(f), 0).UTC(), nil
	}
}
