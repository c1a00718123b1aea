// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/constants"
)

func TestParseQueueEntry(t *testing.T) {
	joined := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     map[string]interface{}
		want    QueueEntry
		wantErr error
	}{
		{
			name: "snake case row",
			raw: map[string]interface{}{
				"id": "e1", "owner_id": "o1", "hero_id": "h1", "role": "attack",
				"score": 1200.0, "joined_at": joined.Format(time.RFC3339), "party_key": "p1",
			},
			want: QueueEntry{ID: "e1", OwnerID: "o1", HeroID: "h1", Role: "attack", Score: 1200, JoinedAt: joined, PartyKey: "p1"},
		},
		{
			name: "camel case row with numeric ids",
			raw: map[string]interface{}{
				"id": 7.0, "ownerId": "o2", "heroId": 999.0, "role": "defense",
				"score": "1180", "joinedAt": float64(joined.Unix()),
			},
			want: QueueEntry{ID: "7", OwnerID: "o2", HeroID: "999", Role: "defense", Score: 1180, JoinedAt: joined},
		},
		{
			name: "millisecond join time and missing score",
			raw: map[string]interface{}{
				"id": "e3", "owner_id": "o3", "role": "support", "joined_at": float64(joined.UnixMilli()),
			},
			want: QueueEntry{ID: "e3", OwnerID: "o3", Role: "support", JoinedAt: joined},
		},
		{
			name:    "missing id",
			raw:     map[string]interface{}{"owner_id": "o1", "role": "attack"},
			wantErr: ValidationErrorMissingEntryID,
		},
		{
			name:    "missing owner",
			raw:     map[string]interface{}{"id": "e1", "role": "attack"},
			wantErr: ValidationErrorMissingOwnerID,
		},
		{
			name:    "missing role",
			raw:     map[string]interface{}{"id": "e1", "owner_id": "o1"},
			wantErr: ValidationErrorMissingRole,
		},
		{
			name:    "non numeric score",
			raw:     map[string]interface{}{"id": "e1", "owner_id": "o1", "role": "attack", "score": "high"},
			wantErr: ValidationErrorInvalidScore,
		},
		{
			name:    "bad join time",
			raw:     map[string]interface{}{"id": "e1", "owner_id": "o1", "role": "attack", "joined_at": "yesterday"},
			wantErr: ValidationErrorInvalidJoinedAt,
		},
		{
			name:    "nil row",
			raw:     nil,
			wantErr: ValidationErrorMissingEntryID,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQueueEntry(tt.raw)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), err.Error())

				var validationErr *ValidationError
				assert.True(t, errors.As(err, &validationErr))
				assert.Equal(t, validationErrorCodeMap[tt.wantErr], ValidationErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.ID, got.ID)
			assert.Equal(t, tt.want.OwnerID, got.OwnerID)
			assert.Equal(t, tt.want.HeroID, got.HeroID)
			assert.Equal(t, tt.want.Role, got.Role)
			assert.Equal(t, tt.want.Score, got.Score)
			assert.Equal(t, tt.want.PartyKey, got.PartyKey)
			assert.True(t, tt.want.JoinedAt.Equal(got.JoinedAt), "joined at %s, want %s", got.JoinedAt, tt.want.JoinedAt)
		})
	}
}

func TestParseQueue_keepsValidRowsInOrder(t *testing.T) {
	rows := []map[string]interface{}{
		{"id": "a", "owner_id": "o1", "role": "attack", "score": 1000.0},
		{"id": "b", "role": "attack"},
		{"id": "c", "owner_id": "o3", "role": "defense", "score": 1100.0},
	}

	entries, rejected := ParseQueue(rows)

	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "c", entries[1].ID)
	require.Len(t, rejected, 1)
	assert.Equal(t, 1, rejected[0].Row)
	assert.ErrorIs(t, rejected[0], ValidationErrorMissingOwnerID)
}

func TestQueueEntry_Source(t *testing.T) {
	entry := QueueEntry{ID: "a"}
	assert.Equal(t, constants.MatchSourceQueue, entry.Source())

	tagged := entry.WithSource(constants.MatchSourceParticipantPool)
	assert.Equal(t, constants.MatchSourceParticipantPool, tagged.Source())
	assert.Empty(t, entry.MatchSource)
}

func TestValidationErrorCode_unknown(t *testing.T) {
	assert.Equal(t, 20002, ValidationErrorCode(errors.New("boom")))
}
