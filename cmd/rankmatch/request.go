// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/config"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/matchmaker"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/models"
)

var appConfig *config.Config

// matchInput is the CLI request; queue rows stay loosely typed until ingestion.
type matchInput struct {
	GameID          string                   `json:"game_id"`
	RoomID          string                   `json:"room_id,omitempty"`
	Roles           models.Roles             `json:"roles"`
	Queue           []map[string]interface{} `json:"queue"`
	ParticipantPool []map[string]interface{} `json:"participant_pool,omitempty"`
	Realtime        bool                     `json:"realtime"`
	ScoreWindows    []float64                `json:"score_windows,omitempty"`
	Rules           *models.SamplerRules     `json:"rules,omitempty"`
	RandomSeed      int64                    `json:"random_seed,omitempty"`
	StandInPool     []models.Candidate       `json:"standin_pool,omitempty"`
}

type resolveInput struct {
	models.ResolveRequest
	RandomSeed  int64              `json:"random_seed,omitempty"`
	StandInPool []models.Candidate `json:"standin_pool,omitempty"`
}

type rejectedRow struct {
	Source string `json:"source"`
	Row    int    `json:"row"`
	Code   int    `json:"code"`
	Error  string `json:"error"`
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func decodeInput(r io.Reader, v interface{}) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

// toMatchRequest parses the raw queue and pool rows; malformed rows are returned, not matched.
func (in matchInput) toMatchRequest() (matchmaker.MatchRequest, []rejectedRow) {
	queue, queueErrs := models.ParseQueue(in.Queue)
	pool, poolErrs := models.ParseQueue(in.ParticipantPool)

	var rejected []rejectedRow
	for _, parseErr := range queueErrs {
		rejected = append(rejected, newRejectedRow("queue", parseErr))
	}
	for _, parseErr := range poolErrs {
		rejected = append(rejected, newRejectedRow("participant_pool", parseErr))
	}

	return matchmaker.MatchRequest{
		GameID:          in.GameID,
		RoomID:          in.RoomID,
		Roles:           in.Roles,
		Queue:           queue,
		ParticipantPool: pool,
		Realtime:        in.Realtime,
		ScoreWindows:    in.ScoreWindows,
		Rules:           in.Rules,
		RandomSeed:      in.RandomSeed,
	}, rejected
}

func newRejectedRow(source string, parseErr models.QueueEntryParseError) rejectedRow {
	return rejectedRow{
		Source: source,
		Row:    parseErr.Row,
		Code:   models.ValidationErrorCode(parseErr.Err),
		Error:  parseErr.Error(),
	}
}

func writeOutput(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
