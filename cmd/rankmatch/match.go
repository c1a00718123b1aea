// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/envelope"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/matchmaker"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/matchmaker/rankmatchmaker"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/matchmaker/standin"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/metrics"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Sample, build rooms, report readiness and resolve stand-ins for one request",
	Args:  cobra.NoArgs,
	RunE:  runMatch,
}

type matchOutput struct {
	*matchmaker.MatchOutcome
	Rejected []rejectedRow `json:"rejected,omitempty"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	scope := envelope.NewRootScope(cmd.Context(), "rankmatch.match", traceID)
	defer scope.Finish()

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	var input matchInput
	if err := decodeInput(in, &input); err != nil {
		return err
	}

	request, rejected := input.toMatchRequest()
	for _, row := range rejected {
		scope.Log.WithField("source", row.Source).WithField("row", row.Row).Warn(row.Error)
	}

	var provider matchmaker.CandidateProvider
	if len(input.StandInPool) > 0 {
		provider = standin.NewStaticCandidateProvider(input.StandInPool)
	}

	mm := rankmatchmaker.NewRankMatchMaker(appConfig, metrics.NewMetrics(prometheus.NewRegistry()), provider)
	outcome, err := mm.MatchRoom(scope, request)
	if err != nil {
		scope.RecordError(err)
		return err
	}

	return writeOutput(cmd.OutOrStdout(), matchOutput{MatchOutcome: outcome, Rejected: rejected})
}
