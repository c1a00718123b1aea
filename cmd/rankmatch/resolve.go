// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/envelope"
	"github.com/AccelByte/extend-rank-matchmaker/pkg/matchmaker/standin"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve stand-ins for explicit seat requests",
	Args:  cobra.NoArgs,
	RunE:  runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	scope := envelope.NewRootScope(cmd.Context(), "rankmatch.resolve", traceID)
	defer scope.Finish()

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	var input resolveInput
	if err := decodeInput(in, &input); err != nil {
		return err
	}

	seed := input.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	resolver := standin.NewResolver(
		standin.NewStaticCandidateProvider(input.StandInPool),
		standin.OptionsFromConfig(appConfig),
		rand.New(rand.NewSource(seed)),
	)
	response := resolver.Resolve(scope, input.ResolveRequest)

	return writeOutput(cmd.OutOrStdout(), response)
}
