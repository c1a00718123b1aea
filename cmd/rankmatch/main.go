// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Command rankmatch runs one rank matchmaking cycle over a JSON request and prints the outcome.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/config"
)

const serviceName = "rank-matchmaker"

var (
	inputPath string
	traceID   string
	pretty    bool
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:           "rankmatch",
	Short:         "Rank matchmaking and seat filling",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetOutput(os.Stderr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "-", "request JSON file, - for stdin")
	rootCmd.PersistentFlags().StringVar(&traceID, "trace-id", "", "trace id attached to every log line")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logrus level")

	rootCmd.AddCommand(matchCmd, resolveCmd)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("unable to load config")
	}
	appConfig = cfg

	ctx := context.Background()
	shutdown, err := setupTracing(ctx, serviceName)
	if err != nil {
		logrus.WithError(err).Fatal("unable to set up tracing")
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			logrus.WithError(err).Warn("tracer shutdown failed")
		}
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("rankmatch failed")
		_ = shutdown(ctx)
		os.Exit(1)
	}
}
