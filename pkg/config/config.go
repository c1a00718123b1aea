// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"github.com/caarlos0/env"
)

type Config struct {
	DefaultScoreWindow      float64   `env:"RANK_DEFAULT_SCORE_WINDOW"        envDefault:"200"   envDocs:"score window used when the caller does not provide a window list"`
	ScoreWindows            []float64 `env:"RANK_SCORE_WINDOWS"               envSeparator:","   envDocs:"ascending score windows tried by the room builder (empty means default window only)"`
	MaxRoomsPerPass         int       `env:"RANK_MAX_ROOMS_PER_PASS"          envDefault:"8"     envDocs:"max number of candidate rooms built from one queue pass"`
	MaxPivots               int       `env:"RANK_MAX_PIVOTS"                  envDefault:"8"     envDocs:"max oldest groups of the first role tried as room seed per window"`
	MaxCombinationGroups    int       `env:"RANK_MAX_COMBINATION_GROUPS"      envDefault:"12"    envDocs:"max eligible groups considered by the exact subset search of a role"`
	NonRealtimeScoreWindow  float64   `env:"RANK_NON_REALTIME_SCORE_WINDOW"   envDefault:"200"   envDocs:"allowed distance between a simulated participant score and the role average"`
	NonRealtimePerRole      int       `env:"RANK_NON_REALTIME_PER_ROLE"       envDefault:"3"     envDocs:"max simulated participants sampled per role"`
	NonRealtimeTotal        int       `env:"RANK_NON_REALTIME_TOTAL"          envDefault:"10"    envDocs:"max simulated participants sampled overall"`
	StandinToleranceSteps   []float64 `env:"RANK_STANDIN_TOLERANCE_STEPS"     envDefault:"50,100,150,200,300,400,600" envSeparator:"," envDocs:"ascending gap tolerances tried by the stand-in resolver"`
	StandinCandidateLimit   int       `env:"RANK_STANDIN_CANDIDATE_LIMIT"     envDefault:"20"    envDocs:"max candidates requested per seat lookup"`
	StandinParallelism      int       `env:"RANK_STANDIN_PARALLELISM"         envDefault:"4"     envDocs:"max concurrent seat lookups"`
	StandinEnabled          bool      `env:"RANK_STANDIN_ENABLED"             envDefault:"true"  envDocs:"resolve stand-ins when the first room is not ready"`
	StandinAllowPlaceholder bool      `env:"RANK_STANDIN_ALLOW_PLACEHOLDER"   envDefault:"true"  envDocs:"synthesize a placeholder when no real stand-in qualifies"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

