// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"fmt"

	validator "github.com/AccelByte/justice-input-validation-go"
)

// SamplerRules limits how many simulated participants the offline sampler may add.
type SamplerRules struct {
	NonRealtimeScoreWindow      float64 `json:"non_realtime_score_window"       valid:"range(0|2147483647)"`
	NonRealtimeSimulatedPerRole int     `json:"non_realtime_simulated_per_role" valid:"range(0|2147483647)"`
	NonRealtimeSimulatedTotal   int     `json:"non_realtime_simulated_total"    valid:"range(0|2147483647)"`
}

func (r SamplerRules) Validate() error {
	if r.NonRealtimeScoreWindow < 0 {
		return newValidationError("non_realtime_score_window", ValidationErrorInvalidRules)
	}
	if r.NonRealtimeSimulatedPerRole < 0 || r.NonRealtimeSimulatedTotal < 0 {
		return newValidationError("non_realtime_simulated", ValidationErrorInvalidRules)
	}
	if _, err := validator.ValidateStruct(r); err != nil {
		return newValidationError("sampler_rules", fmt.Errorf("%w: %s", ValidationErrorInvalidRules, err.Error()))
	}
	return nil
}
