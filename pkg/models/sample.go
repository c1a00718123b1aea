// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

// SampleMeta describes how a candidate sample was drawn.
// Offline-only fields stay zero for realtime samples.
type SampleMeta struct {
	Realtime          bool               `json:"realtime"`
	SampleType        string             `json:"sample_type"`
	QueueSampled      int                `json:"queue_sampled"`
	SimulatedFiltered int                `json:"simulated_filtered,omitempty"`
	SimulatedEligible int                `json:"simulated_eligible,omitempty"`
	SimulatedSelected int                `json:"simulated_selected,omitempty"`
	PerRoleLimit      int                `json:"per_role_limit,omitempty"`
	TotalLimit        int                `json:"total_limit,omitempty"`
	ScoreWindow       float64            `json:"score_window,omitempty"`
	RoleAverageScores map[string]float64 `json:"role_average_scores,omitempty"`
	DuplicateEligible int                `json:"duplicate_eligible,omitempty"`
	DuplicateSelected int                `json:"duplicate_selected,omitempty"`
}
