// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rankmatchmaker

import "time"

type elapsedTimer struct {
	startedAt time.Time
	total     time.Duration
}

func (t *elapsedTimer) start() {
	t.startedAt = time.Now()
}

func (t *elapsedTimer) end() {
	if t.startedAt.IsZero() {
		return
	}
	t.total += time.Since(t.startedAt)
	t.startedAt = time.Time{}
}

func (t *elapsedTimer) elapsed() time.Duration {
	return t.total
}

func convertToMapInterface(durations map[string]time.Duration) map[string]interface{} {
	fields := make(map[string]interface{}, len(durations))
	for k, v := range durations {
		fields[k] = v.Milliseconds()
	}
	return fields
}
