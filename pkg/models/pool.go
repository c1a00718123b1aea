// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"gopkg.in/typ.v4/sync2"
)

// Pool reusable objects to reduce garbage collector
type Pool struct {
	QueueEntries *sync2.Pool[[]QueueEntry]
}

func NewPool() *Pool {
	return &Pool{
		QueueEntries: &sync2.Pool[[]QueueEntry]{
			New: func() []QueueEntry {
				return make([]QueueEntry, 0, 12)
			},
		},
	}
}

var pool = NewPool()

// BorrowEntries returns an empty scratch slice; hand it back with ReturnEntries once no longer referenced.
func BorrowEntries() []QueueEntry {
	return pool.QueueEntries.Get()[:0]
}

func ReturnEntries(entries []QueueEntry) {
	if cap(entries) > 256 {
		return
	}
	pool.QueueEntries.Put(entries[:0])
}
