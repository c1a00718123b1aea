// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/envelope"
)

const testScopeName = "rank-matchmaker-test"

// NewTestScope creates a new scope for test use
func NewTestScope() *envelope.Scope {
	return NewTestScopeWithContext(context.Background())
}

// NewTestScopeWithContext binds the test scope to ctx, e.g. a cancelled or deadline context.
func NewTestScopeWithContext(ctx context.Context) *envelope.Scope {
	return envelope.NewRootScope(ctx, testScopeName, "")
}

// NewTestScopeWithLogger creates a new scope using the given logger for test use
func NewTestScopeWithLogger(logger *logrus.Logger) *envelope.Scope {
	scope := NewTestScope()
	scope.SetLogger(logger)
	return scope
}
