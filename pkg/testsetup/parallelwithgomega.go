// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/onsi/gomega"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/envelope"
)

type GomegaWithScope struct {
	TestScope *envelope.Scope
	*gomega.GomegaWithT
	t *testing.T
}

func ParallelWithGomega(t *testing.T) GomegaWithScope {
	t.Parallel()
	return WithGomega(t)
}

func WithGomega(t *testing.T) GomegaWithScope {
	return GomegaWithScope{TestScope: NewTestScope(), GomegaWithT: gomega.NewGomegaWithT(t), t: t}
}

// DumpOnFailure logs a spew dump of values when the test has failed so far.
func (g GomegaWithScope) DumpOnFailure(values ...interface{}) {
	if g.t.Failed() {
		g.t.Log(spew.Sdump(values...))
	}
}
