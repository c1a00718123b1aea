// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package envelope

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/AccelByte/extend-rank-matchmaker/pkg/utils"
)

const (
	traceIDLogField = "traceID"
	tracerName      = "rank-matchmaker"

	GameIDTag      = "rank.matchmaker.game_id"
	RoomIDTag      = "rank.matchmaker.room_id"
	QueueSizeTag   = "rank.matchmaker.queue_size"
	ReadyTag       = "rank.matchmaker.ready"
	SeatRequestTag = "rank.matchmaker.seat_requests"
)

// NewRootScope starts a scope for one matchmaking request.
// traceID is reused when it looks like an otel trace id, otherwise a new one is generated.
func NewRootScope(rootCtx context.Context, name string, traceID string) *Scope {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(rootCtx, name)

	if traceID == "" || len(traceID) != 32 {
		if spanTraceID := span.SpanContext().TraceID(); spanTraceID.IsValid() {
			traceID = spanTraceID.String()
		} else {
			traceID = utils.GenerateUUID()
		}
	}

	return &Scope{
		Ctx:     ctx,
		TraceID: traceID,
		span:    span,
		Log:     logrus.WithField(traceIDLogField, traceID),
	}
}

// Scope carries the context, span and trace-tagged logger of one matchmaking request
// down the call chain.
type Scope struct {
	Ctx     context.Context
	TraceID string
	span    oteltrace.Span
	Log     *logrus.Entry
}

// SetLogger swaps the logger, keeping the trace id field. Tests use it to capture log lines.
func (s *Scope) SetLogger(logger *logrus.Logger) {
	s.Log = logger.WithField(traceIDLogField, s.TraceID)
}

// Finish ends the span of the scope.
func (s *Scope) Finish() {
	s.span.End()
}

// NewChildScope opens a child span sharing the trace id and logger.
func (s *Scope) NewChildScope(name string) *Scope {
	tracer := s.span.TracerProvider().Tracer(tracerName)
	ctx, span := tracer.Start(s.Ctx, name)

	return &Scope{
		Ctx:     ctx,
		TraceID: s.TraceID,
		span:    span,
		Log:     s.Log,
	}
}

// WithContext returns a copy of the scope bound to ctx, keeping span and logger.
// Used to attach a cancellable or errgroup context to a request.
func (s *Scope) WithContext(ctx context.Context) *Scope {
	return &Scope{
		Ctx:     ctx,
		TraceID: s.TraceID,
		span:    s.span,
		Log:     s.Log,
	}
}

// RecordError attaches err to the span and marks it failed.
func (s *Scope) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttributes tags the span with key, converting value to the closest attribute type.
func (s *Scope) SetAttributes(key string, value interface{}) {
	s.span.SetAttributes(attributeOf(key, value))
}

func attributeOf(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case bool:
		return attribute.Bool(key, v)
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case []int:
		return attribute.IntSlice(key, v)
	case []float64:
		return attribute.Float64Slice(key, v)
	case time.Duration:
		return attribute.Int64(key, v.Milliseconds())
	case time.Time:
		return attribute.String(key, v.Format(time.RFC3339))
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
