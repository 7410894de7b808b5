package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		level string
		log   func(l Logger)
		want  []string
	}{
		{"debug", func(l Logger) { l.Debug(ctx, "products loaded", "count", 3) }, []string{"level=DEBUG", `msg="products loaded"`, "count=3"}},
		{"info", func(l Logger) { l.Info(ctx, "product created", "id", 7) }, []string{"level=INFO", "id=7"}},
		{"warn", func(l Logger) { l.Warn(ctx, "bad id", "raw_id", "x") }, []string{"level=WARN", "raw_id=x"}},
		{"error", func(l Logger) { l.Error(ctx, "delete failed", "id", 1) }, []string{"level=ERROR", `msg="delete failed"`}},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, buf := newTestLogger(t)
			tt.log(log)
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("component", "session").Info(context.Background(), "saved", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "component=session")
	assert.Contains(t, out, "k=v")
}

func TestSlogLogger_ContextFields(t *testing.T) {
	log, buf := newTestLogger(t)

	ctx := ContextWith(context.Background(), "request_id", "r-1")
	ctx = ContextWith(ctx, "user", "ann")
	log.Info(ctx, "hello", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "request_id=r-1")
	assert.Contains(t, out, "user=ann")
}

func TestSlogLogger_NilContext(t *testing.T) {
	log, buf := newTestLogger(t)
	require.NotPanics(t, func() {
		log.Info(nil, "no ctx")
	})
	assert.Contains(t, buf.String(), `msg="no ctx"`)
}

func TestContextWith_DoesNotShareBacking(t *testing.T) {
	base := ContextWith(context.Background(), "a", 1)
	left := ContextWith(base, "b", 2)
	right := ContextWith(base, "c", 3)

	assert.Equal(t, []any{"a", 1, "b", 2}, fieldsFrom(left))
	assert.Equal(t, []any{"a", 1, "c", 3}, fieldsFrom(right))
	assert.Equal(t, []any{"a", 1}, fieldsFrom(base))
}
