package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type errorCloser struct{ err error }

func (e *errorCloser) Close() error { return e.err }

func TestSafeClose(t *testing.T) {
	t.Run("successful close logs nothing", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeCloseWithLogging(&errorCloser{}, logger, "test_operation")
		SafeCloseWithLogging(nil, logger, "test_operation")
		assert.Empty(t, buf.String())
	})

	t.Run("logs error when close fails", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeCloseWithLogging(&errorCloser{err: assert.AnError}, logger, "test_operation")

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to close resource"`)
		assert.Contains(t, output, `"operation":"test_operation"`)
	})
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	LogError(logger, "saving figure", assert.AnError, slog.String("path", "out.pdf"))
	output := buf.String()
	assert.Contains(t, output, "level=ERROR")
	assert.Contains(t, output, `msg="saving figure"`)
	assert.Contains(t, output, "path=out.pdf")

	// nil logger and nil error are no-ops
	LogError(nil, "nothing", assert.AnError)
	buf.Reset()
	LogError(logger, "nothing", nil)
	assert.Empty(t, buf.String())
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
