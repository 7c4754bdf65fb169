package tracing

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqarscan/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestInitializeDisabled(t *testing.T) {
	m := NewManager(models.TracingConfig{Enabled: false}, testLogger())

	require.NoError(t, m.Initialize(context.Background()))
	assert.Nil(t, m.tracerProvider)
	assert.NoError(t, m.Shutdown(context.Background()))
}

func TestInitializeStdoutExporter(t *testing.T) {
	m := NewManager(models.TracingConfig{
		Enabled:    true,
		UseStdout:  true,
		SampleRate: 1.0,
	}, testLogger())

	require.NoError(t, m.Initialize(context.Background()))
	require.NotNil(t, m.tracerProvider)
	assert.NoError(t, m.Shutdown(context.Background()))
}

func TestStartSpanAndRecordError(t *testing.T) {
	m := NewManager(models.TracingConfig{
		Enabled:    true,
		UseStdout:  true,
		SampleRate: 1.0,
	}, testLogger())
	require.NoError(t, m.Initialize(context.Background()))
	defer func() {
		require.NoError(t, m.Shutdown(context.Background()))
	}()

	ctx, span := StartSpan(context.Background(), "scan-history")
	assert.True(t, span.IsRecording())

	RecordError(ctx, errors.New("fetch failed"))
	span.End()
}

func TestRecordErrorWithoutSpan(t *testing.T) {
	// Must not panic when the context carries no span.
	RecordError(context.Background(), errors.New("no span"))
}
