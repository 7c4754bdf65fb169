package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqarscan/internal/models"
	"aqarscan/internal/store"
)

func TestCheckpointerWritesOnStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offers.json")
	st, err := store.New(path, testLogger())
	require.NoError(t, err)

	analyzer := NewAnalyzer(st, nil, testLogger())
	require.NotNil(t, analyzer.Analyze(context.Background(), models.Message{
		Text:      candidateText,
		MessageID: "msg-1",
	}))

	cp := NewCheckpointer(st, 3600, testLogger())

	done := make(chan struct{})
	go func() {
		cp.Start(context.Background())
		close(done)
	}()

	cp.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("checkpointer did not stop")
	}

	// The stop path flushed state, so a fresh store sees the offer.
	restored, err := store.New(path, testLogger())
	require.NoError(t, err)
	restored.Load()
	assert.Equal(t, 1, restored.Count())
}

func TestCheckpointerStopsOnContextCancel(t *testing.T) {
	cp := NewCheckpointer(newTestStore(t), 3600, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cp.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("checkpointer did not stop on context cancel")
	}
}

func TestCheckpointerDefaultsInterval(t *testing.T) {
	cp := NewCheckpointer(newTestStore(t), 0, testLogger())
	assert.Equal(t, 300, cp.intervalSec)
}
