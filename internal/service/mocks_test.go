package service

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aqarscan/internal/models"
	"aqarscan/internal/store"
	"aqarscan/pkg/whatsapp/types"
)

type mockWAClient struct {
	mock.Mock
}

func (m *mockWAClient) GetGroups(ctx context.Context) ([]types.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Group), args.Error(1)
}

func (m *mockWAClient) GetChatMessages(ctx context.Context, chatID string, limit int) ([]types.ChatMessage, error) {
	args := m.Called(ctx, chatID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ChatMessage), args.Error(1)
}

func (m *mockWAClient) GetSessionStatus(ctx context.Context) (*types.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Session), args.Error(1)
}

func (m *mockWAClient) WaitForSessionReady(ctx context.Context, maxWaitTime time.Duration) error {
	args := m.Called(ctx, maxWaitTime)
	return args.Error(0)
}

type mockArchive struct {
	mock.Mock
}

func (m *mockArchive) SaveOffer(ctx context.Context, offer *models.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

type recordingNotifier struct {
	stats    []models.Stats
	progress [][2]int
	offers   []*models.Offer
}

func (n *recordingNotifier) PublishStats(stats models.Stats) {
	n.stats = append(n.stats, stats)
}

func (n *recordingNotifier) PublishProgress(current, total int) {
	n.progress = append(n.progress, [2]int{current, total})
}

func (n *recordingNotifier) PublishOffer(offer *models.Offer) {
	n.offers = append(n.offers, offer)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "offers.json"), testLogger())
	require.NoError(t, err)
	return st
}

const candidateText = "شقة للبيع في الرياض مساحة 150 متر بسعر 2 مليون ريال للتواصل 0512345678"

func chatMessage(id, body string) types.ChatMessage {
	return types.ChatMessage{
		ID: types.MessageID{
			Remote:     "123@g.us",
			ID:         id,
			Serialized: "false_123@g.us_" + id,
		},
		Body:      body,
		From:      "123@g.us",
		Author:    "966512345678@c.us",
		Timestamp: 1705312200,
	}
}
