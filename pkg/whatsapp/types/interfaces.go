package types

import (
	"context"
	"time"
)

type WAClient interface {
	GetGroups(ctx context.Context) ([]Group, error)
	GetChatMessages(ctx context.Context, chatID string, limit int) ([]ChatMessage, error)
	GetSessionStatus(ctx context.Context) (*Session, error)
	WaitForSessionReady(ctx context.Context, maxWaitTime time.Duration) error
}
