package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"aqarscan/internal/constants"
	"aqarscan/internal/store"
)

// Checkpointer writes the store snapshot to disk on a fixed interval. Scan
// milestones checkpoint on their own; this loop covers the quiet periods
// between scans so live-message state survives a crash.
type Checkpointer struct {
	store       *store.Store
	intervalSec int
	logger      *logrus.Logger
	stopCh      chan struct{}
}

func NewCheckpointer(st *store.Store, intervalSec int, logger *logrus.Logger) *Checkpointer {
	if intervalSec <= 0 {
		intervalSec = constants.DefaultCheckpointIntervalSec
	}
	return &Checkpointer{
		store:       st,
		intervalSec: intervalSec,
		logger:      logger,
		stopCh:      make(chan struct{}),
	}
}

func (c *Checkpointer) Start(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(c.intervalSec) * time.Second)
	defer ticker.Stop()

	c.logger.WithField("intervalSec", c.intervalSec).Info("Starting periodic checkpointer")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Checkpointer context cancelled, stopping")
			c.checkpoint()
			return
		case <-c.stopCh:
			c.logger.Info("Checkpointer stop signal received, stopping")
			c.checkpoint()
			return
		case <-ticker.C:
			c.checkpoint()
		}
	}
}

func (c *Checkpointer) Stop() {
	close(c.stopCh)
}

func (c *Checkpointer) checkpoint() {
	if err := c.store.Checkpoint(); err != nil {
		c.logger.WithError(err).Error("Failed to checkpoint store")
	}
}
