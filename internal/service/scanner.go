package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"aqarscan/internal/constants"
	"aqarscan/internal/extract"
	"aqarscan/internal/models"
	"aqarscan/internal/store"
	"aqarscan/pkg/whatsapp/types"
)

// Notifier pushes progress and statistics events to connected clients.
type Notifier interface {
	PublishStats(stats models.Stats)
	PublishProgress(current, total int)
	PublishOffer(offer *models.Offer)
}

// noopNotifier stands in when no push layer is attached.
type noopNotifier struct{}

func (noopNotifier) PublishStats(models.Stats)  {}
func (noopNotifier) PublishProgress(int, int)   {}
func (noopNotifier) PublishOffer(*models.Offer) {}

// Scanner drives the analyzer over group chat backlogs. Store mutation is
// sequential within a scan; concurrent scan requests join the in-flight one
// through a single-flight guard.
type Scanner struct {
	client       types.WAClient
	analyzer     *Analyzer
	store        *store.Store
	notifier     Notifier
	logger       *logrus.Logger
	groupDelay   time.Duration
	fetchTimeout time.Duration
	scans        singleflight.Group
}

func NewScanner(client types.WAClient, analyzer *Analyzer, st *store.Store, notifier Notifier, groupDelay, fetchTimeout time.Duration, logger *logrus.Logger) *Scanner {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Scanner{
		client:       client,
		analyzer:     analyzer,
		store:        st,
		notifier:     notifier,
		logger:       logger,
		groupDelay:   groupDelay,
		fetchTimeout: fetchTimeout,
	}
}

// ScanHistory walks every group the session participates in and feeds
// candidate messages to the analyzer. It returns the number of offers newly
// discovered by this invocation, not the store's cumulative total.
func (s *Scanner) ScanHistory(ctx context.Context, maxMessages int) (*models.ScanResult, error) {
	if maxMessages <= 0 {
		maxMessages = constants.DefaultMaxMessagesPerGroup
	}

	result, err, shared := s.scans.Do("scan-history", func() (interface{}, error) {
		return s.scanAll(ctx, maxMessages)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Joined in-flight history scan")
	}
	return result.(*models.ScanResult), nil
}

func (s *Scanner) scanAll(ctx context.Context, maxMessages int) (*models.ScanResult, error) {
	groups, err := s.client.GetGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	s.logger.WithField("groups", len(groups)).Info("Starting history scan")

	totalFound := 0
	for i, group := range groups {
		groupName := group.GetDisplayName()
		s.logger.WithFields(logrus.Fields{
			"group":    groupName,
			"position": fmt.Sprintf("%d/%d", i+1, len(groups)),
		}).Info("Scanning group")
		s.notifier.PublishProgress(i+1, len(groups))

		err := s.scanGroup(ctx, group.ID, groupName, maxMessages, &totalFound)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.WithError(err).WithField("group", groupName).
				Warn("Group scan failed, continuing with next group")
		}

		s.notifier.PublishStats(s.store.Stats())

		if i < len(groups)-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.groupDelay):
			}
		}
	}

	if err := s.store.Checkpoint(); err != nil {
		s.logger.WithError(err).Error("Failed to checkpoint store after scan")
	}
	s.notifier.PublishStats(s.store.Stats())

	s.logger.WithField("found", totalFound).Info("History scan complete")

	return &models.ScanResult{Count: totalFound, Stats: s.store.Stats()}, nil
}

// scanGroup feeds one group's backlog to the analyzer. totalFound is the
// scan-wide counter so the stats and checkpoint milestones fire on overall
// progress, not per group.
func (s *Scanner) scanGroup(ctx context.Context, chatID, groupName string, maxMessages int, totalFound *int) error {
	fetchCtx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	messages, err := s.client.GetChatMessages(fetchCtx, chatID, maxMessages)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"group":    groupName,
		"messages": len(messages),
	}).Debug("Fetched group history")

	for _, m := range messages {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		offer := s.process(ctx, &m, groupName)
		if offer == nil {
			continue
		}
		*totalFound++

		if *totalFound%constants.StatsUpdateEvery == 0 {
			s.notifier.PublishStats(s.store.Stats())
		}
		if *totalFound%constants.CheckpointEvery == 0 {
			if err := s.store.Checkpoint(); err != nil {
				s.logger.WithError(err).Error("Failed to checkpoint store mid-scan")
			}
		}
	}

	return nil
}

// process applies the skip rules and relevance gate to one message and hands
// survivors to the analyzer.
func (s *Scanner) process(ctx context.Context, m *types.ChatMessage, groupName string) *models.Offer {
	if m.IsForwarded {
		return nil
	}
	if m.ID.Serialized == "" {
		s.logger.Debug("Skipping message without serialized id")
		return nil
	}
	if m.Body == "" || !extract.IsCandidate(m.Body) {
		return nil
	}

	return s.analyzer.Analyze(ctx, models.Message{
		Text:        m.Body,
		SenderID:    localPart(m.SenderID()),
		GroupName:   groupName,
		TimestampMs: m.Timestamp * 1000,
		MessageID:   m.ID.Serialized,
	})
}

// HandleLiveMessage runs one incoming group message through the same
// pipeline as the history scan and pushes events for any new offer.
func (s *Scanner) HandleLiveMessage(ctx context.Context, m *types.ChatMessage, groupName string) *models.Offer {
	offer := s.process(ctx, m, groupName)
	if offer == nil {
		return nil
	}

	s.notifier.PublishOffer(offer)
	s.notifier.PublishStats(s.store.Stats())

	if err := s.store.Checkpoint(); err != nil {
		s.logger.WithError(err).Error("Failed to checkpoint store after live message")
	}

	return offer
}

// localPart strips the chat suffix from a WhatsApp id, "9665...@c.us"
// becomes "9665...".
func localPart(id string) string {
	if idx := strings.Index(id, "@"); idx >= 0 {
		return id[:idx]
	}
	return id
}
