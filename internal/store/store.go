// Package store owns the process-wide aggregation state: the ordered offer
// collection, the uniqueness sets, and the running counters, together with
// JSON snapshot persistence.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"aqarscan/internal/constants"
	"aqarscan/internal/models"
)

// Store is the single owner of the aggregation state. Mutation during a scan
// is sequential; the lock exists for the HTTP surface reading stats and
// offers while a scan runs.
type Store struct {
	mu     sync.RWMutex
	logger *logrus.Logger

	snapshotPath string

	offers    []models.Offer
	phones    map[string]struct{}
	processed map[string]struct{}
	stats     models.Stats
}

// New creates an empty store persisting to snapshotPath.
func New(snapshotPath string, logger *logrus.Logger) (*Store, error) {
	if snapshotPath == "" || strings.ContainsRune(snapshotPath, '\x00') {
		return nil, fmt.Errorf("invalid snapshot path")
	}
	if strings.Contains(snapshotPath, "..") {
		return nil, fmt.Errorf("invalid snapshot path: %s", snapshotPath)
	}

	return &Store{
		logger:       logger,
		snapshotPath: snapshotPath,
		phones:       make(map[string]struct{}),
		processed:    make(map[string]struct{}),
	}, nil
}

// Load restores state from the snapshot file. Best-effort: a missing or
// corrupt snapshot leaves the store empty and is logged, never fatal.
func (s *Store) Load() {
	data, err := os.ReadFile(s.snapshotPath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Warn("Failed to read snapshot, starting empty")
		}
		return
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.WithError(err).Warn("Corrupt snapshot, starting empty")
		return
	}

	s.Restore(snap)
	s.logger.WithField("offers", len(snap.Offers)).Info("Loaded offers from snapshot")
}

// Restore replaces the in-memory state with the snapshot's contents.
// Counters are recomputed from the restored offers and phone set; the
// snapshot carries no counters to trust.
func (s *Store) Restore(snap models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.offers = append([]models.Offer(nil), snap.Offers...)
	s.phones = make(map[string]struct{}, len(snap.PhoneNumbers))
	for _, p := range snap.PhoneNumbers {
		s.phones[p] = struct{}{}
	}
	s.processed = make(map[string]struct{}, len(snap.ProcessedMessageIDs))
	for _, id := range snap.ProcessedMessageIDs {
		s.processed[id] = struct{}{}
	}

	stats := models.Stats{Total: len(s.offers), Phone: len(s.phones)}
	for i := range s.offers {
		switch s.offers[i].OfferType {
		case models.OfferSale:
			stats.Sale++
		case models.OfferRent:
			stats.Rent++
		}
	}
	s.stats = stats
}

// Snapshot returns a copy of the current state in the persisted shape.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Snapshot{
		Offers:              append([]models.Offer(nil), s.offers...),
		PhoneNumbers:        make([]string, 0, len(s.phones)),
		ProcessedMessageIDs: make([]string, 0, len(s.processed)),
		LastUpdated:         time.Now().UTC(),
	}
	for p := range s.phones {
		snap.PhoneNumbers = append(snap.PhoneNumbers, p)
	}
	for id := range s.processed {
		snap.ProcessedMessageIDs = append(snap.ProcessedMessageIDs, id)
	}
	return snap
}

// Checkpoint writes the snapshot to disk.
func (s *Store) Checkpoint() error {
	snap := s.Snapshot()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(s.snapshotPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	if err := os.WriteFile(s.snapshotPath, data, constants.SnapshotFileMode); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	s.logger.WithField("offers", len(snap.Offers)).Debug("Snapshot checkpoint written")
	return nil
}

// MarkProcessed records a message id and reports whether it was new.
// Entries are never removed except by Reset.
func (s *Store) MarkProcessed(messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.processed[messageID]; seen {
		return false
	}
	s.processed[messageID] = struct{}{}
	return true
}

// Add appends an offer and advances the counters: total always, sale/rent by
// offer type, unique phone when the number is new.
func (s *Store) Add(offer models.Offer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.offers = append(s.offers, offer)
	s.stats.Total++
	switch offer.OfferType {
	case models.OfferSale:
		s.stats.Sale++
	case models.OfferRent:
		s.stats.Rent++
	}

	if offer.Phone != "" && offer.Phone != models.PhoneUnavailable {
		if _, dup := s.phones[offer.Phone]; !dup {
			s.phones[offer.Phone] = struct{}{}
			s.stats.Phone++
		}
	}
}

// Offers returns a copy of the offer sequence in discovery order.
func (s *Store) Offers() []models.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Offer(nil), s.offers...)
}

// Stats returns the current counters.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Count returns the number of collected offers.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.offers)
}

// Reset discards all state. This is the only way entries leave the
// uniqueness sets.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.offers = nil
	s.phones = make(map[string]struct{})
	s.processed = make(map[string]struct{})
	s.stats = models.Stats{}
}
