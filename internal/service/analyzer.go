package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"aqarscan/internal/constants"
	"aqarscan/internal/extract"
	"aqarscan/internal/models"
	"aqarscan/internal/store"
)

// OfferArchive persists offers durably alongside the in-memory store.
type OfferArchive interface {
	SaveOffer(ctx context.Context, offer *models.Offer) error
}

// Analyzer assembles an Offer from one candidate message and records it.
// Dedup by message id happens here, before any extractor runs, so
// re-submitting a message is a no-op.
type Analyzer struct {
	store   *store.Store
	archive OfferArchive
	logger  *logrus.Logger
}

// NewAnalyzer creates an analyzer. archive may be nil.
func NewAnalyzer(st *store.Store, archive OfferArchive, logger *logrus.Logger) *Analyzer {
	return &Analyzer{
		store:   st,
		archive: archive,
		logger:  logger,
	}
}

// Analyze runs the seven extractors over the message text and adds the
// assembled offer to the store. Returns nil if the message was already
// processed. The relevance filter is the caller's gate; Analyze does not
// re-check it.
func (a *Analyzer) Analyze(ctx context.Context, msg models.Message) *models.Offer {
	if !a.store.MarkProcessed(msg.MessageID) {
		return nil
	}

	sender := msg.SenderID
	if sender == "" {
		sender = models.SenderUnknown
	}

	timestamp := models.ValueUnknown
	if msg.TimestampMs > 0 {
		timestamp = time.UnixMilli(msg.TimestampMs).Format(constants.OfferTimestampLayout)
	}

	offer := models.Offer{
		OfferType:    extract.OfferType(msg.Text),
		PropertyType: extract.PropertyType(msg.Text),
		Location:     extract.Location(msg.Text),
		Area:         extract.Area(msg.Text),
		Price:        extract.Price(msg.Text),
		Rooms:        extract.Rooms(msg.Text),
		Bathrooms:    extract.Bathrooms(msg.Text),
		Phone:        extract.Phone(msg.Text),
		GroupName:    msg.GroupName,
		Sender:       sender,
		Timestamp:    timestamp,
		MessageID:    msg.MessageID,
		FullText:     msg.Text,
	}

	a.store.Add(offer)

	if a.archive != nil {
		if err := a.archive.SaveOffer(ctx, &offer); err != nil {
			a.logger.WithError(err).WithField("messageID", msg.MessageID).
				Warn("Failed to archive offer")
		}
	}

	a.logger.WithFields(logrus.Fields{
		"group":        offer.GroupName,
		"offerType":    offer.OfferType,
		"propertyType": offer.PropertyType,
		"location":     offer.Location,
	}).Info("New offer recorded")

	return &offer
}
