package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"aqarscan/internal/models"
)

const (
	eventStats    = "message_stats"
	eventProgress = "history_progress"
	eventOffer    = "new_offer"

	subscriberBuffer = 16
	writeTimeout     = 5 * time.Second
)

type wsEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type subscriber struct {
	events chan []byte
}

// EventHub fans out scan progress and statistics to websocket subscribers.
// A slow subscriber that cannot drain its buffer is dropped rather than
// allowed to stall the scan.
type EventHub struct {
	logger *logrus.Logger

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

func NewEventHub(logger *logrus.Logger) *EventHub {
	return &EventHub{
		logger:      logger,
		subscribers: make(map[*subscriber]struct{}),
	}
}

// ServeHTTP upgrades the request and streams events until the client
// disconnects.
func (h *EventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.WithError(err).Warn("Failed to accept websocket connection")
		return
	}
	defer conn.CloseNow()

	sub := &subscriber{events: make(chan []byte, subscriberBuffer)}
	h.addSubscriber(sub)
	defer h.removeSubscriber(sub)

	// Discards inbound frames and cancels when the client goes away.
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-sub.events:
			if !ok {
				conn.Close(websocket.StatusPolicyViolation, "subscriber too slow")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(writeCtx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

func (h *EventHub) PublishStats(stats models.Stats) {
	h.publish(eventStats, stats)
}

func (h *EventHub) PublishProgress(current, total int) {
	h.publish(eventProgress, map[string]int{"current": current, "total": total})
}

func (h *EventHub) PublishOffer(offer *models.Offer) {
	h.publish(eventOffer, offer)
}

// SubscriberCount reports the number of connected clients.
func (h *EventHub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

func (h *EventHub) publish(event string, data interface{}) {
	payload, err := json.Marshal(wsEvent{Event: event, Data: data})
	if err != nil {
		h.logger.WithError(err).WithField("event", event).Error("Failed to marshal event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		select {
		case sub.events <- payload:
		default:
			delete(h.subscribers, sub)
			close(sub.events)
			h.logger.Warn("Dropped slow websocket subscriber")
		}
	}
}

func (h *EventHub) addSubscriber(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[sub] = struct{}{}
}

func (h *EventHub) removeSubscriber(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, sub)
}
