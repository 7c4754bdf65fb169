package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"aqarscan/internal/constants"
	"aqarscan/internal/database"
	"aqarscan/internal/service"
	"aqarscan/internal/store"
	"aqarscan/internal/tracing"
	"aqarscan/pkg/whatsapp/types"
)

type Server struct {
	router       *mux.Router
	logger       *logrus.Logger
	scanner      *service.Scanner
	store        *store.Store
	archive      *database.Database
	hub          *service.EventHub
	waClient     types.WAClient
	server       *http.Server
	port         int
	scanMessages int
}

func NewServer(port, scanMessages int, scanner *service.Scanner, st *store.Store, archive *database.Database, hub *service.EventHub, waClient types.WAClient, logger *logrus.Logger) *Server {
	if scanMessages <= 0 {
		scanMessages = constants.DefaultMaxMessagesPerGroup
	}
	s := &Server{
		router:       mux.NewRouter(),
		logger:       logger,
		scanner:      scanner,
		store:        st,
		archive:      archive,
		hub:          hub,
		waClient:     waClient,
		port:         port,
		scanMessages: scanMessages,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth()).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/connection-status", s.handleConnectionStatus()).Methods(http.MethodGet)
	api.HandleFunc("/scan-history", s.handleScanHistory()).Methods(http.MethodGet)
	api.HandleFunc("/offers", s.handleOffers()).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats()).Methods(http.MethodGet)
	api.HandleFunc("/reset", s.handleReset()).Methods(http.MethodPost)

	s.router.HandleFunc("/export", s.handleExport()).Methods(http.MethodGet)
	s.router.Handle("/ws", s.hub).Methods(http.MethodGet)
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  constants.ServerReadTimeoutSec * time.Second,
		WriteTimeout: constants.ServerWriteTimeoutSec * time.Second,
		IdleTimeout:  constants.ServerIdleTimeoutSec * time.Second,
	}

	s.logger.WithField("port", s.port).Info("Starting server")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			s.logger.WithError(err).Error("Failed to write health response")
		}
	}
}

func (s *Server) handleConnectionStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checkedAt := time.Now().UTC().Format(time.RFC3339)

		session, err := s.waClient.GetSessionStatus(r.Context())
		if err != nil {
			s.writeJSON(w, http.StatusOK, map[string]interface{}{
				"connected": false,
				"error":     err.Error(),
				"checkedAt": checkedAt,
			})
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"connected": session.IsWorking(),
			"status":    session.Status,
			"checkedAt": checkedAt,
		})
	}
}

// handleScanHistory triggers a synchronous backlog scan. Concurrent requests
// join the scan already in flight.
func (s *Server) handleScanHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.waClient.GetSessionStatus(r.Context())
		if err != nil || !session.IsWorking() {
			s.writeError(w, http.StatusBadRequest, "messaging session is not connected")
			return
		}

		maxMessages := s.scanMessages
		if raw := r.URL.Query().Get("max"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				maxMessages = parsed
			}
		}

		ctx, span := tracing.StartSpan(r.Context(), "scan-history")
		defer span.End()

		result, err := s.scanner.ScanHistory(ctx, maxMessages)
		if err != nil {
			tracing.RecordError(ctx, err)
			s.logger.WithError(err).Error("History scan failed")
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"count":   result.Count,
			"message": fmt.Sprintf("تم العثور على %d عرض عقاري من المحفوظات", result.Count),
			"stats":   result.Stats,
		})
	}
}

// handleOffers serves the durable archive when filters are present and can
// be pushed into SQL; otherwise it returns the in-memory collection.
func (s *Server) handleOffers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := database.OfferFilter{
			OfferType:    q.Get("offerType"),
			PropertyType: q.Get("propertyType"),
			Location:     q.Get("location"),
		}
		if raw := q.Get("minPrice"); raw != "" {
			if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
				filter.MinPrice = &v
			}
		}
		if raw := q.Get("maxPrice"); raw != "" {
			if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
				filter.MaxPrice = &v
			}
		}
		if raw := q.Get("limit"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil && v > 0 {
				filter.Limit = v
			}
		}

		filtered := filter != (database.OfferFilter{})
		if filtered && s.archive != nil {
			offers, err := s.archive.QueryOffers(r.Context(), filter)
			if err != nil {
				s.logger.WithError(err).Error("Archive query failed")
				s.writeError(w, http.StatusInternalServerError, "failed to query offers")
				return
			}
			s.writeJSON(w, http.StatusOK, map[string]interface{}{
				"count":  len(offers),
				"offers": offers,
			})
			return
		}

		offers := s.store.Offers()
		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"count":  len(offers),
			"offers": offers,
		})
	}
}

func (s *Server) handleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, s.store.Stats())
	}
}

func (s *Server) handleReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.store.Reset()
		if err := s.store.Checkpoint(); err != nil {
			s.logger.WithError(err).Error("Failed to checkpoint after reset")
		}
		s.hub.PublishStats(s.store.Stats())
		s.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

func (s *Server) handleExport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := service.ExportFilter{
			OfferType:    q.Get("offerType"),
			PropertyType: q.Get("propertyType"),
			Location:     q.Get("location"),
		}
		if raw := q.Get("minPrice"); raw != "" {
			if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
				filter.MinPrice = &v
			}
		}
		if raw := q.Get("maxPrice"); raw != "" {
			if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
				filter.MaxPrice = &v
			}
		}

		filename := fmt.Sprintf("offers-%s.csv", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		written, err := service.WriteCSV(w, s.store.Offers(), filter)
		if err != nil {
			s.logger.WithError(err).Error("Export failed")
			return
		}
		s.logger.WithField("offers", written).Info("Export completed")
	}
}
