package service

import (
	"context"
	"strings"
	"time"

	"techgear-support-be/internal/dto"
	"techgear-support-be/internal/pkg/logger"
	"techgear-support-be/internal/pkg/serverutils"
	"techgear-support-be/internal/session"
	"techgear-support-be/pkg/catalog"
	"techgear-support-be/pkg/chatcontext"
	"techgear-support-be/pkg/router"
)

type ISupportService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	Health() *dto.HealthResponse
	Info() *dto.InfoResponse
}

type supportService struct {
	store    *session.Store
	tracker  *chatcontext.Tracker
	router   *router.Router
	catalog  *catalog.Catalog
	ragReady func() bool
	logger   logger.ILogger
}

func NewSupportService(
	store *session.Store,
	tracker *chatcontext.Tracker,
	rt *router.Router,
	cat *catalog.Catalog,
	ragReady func() bool,
	log logger.ILogger,
) ISupportService {
	return &supportService{
		store:    store,
		tracker:  tracker,
		router:   rt,
		catalog:  cat,
		ragReady: ragReady,
		logger:   log,
	}
}

// Chat runs one conversational turn: expire stale sessions, lock this one,
// resolve follow-ups, route, then commit the exchange.
func (s *supportService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if s.router == nil {
		return nil, serverutils.ErrServiceUnavailable
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, &serverutils.ValidationError{Fields: []string{"Query failed on 'required'"}}
	}

	if removed := s.store.Sweep(time.Now()); removed > 0 {
		s.logger.Debug("support", "expired idle sessions", map[string]interface{}{"removed": removed})
	}

	token, sess, release := s.store.Acquire(req.SessionId)
	defer release()

	prepared := s.tracker.Prepare(query, sess)
	if prepared.Rewritten {
		s.logger.Info("support", "follow-up rewritten", map[string]interface{}{
			"session_id": token,
			"original":   query,
			"effective":  prepared.Effective,
		})
	}

	outcome := s.router.Run(ctx, token, prepared.Effective)

	// The raw query wins for subject tracking; the answer is a fallback so
	// generated replies like "SmartWatch Pro X costs..." still pin a subject.
	detected, ok := s.catalog.DetectProduct(query)
	if !ok {
		detected, _ = s.catalog.DetectProduct(outcome.Answer)
	}

	s.store.Commit(sess, session.Exchange{
		Query:          query,
		EffectiveQuery: prepared.Effective,
		Answer:         outcome.Answer,
		Category:       string(outcome.Category),
		RoutedTo:       string(outcome.RoutedTo),
	}, detected)

	s.logger.Info("support", "turn completed", map[string]interface{}{
		"session_id": token,
		"category":   string(outcome.Category),
		"source":     string(outcome.Source),
		"routed_to":  string(outcome.RoutedTo),
	})

	return &dto.ChatResponse{
		Answer:    outcome.Answer,
		Category:  string(outcome.Category),
		RoutedTo:  string(outcome.RoutedTo),
		SessionId: token,
	}, nil
}

func (s *supportService) Health() *dto.HealthResponse {
	ready := false
	if s.ragReady != nil {
		ready = s.ragReady()
	}
	return &dto.HealthResponse{
		Status:         "healthy",
		ActiveSessions: s.store.Len(),
		RagReady:       ready,
	}
}

func (s *supportService) Info() *dto.InfoResponse {
	return &dto.InfoResponse{
		Name:     "TechGear Solutions Support",
		Version:  "1.0.0",
		Products: s.catalog.ProductNames(),
	}
}
