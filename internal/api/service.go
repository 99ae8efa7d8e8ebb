// Package api serves the finpulse HTTP API and per-user event stream.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theirongolddev/finpulse/internal/finance"
	"github.com/theirongolddev/finpulse/internal/identity"
	"github.com/theirongolddev/finpulse/internal/model"
)

// Config controls the API runtime behavior.
type Config struct {
	Addr         string
	EventsBuffer int
	CORSOrigins  []string
}

// Backend is the set of finance operations the API exposes.
type Backend interface {
	SaveProfile(ctx context.Context, subject string, in finance.ProfileInput) (int64, error)
	SaveSnapshot(ctx context.Context, subject string, snap model.FinancialSnapshot) (model.FinancialSnapshot, error)
	Snapshot(ctx context.Context, subject string) (model.FinancialSnapshot, error)
	AddTransaction(ctx context.Context, subject string, in finance.TransactionInput) (model.Transaction, error)
	Transactions(ctx context.Context, subject string, since model.Date, limit int) ([]model.Transaction, error)
	Analyze(ctx context.Context, subject string) (model.Analysis, error)
	Advise(ctx context.Context, subject string) (model.Advice, error)
	AddGoal(ctx context.Context, subject string, in finance.GoalInput) (model.Goal, error)
	Goals(ctx context.Context, subject string) ([]model.Goal, error)
}

// Event types published after successful writes.
const (
	EventConnected        = "connected"
	EventAnalysis         = "analysis"
	EventSnapshotSaved    = "snapshot_saved"
	EventTransactionAdded = "transaction_added"
	EventGoalAdded        = "goal_added"
	EventAdviceGenerated  = "advice_generated"
)

// Event is emitted whenever a user's data changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Subject   string    `json:"-"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	UptimeSec       int64     `json:"uptime_sec"`
	Addr            string    `json:"addr"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

type subscriber struct {
	subject string
	ch      chan Event
}

// Service provides the HTTP API and its event feed.
type Service struct {
	cfg      Config
	backend  Backend
	verifier identity.Verifier
	log      *zap.Logger
	router   *gin.Engine

	mu          sync.RWMutex
	startedAt   time.Time
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]subscriber
}

// New returns a new API service with the provided config.
func New(cfg Config, backend Backend, verifier identity.Verifier, log *zap.Logger) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:5000"
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Service{
		cfg:       cfg,
		backend:   backend,
		verifier:  verifier,
		log:       log,
		startedAt: time.Now(),
		subs:      make(map[int]subscriber),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Service) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("api listening", zap.String("addr", s.cfg.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("api http server: %w", err)
	}
}

func (s *Service) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.log), cors(s.cfg.CORSOrigins))

	r.GET("/healthz", s.handleHealth)
	r.GET("/v1/status", s.handleStatus)

	api := r.Group("/api", authenticate(s.verifier))
	{
		api.POST("/user/profile", s.handleSaveProfile)
		api.POST("/financial-data", s.handleSaveSnapshot)
		api.GET("/financial-data", s.handleGetSnapshot)
		api.POST("/transactions", s.handleAddTransaction)
		api.GET("/transactions", s.handleListTransactions)
		api.POST("/ai-advice", s.handleAdvice)
		api.GET("/financial-analysis", s.handleAnalysis)
		api.POST("/goals", s.handleAddGoal)
		api.GET("/goals", s.handleListGoals)
		api.GET("/events", s.handleEvents)
		api.GET("/stream", s.handleStream)
	}
	return r
}

// publish records an event for subject and fans it out to that subject's
// stream subscribers. Slow subscribers miss events rather than block.
func (s *Service) publish(subject, typ string, payload any) {
	s.mu.Lock()
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      typ,
		Subject:   subject,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	s.publishLocked(ev)
	s.mu.Unlock()
}

func (s *Service) publishLocked(ev Event) {
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, sub := range s.subs {
		if sub.subject != ev.Subject {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// eventsFor returns the buffered events belonging to subject, oldest first.
func (s *Service) eventsFor(subject string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Event, 0)
	for _, ev := range s.events {
		if ev.Subject == subject {
			result = append(result, ev)
		}
	}
	return result
}

func (s *Service) status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		UptimeSec:       int64(time.Since(s.startedAt).Seconds()),
		Addr:            s.cfg.Addr,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) addSubscriber(subject string, ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = subscriber{subject: subject, ch: ch}
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}
