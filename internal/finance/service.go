// Package finance is the application layer: it validates requests, resolves
// users and runs the analysis pipeline and advisor over stored data.
package finance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/finpulse/internal/advisor"
	"github.com/theirongolddev/finpulse/internal/model"
	"github.com/theirongolddev/finpulse/internal/pipeline"
	"github.com/theirongolddev/finpulse/internal/store"
)

// DefaultTransactionLimit caps transaction listings when no limit is given.
const DefaultTransactionLimit = 50

var (
	// ErrUserNotFound indicates no user exists for the subject.
	ErrUserNotFound = errors.New("finance: user not found")
	// ErrNoSnapshot indicates the user has not saved any financial data.
	ErrNoSnapshot = errors.New("finance: no financial data found")
	// ErrInvalidInput indicates a request failed validation.
	ErrInvalidInput = errors.New("finance: invalid input")
	// ErrAdviceFailed indicates advice could not be generated.
	ErrAdviceFailed = errors.New("finance: advice generation failed")
)

// Store is the persistence the service needs.
type Store interface {
	UpsertUser(ctx context.Context, u model.User) (int64, error)
	EnsureUser(ctx context.Context, externalID string) (int64, error)
	LookupUser(ctx context.Context, externalID string) (model.User, error)
	ReplaceSnapshot(ctx context.Context, userID int64, snap model.FinancialSnapshot) (model.FinancialSnapshot, error)
	LatestSnapshot(ctx context.Context, userID int64) (model.FinancialSnapshot, error)
	AppendTransaction(ctx context.Context, userID int64, tx model.Transaction) (model.Transaction, error)
	Transactions(ctx context.Context, userID int64, q store.TransactionQuery) ([]model.Transaction, error)
	AddGoal(ctx context.Context, userID int64, g model.Goal) (model.Goal, error)
	Goals(ctx context.Context, userID int64) ([]model.Goal, error)
}

// Service implements every user-facing finance operation.
type Service struct {
	store    Store
	advisor  *advisor.Advisor
	validate *inputValidator
	now      func() time.Time
	log      *zap.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithAdvisor enables advice generation.
func WithAdvisor(a *advisor.Advisor) Option {
	return func(s *Service) { s.advisor = a }
}

// WithClock overrides the time source used for trend windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// New creates a Service over st.
func New(st Store, opts ...Option) *Service {
	s := &Service{
		store:    st,
		validate: newInputValidator(),
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AdviceEnabled reports whether a text-generation provider is configured.
func (s *Service) AdviceEnabled() bool {
	return s.advisor != nil
}

// SaveProfile registers the subject's profile on first sight and returns the
// internal user ID. Existing profiles are left unchanged.
func (s *Service) SaveProfile(ctx context.Context, subject string, in ProfileInput) (int64, error) {
	if err := s.validate.Struct(in); err != nil {
		return 0, err
	}
	id, err := s.store.UpsertUser(ctx, model.User{
		ExternalID: subject,
		Email:      in.Email,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
	})
	if err != nil {
		return 0, fmt.Errorf("saving profile: %w", err)
	}
	return id, nil
}

// SaveSnapshot replaces the subject's financial snapshot.
func (s *Service) SaveSnapshot(ctx context.Context, subject string, snap model.FinancialSnapshot) (model.FinancialSnapshot, error) {
	if err := s.validate.Snapshot(snap); err != nil {
		return model.FinancialSnapshot{}, err
	}
	uid, err := s.store.EnsureUser(ctx, subject)
	if err != nil {
		return model.FinancialSnapshot{}, fmt.Errorf("resolving user: %w", err)
	}
	saved, err := s.store.ReplaceSnapshot(ctx, uid, snap)
	if err != nil {
		return model.FinancialSnapshot{}, err
	}
	s.log.Debug("snapshot saved", zap.String("subject", subject))
	return saved, nil
}

// Snapshot returns the subject's current snapshot.
func (s *Service) Snapshot(ctx context.Context, subject string) (model.FinancialSnapshot, error) {
	u, err := s.lookup(ctx, subject)
	if err != nil {
		return model.FinancialSnapshot{}, err
	}
	return s.snapshot(ctx, u.ID)
}

// AddTransaction validates and records a transaction.
func (s *Service) AddTransaction(ctx context.Context, subject string, in TransactionInput) (model.Transaction, error) {
	if err := s.validate.Struct(in); err != nil {
		return model.Transaction{}, err
	}
	tx := model.Transaction{
		Type:        model.TransactionType(in.Type),
		Category:    in.Category,
		Amount:      in.Amount,
		Description: in.Description,
	}
	if in.Date != "" {
		d, err := model.ParseDate(in.Date)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		tx.Date = d
	} else {
		tx.Date = model.DateOf(s.now())
	}

	uid, err := s.store.EnsureUser(ctx, subject)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("resolving user: %w", err)
	}
	return s.store.AppendTransaction(ctx, uid, tx)
}

// Transactions lists the subject's transactions newest first. A
// non-positive limit means DefaultTransactionLimit.
func (s *Service) Transactions(ctx context.Context, subject string, since model.Date, limit int) ([]model.Transaction, error) {
	u, err := s.lookup(ctx, subject)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}
	return s.store.Transactions(ctx, u.ID, store.TransactionQuery{Since: since, Limit: limit})
}

// Analyze builds the analysis report for the subject.
func (s *Service) Analyze(ctx context.Context, subject string) (model.Analysis, error) {
	u, err := s.lookup(ctx, subject)
	if err != nil {
		return model.Analysis{}, err
	}
	snap, err := s.snapshot(ctx, u.ID)
	if err != nil {
		return model.Analysis{}, err
	}
	txs, err := s.store.Transactions(ctx, u.ID, store.TransactionQuery{})
	if err != nil {
		return model.Analysis{}, fmt.Errorf("loading transactions: %w", err)
	}
	return pipeline.Analyze(snap, txs, s.now()), nil
}

// Advise generates advice from the subject's snapshot and most recent
// transactions. Generation failures are reported as ErrAdviceFailed.
func (s *Service) Advise(ctx context.Context, subject string) (model.Advice, error) {
	u, err := s.lookup(ctx, subject)
	if err != nil {
		return model.Advice{}, err
	}
	snap, err := s.snapshot(ctx, u.ID)
	if err != nil {
		return model.Advice{}, err
	}
	if s.advisor == nil {
		return model.Advice{}, fmt.Errorf("%w: no text generation provider configured", ErrAdviceFailed)
	}

	recent, err := s.store.Transactions(ctx, u.ID, store.TransactionQuery{Limit: advisor.RecentLimit})
	if err != nil {
		return model.Advice{}, fmt.Errorf("loading transactions: %w", err)
	}

	text, err := s.advisor.Advise(ctx, u.FirstName, snap, recent)
	if err != nil {
		s.log.Warn("advice generation failed", zap.String("subject", subject), zap.Error(err))
		return model.Advice{}, fmt.Errorf("%w: %w", ErrAdviceFailed, err)
	}

	return model.Advice{Advice: text, Summary: Summarize(snap)}, nil
}

// Summarize returns the headline figures echoed alongside advice.
func Summarize(snap model.FinancialSnapshot) model.AdviceSummary {
	m := pipeline.ComputeMetrics(snap)
	return model.AdviceSummary{
		MonthlyIncome:     snap.MonthlyIncome,
		MonthlyExpenses:   snap.MonthlyExpenses,
		NetIncome:         m.NetIncome,
		SavingsRate:       round(m.SavingsRate, 1),
		DebtToIncomeRatio: round(m.DebtToIncome, 2),
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// AddGoal validates and records a goal.
func (s *Service) AddGoal(ctx context.Context, subject string, in GoalInput) (model.Goal, error) {
	if err := s.validate.Struct(in); err != nil {
		return model.Goal{}, err
	}
	g := model.Goal{
		GoalType:      in.GoalType,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Description:   in.Description,
		Status:        model.GoalStatus(in.Status),
	}
	if in.TargetDate != "" {
		d, err := model.ParseDate(in.TargetDate)
		if err != nil {
			return model.Goal{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		g.TargetDate = &d
	}

	uid, err := s.store.EnsureUser(ctx, subject)
	if err != nil {
		return model.Goal{}, fmt.Errorf("resolving user: %w", err)
	}
	return s.store.AddGoal(ctx, uid, g)
}

// Goals lists the subject's goals.
func (s *Service) Goals(ctx context.Context, subject string) ([]model.Goal, error) {
	u, err := s.lookup(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.store.Goals(ctx, u.ID)
}

func (s *Service) lookup(ctx context.Context, subject string) (model.User, error) {
	u, err := s.store.LookupUser(ctx, subject)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("resolving user: %w", err)
	}
	return u, nil
}

func (s *Service) snapshot(ctx context.Context, userID int64) (model.FinancialSnapshot, error) {
	snap, err := s.store.LatestSnapshot(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return model.FinancialSnapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return model.FinancialSnapshot{}, fmt.Errorf("loading snapshot: %w", err)
	}
	return snap, nil
}
