// Package store persists users, financial snapshots, transactions and goals
// in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/finpulse/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// Store is a SQLite-backed repository for all per-user financial data.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertUser returns the internal ID for u.ExternalID, creating the user from
// u when none exists. An existing user is never modified.
func (s *Store) UpsertUser(ctx context.Context, u model.User) (int64, error) {
	if u.ExternalID == "" {
		return 0, errors.New("store: empty external id")
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO users
		(external_id, email, first_name, last_name, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(external_id) DO NOTHING`,
		u.ExternalID, u.Email, u.FirstName, u.LastName, s.now().UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, "SELECT id FROM users WHERE external_id = ?", u.ExternalID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("reading user id: %w", err)
	}
	return id, nil
}

// EnsureUser returns the internal ID for externalID, creating a bare user
// record on first sight.
func (s *Store) EnsureUser(ctx context.Context, externalID string) (int64, error) {
	return s.UpsertUser(ctx, model.User{ExternalID: externalID})
}

// LookupUser returns the user with the given external ID, or ErrNotFound.
func (s *Store) LookupUser(ctx context.Context, externalID string) (model.User, error) {
	var u model.User
	var createdNs int64
	err := s.db.QueryRowContext(ctx, `SELECT id, external_id, email, first_name, last_name, created_at
		FROM users WHERE external_id = ?`, externalID).
		Scan(&u.ID, &u.ExternalID, &u.Email, &u.FirstName, &u.LastName, &createdNs)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("reading user: %w", err)
	}
	u.CreatedAt = time.Unix(0, createdNs).UTC()
	return u, nil
}

// ReplaceSnapshot stores snap as the user's only snapshot, discarding any
// previous one, and returns it with UpdatedAt set.
func (s *Store) ReplaceSnapshot(ctx context.Context, userID int64, snap model.FinancialSnapshot) (model.FinancialSnapshot, error) {
	snap.UpdatedAt = s.now().UTC()

	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO snapshots
		(user_id, monthly_income, monthly_expenses, savings_goal, current_savings,
		 debt_amount, investment_amount, emergency_fund, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, snap.MonthlyIncome, snap.MonthlyExpenses, snap.SavingsGoal, snap.CurrentSavings,
		snap.DebtAmount, snap.InvestmentAmount, snap.EmergencyFund, snap.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return model.FinancialSnapshot{}, fmt.Errorf("replacing snapshot: %w", err)
	}
	return snap, nil
}

// LatestSnapshot returns the user's current snapshot, or ErrNotFound.
func (s *Store) LatestSnapshot(ctx context.Context, userID int64) (model.FinancialSnapshot, error) {
	var snap model.FinancialSnapshot
	var updatedNs int64
	err := s.db.QueryRowContext(ctx, `SELECT
		monthly_income, monthly_expenses, savings_goal, current_savings,
		debt_amount, investment_amount, emergency_fund, updated_at
		FROM snapshots WHERE user_id = ?`, userID).
		Scan(&snap.MonthlyIncome, &snap.MonthlyExpenses, &snap.SavingsGoal, &snap.CurrentSavings,
			&snap.DebtAmount, &snap.InvestmentAmount, &snap.EmergencyFund, &updatedNs)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FinancialSnapshot{}, ErrNotFound
	}
	if err != nil {
		return model.FinancialSnapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	snap.UpdatedAt = time.Unix(0, updatedNs).UTC()
	return snap, nil
}
