package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finpulse/internal/model"
)

// TransactionQuery narrows a transaction listing.
type TransactionQuery struct {
	Since model.Date // zero means no lower bound
	Limit int        // <= 0 means no limit
}

// AppendTransaction records a new transaction and returns it with ID and
// CreatedAt filled in. A zero Date defaults to today.
func (s *Store) AppendTransaction(ctx context.Context, userID int64, tx model.Transaction) (model.Transaction, error) {
	now := s.now()
	tx.CreatedAt = now.UTC()
	if tx.Date.IsZero() {
		tx.Date = model.DateOf(now)
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO transactions
		(user_id, type, category, amount, description, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, string(tx.Type), tx.Category, tx.Amount, tx.Description, tx.Date.String(), tx.CreatedAt.UnixNano(),
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("inserting transaction: %w", err)
	}
	tx.ID, err = res.LastInsertId()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("reading transaction id: %w", err)
	}
	return tx, nil
}

// Transactions lists a user's transactions newest first: by date, then by
// insertion time.
func (s *Store) Transactions(ctx context.Context, userID int64, q TransactionQuery) ([]model.Transaction, error) {
	var sb strings.Builder
	args := []any{userID}

	sb.WriteString(`SELECT id, type, category, amount, description, date, created_at
		FROM transactions WHERE user_id = ?`)
	if !q.Since.IsZero() {
		sb.WriteString(" AND date >= ?")
		args = append(args, q.Since.String())
	}
	sb.WriteString(" ORDER BY date DESC, created_at DESC, id DESC")
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]model.Transaction, 0)
	for rows.Next() {
		var tx model.Transaction
		var typ, date string
		var createdNs int64
		if err := rows.Scan(&tx.ID, &typ, &tx.Category, &tx.Amount, &tx.Description, &date, &createdNs); err != nil {
			return nil, err
		}
		tx.Type = model.TransactionType(typ)
		tx.Date, err = model.ParseDate(date)
		if err != nil {
			return nil, err
		}
		tx.CreatedAt = time.Unix(0, createdNs).UTC()
		result = append(result, tx)
	}
	return result, rows.Err()
}

// AddGoal records a new goal. Status defaults to active.
func (s *Store) AddGoal(ctx context.Context, userID int64, g model.Goal) (model.Goal, error) {
	g.CreatedAt = s.now().UTC()
	if g.Status == "" {
		g.Status = model.GoalActive
	}

	var targetDate sql.NullString
	if g.TargetDate != nil && !g.TargetDate.IsZero() {
		targetDate = sql.NullString{String: g.TargetDate.String(), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO goals
		(user_id, goal_type, target_amount, current_amount, target_date, description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, g.GoalType, g.TargetAmount, g.CurrentAmount, targetDate, g.Description, string(g.Status), g.CreatedAt.UnixNano(),
	)
	if err != nil {
		return model.Goal{}, fmt.Errorf("inserting goal: %w", err)
	}
	g.ID, err = res.LastInsertId()
	if err != nil {
		return model.Goal{}, fmt.Errorf("reading goal id: %w", err)
	}
	return g, nil
}

// Goals lists a user's goals in creation order.
func (s *Store) Goals(ctx context.Context, userID int64) ([]model.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, goal_type, target_amount, current_amount, target_date, description, status, created_at
		FROM goals WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]model.Goal, 0)
	for rows.Next() {
		var g model.Goal
		var targetDate sql.NullString
		var status string
		var createdNs int64
		if err := rows.Scan(&g.ID, &g.GoalType, &g.TargetAmount, &g.CurrentAmount,
			&targetDate, &g.Description, &status, &createdNs); err != nil {
			return nil, err
		}
		if targetDate.Valid && targetDate.String != "" {
			d, err := model.ParseDate(targetDate.String)
			if err != nil {
				return nil, err
			}
			g.TargetDate = &d
		}
		g.Status = model.GoalStatus(status)
		g.CreatedAt = time.Unix(0, createdNs).UTC()
		result = append(result, g)
	}
	return result, rows.Err()
}
