// Package model defines the domain types shared across finpulse packages.
package model

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// DateLayout is the wire and storage format of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar date. The wrapped time is always midnight UTC.
type Date struct {
	time.Time
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date t falls on in its own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// YearMonth returns the YYYY-MM bucket key of the date.
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FinancialSnapshot is the latest self-reported state of a user's finances.
// All amounts share one currency unit; negative values are accepted as given.
type FinancialSnapshot struct {
	MonthlyIncome    float64   `json:"monthly_income"`
	MonthlyExpenses  float64   `json:"monthly_expenses"`
	SavingsGoal      float64   `json:"savings_goal"`
	CurrentSavings   float64   `json:"current_savings"`
	DebtAmount       float64   `json:"debt_amount"`
	InvestmentAmount float64   `json:"investment_amount"`
	EmergencyFund    float64   `json:"emergency_fund"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
}

// Transaction is a single dated income or expense entry.
type Transaction struct {
	ID          int64           `json:"id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Date        Date            `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// User maps an identity-provider subject to an internal numeric ID.
type User struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// GoalStatus tracks whether a goal is still being worked on.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
)

// Goal is a savings or payoff target.
type Goal struct {
	ID            int64      `json:"id"`
	GoalType      string     `json:"goal_type"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	TargetDate    *Date      `json:"target_date,omitempty"`
	Description   string     `json:"description"`
	Status        GoalStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ProgressPercent returns how far CurrentAmount has come toward TargetAmount.
func (g Goal) ProgressPercent() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}
