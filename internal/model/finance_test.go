package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	tx := Transaction{Type: Expense, Category: "food", Amount: 12.5, Date: NewDate(2026, time.March, 7)}

	b, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back Transaction
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Date.String() != "2026-03-07" {
		t.Errorf("Date = %q, want 2026-03-07", back.Date.String())
	}
	if back.Date.YearMonth() != "2026-03" {
		t.Errorf("YearMonth = %q, want 2026-03", back.Date.YearMonth())
	}
}

func TestDateUnmarshalEmpty(t *testing.T) {
	var tx Transaction
	if err := json.Unmarshal([]byte(`{"date":null}`), &tx); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !tx.Date.IsZero() {
		t.Errorf("Date = %v, want zero", tx.Date)
	}

	if err := json.Unmarshal([]byte(`{"date":"03/07/2026"}`), &tx); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestDateOfUsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	d := DateOf(time.Date(2026, time.January, 1, 2, 0, 0, 0, loc))
	if d.String() != "2026-01-01" {
		t.Errorf("DateOf = %s, want 2026-01-01", d)
	}
}

func TestTransactionTypeValid(t *testing.T) {
	for _, typ := range []TransactionType{Income, Expense} {
		if !typ.Valid() {
			t.Errorf("%q.Valid() = false", typ)
		}
	}
	if TransactionType("transfer").Valid() {
		t.Error(`"transfer".Valid() = true`)
	}
}

func TestGoalProgressPercent(t *testing.T) {
	tests := []struct {
		goal Goal
		want float64
	}{
		{Goal{TargetAmount: 1000, CurrentAmount: 250}, 25},
		{Goal{TargetAmount: 0, CurrentAmount: 250}, 0},
		{Goal{TargetAmount: 100, CurrentAmount: 150}, 150},
	}
	for _, tt := range tests {
		if got := tt.goal.ProgressPercent(); got != tt.want {
			t.Errorf("ProgressPercent(%+v) = %f, want %f", tt.goal, got, tt.want)
		}
	}
}
