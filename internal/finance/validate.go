package finance

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/finpulse/internal/model"
)

// ProfileInput is the profile registered on first sign-in.
type ProfileInput struct {
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

// TransactionInput is a transaction as submitted by a client. Amount sign is
// not checked; Date defaults to today.
type TransactionInput struct {
	Type        string  `json:"type" validate:"required,oneof=income expense"`
	Category    string  `json:"category" validate:"required,max=64"`
	Amount      float64 `json:"amount" validate:"finite"`
	Description string  `json:"description" validate:"max=500"`
	Date        string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// GoalInput is a goal as submitted by a client.
type GoalInput struct {
	GoalType      string  `json:"goal_type" validate:"required,max=64"`
	TargetAmount  float64 `json:"target_amount" validate:"finite,gt=0"`
	CurrentAmount float64 `json:"current_amount" validate:"finite"`
	TargetDate    string  `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
	Description   string  `json:"description" validate:"max=500"`
	Status        string  `json:"status" validate:"omitempty,oneof=active completed"`
}

type inputValidator struct {
	v *validator.Validate
}

func newInputValidator() *inputValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &inputValidator{v: v}
}

// Struct validates a tagged input struct.
func (iv *inputValidator) Struct(in any) error {
	if err := iv.v.Struct(in); err != nil {
		return invalid(err)
	}
	return nil
}

// Snapshot checks every amount of a snapshot is a finite number.
func (iv *inputValidator) Snapshot(s model.FinancialSnapshot) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"monthly_income", s.MonthlyIncome},
		{"monthly_expenses", s.MonthlyExpenses},
		{"savings_goal", s.SavingsGoal},
		{"current_savings", s.CurrentSavings},
		{"debt_amount", s.DebtAmount},
		{"investment_amount", s.InvestmentAmount},
		{"emergency_fund", s.EmergencyFund},
	}
	for _, f := range fields {
		if err := iv.v.Var(f.value, "finite"); err != nil {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, f.name)
		}
	}
	return nil
}

func invalid(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "datetime":
		return fe.Field() + " must be a YYYY-MM-DD date"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "finite":
		return fe.Field() + " must be a finite number"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
