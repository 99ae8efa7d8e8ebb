package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finpulse/internal/model"
)

func TestByNameFallsBackToDefault(t *testing.T) {
	if got := ByName("tokyo-night"); got.Name != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got.Name)
	}
	if got := ByName("nope"); got.Name != FlexokiDark.Name {
		t.Errorf("ByName(nope) = %q, want default", got.Name)
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Errorf("Active = %q after SetActive(terminal)", Active.Name)
	}
	if len(Names()) != len(All) {
		t.Errorf("Names() len = %d, want %d", len(Names()), len(All))
	}
}

func TestRatingBands(t *testing.T) {
	for _, th := range All {
		if th.Rating(model.RatingHealthy) != th.Healthy ||
			th.Rating(model.RatingFair) != th.Fair ||
			th.Rating(model.RatingAtRisk) != th.AtRisk {
			t.Errorf("%s: rating colours do not follow the bands", th.Name)
		}
		if th.Rating(model.HealthRating("unknown")) != th.AtRisk {
			t.Errorf("%s: unknown rating should read as at risk", th.Name)
		}
	}
}

func TestFlowAndProgress(t *testing.T) {
	th := FlexokiDark
	if th.Flow(-0.01) != th.Expense || th.Flow(0) != th.Income || th.Flow(250) != th.Income {
		t.Error("Flow should colour negatives as expense and the rest as income")
	}

	tests := []struct {
		pct  float64
		want lipgloss.Color
	}{
		{0, th.AtRisk},
		{0.24, th.AtRisk},
		{0.25, th.Behind},
		{0.5, th.Fair},
		{0.89, th.Fair},
		{0.9, th.Healthy},
		{1, th.Healthy},
	}
	for _, tt := range tests {
		if got := th.Progress(tt.pct); got != tt.want {
			t.Errorf("Progress(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestCategoryCycles(t *testing.T) {
	th := TokyoNight
	n := len(th.Categories)
	if n == 0 {
		t.Fatal("theme has no category colours")
	}
	if th.Category(n) != th.Category(0) || th.Category(n+2) != th.Category(2) {
		t.Error("Category should cycle through the series colours")
	}
	if (Theme{Accent: "#fff"}).Category(3) != "#fff" {
		t.Error("Category without series colours should fall back to the accent")
	}
}
