package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finpulse/internal/tui/theme"
)

func TestColorForProgress(t *testing.T) {
	theme.SetActive("flexoki-dark")
	tests := []struct {
		pct  float64
		want lipgloss.Color
	}{
		{0, theme.Active.AtRisk},
		{0.3, theme.Active.Behind},
		{0.6, theme.Active.Fair},
		{1, theme.Active.Healthy},
	}
	for _, tt := range tests {
		if got := ColorForProgress(tt.pct); got != tt.want {
			t.Errorf("ColorForProgress(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestProgressBarClamps(t *testing.T) {
	over := ProgressBar(1.7, 10)
	if !strings.Contains(over, "100%") {
		t.Errorf("overfull bar should clamp to 100%%: %q", over)
	}
	if w := lipgloss.Width(ProgressBar(-1, 10)); w != len(" 0%")+10 {
		t.Errorf("empty bar width = %d", w)
	}
}

func TestGoalBarIncludesLabelAndRemaining(t *testing.T) {
	out := GoalBar("emergency", 0.5, "$500.00 left", 12, 20)
	if !strings.Contains(out, "emergency") || !strings.Contains(out, "$500.00 left") {
		t.Errorf("goal bar missing parts: %q", out)
	}
	if !strings.Contains(out, " 50%") {
		t.Errorf("goal bar missing percent: %q", out)
	}
}
