package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/finpulse/internal/model"
	"github.com/theirongolddev/finpulse/internal/tui/theme"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{9.5, "$9.50"},
		{1234.5, "$1,234.50"},
		{-20, "-$20.00"},
		{1_000_000, "$1,000,000.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCompactMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{950, "$950"},
		{1234, "$1.2K"},
		{2_500_000, "$2.5M"},
		{-1500, "-$1.5K"},
		{3_000_000_000, "$3.0B"},
	}
	for _, tt := range tests {
		if got := FormatCompactMoney(tt.in); got != tt.want {
			t.Errorf("FormatCompactMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		name      string
		got, want string
	}{
		{"percent", FormatPercent(30), "30.0%"},
		{"ratio", FormatRatio(0.333333), "0.33"},
		{"months", FormatMonths(2.57), "2.6 months"},
		{"one month", FormatMonths(1), "1.0 month"},
		{"score", FormatScore(69.29), "69/100"},
		{"gain", FormatDelta(15), "+$15.00"},
		{"loss", FormatDelta(-15), "-$15.00"},
		{"count", FormatCount(1234567), "1,234,567"},
		{"zero percent", FormatPercent(0), "0.0%"},
		{"zero ratio", FormatRatio(0), "0.00"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Amount"},
		Rows: [][]string{
			{"rent", "$1,200.00"},
			{"---"},
			{"food", "$42.75"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("line count = %d, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "rent") || !strings.Contains(out, "$42.75") {
		t.Errorf("table missing cells:\n%s", out)
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render as empty string")
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 50, 100}); got != "▁▄█" {
		t.Errorf("RenderSparkline = %q, want ▁▄█", got)
	}
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("RenderSparkline(nil) = %q", got)
	}
	if got := RenderSparkline([]float64{0, 0}); got != "▁▁" {
		t.Errorf("RenderSparkline(zeros) = %q", got)
	}
}

func TestRatingLabel(t *testing.T) {
	if RatingLabel(model.RatingHealthy) != "Healthy" || RatingLabel(model.RatingAtRisk) != "At risk" {
		t.Error("unexpected rating labels")
	}
	defer theme.SetActive(theme.FlexokiDark.Name)
	theme.SetActive("tokyo-night")
	if RatingColor(model.RatingFair) != theme.TokyoNight.Fair {
		t.Error("fair rating should use the active theme's fair color")
	}
	if RatingColor(model.RatingAtRisk) != theme.TokyoNight.AtRisk {
		t.Error("at-risk rating should use the active theme's at-risk color")
	}
}
