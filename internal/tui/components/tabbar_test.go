package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if TabIdxByKey('z') != -1 {
		t.Error("unknown key should return -1")
	}
}

func TestTabVisualWidthMatchesRenderedBar(t *testing.T) {
	for active := range Tabs {
		want := len(Tabs) - 1 // separators
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		bar := RenderTabBar(active, 200)
		if got := lipgloss.Width(bar); got != 200 {
			t.Fatalf("bar width = %d, want padded to 200", got)
		}
		if want > 200 {
			t.Fatalf("tabs wider than bar: %d", want)
		}
	}
}
