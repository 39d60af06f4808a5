package config

import (
	"testing"
	"time"
)

func TestSplitSymbols(t *testing.T) {
	got := SplitSymbols(" tse_2330.tw, otc_6488.tw|tse_2317.tw,, ")
	want := []string{"tse_2330.tw", "otc_6488.tw", "tse_2317.tw"}
	if len(got) != len(want) {
		t.Fatalf("got=%v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d]=%q want=%q", i, got[i], want[i])
		}
	}
}

func TestRuntime_UpdatePoller(t *testing.T) {
	rt := NewRuntime(PollerConfig{Enabled: true, Symbols: "tse_2330.tw", Interval: 5 * time.Second})

	enabled := false
	next := rt.UpdatePoller(PollerPatch{Enabled: &enabled})
	if next.Enabled {
		t.Fatalf("enabled not applied")
	}
	if len(next.Symbols) != 1 || next.Interval != 5*time.Second {
		t.Fatalf("partial patch touched other fields: %+v", next)
	}

	// Non-positive interval patches are ignored.
	bad := -time.Second
	next = rt.UpdatePoller(PollerPatch{Interval: &bad})
	if next.Interval != 5*time.Second {
		t.Fatalf("interval=%v", next.Interval)
	}

	symbols := "tse_2330.tw|otc_6488.tw"
	next = rt.UpdatePoller(PollerPatch{Symbols: &symbols})
	if len(next.Symbols) != 2 {
		t.Fatalf("symbols=%v", next.Symbols)
	}
	if got := rt.Poller(); got.Enabled || len(got.Symbols) != 2 {
		t.Fatalf("snapshot=%+v", got)
	}
}
