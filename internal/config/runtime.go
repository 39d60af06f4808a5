package config

import (
	"strings"
	"sync/atomic"
	"time"
)

// PollerSnapshot is the immutable view of the poller settings taken once per
// cycle. The admin API replaces the whole snapshot; readers never see a
// partially updated state.
type PollerSnapshot struct {
	Enabled  bool          `json:"enabled"`
	Symbols  []string      `json:"symbols"`
	Interval time.Duration `json:"interval"`
}

// PollerPatch is a partial update from the admin API. Nil fields keep the
// current value.
type PollerPatch struct {
	Enabled  *bool          `json:"enabled"`
	Symbols  *string        `json:"symbols"`
	Interval *time.Duration `json:"poll_seconds"`
}

type Runtime struct {
	poller atomic.Pointer[PollerSnapshot]
}

func NewRuntime(cfg PollerConfig) *Runtime {
	r := &Runtime{}
	snap := &PollerSnapshot{
		Enabled:  cfg.Enabled,
		Symbols:  SplitSymbols(cfg.Symbols),
		Interval: cfg.Interval,
	}
	r.poller.Store(snap)
	return r
}

func (r *Runtime) Poller() PollerSnapshot {
	return *r.poller.Load()
}

func (r *Runtime) UpdatePoller(patch PollerPatch) PollerSnapshot {
	for {
		old := r.poller.Load()
		next := *old
		if patch.Enabled != nil {
			next.Enabled = *patch.Enabled
		}
		if patch.Symbols != nil {
			next.Symbols = SplitSymbols(*patch.Symbols)
		}
		if patch.Interval != nil && *patch.Interval > 0 {
			next.Interval = *patch.Interval
		}
		if r.poller.CompareAndSwap(old, &next) {
			return next
		}
	}
}

// SplitSymbols normalizes a comma- or pipe-separated symbol list.
func SplitSymbols(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '|'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
