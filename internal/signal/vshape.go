package signal

import (
	"sync"
	"time"

	"mismon/internal/market"
)

const lowWindow = 3

// Detection is one fired V-shape reversal: three consecutive distinct
// buckets whose middle low is a strict local minimum.
type Detection struct {
	Symbol  string
	Buckets [lowWindow]int64
	Labels  [lowWindow]string
	Lows    [lowWindow]float64
}

type observation struct {
	bucket int64
	low    float64
}

type symbolState struct {
	lows      [lowWindow]observation
	n         int
	maxBucket int64
	lastFired int64
}

// push ingests buckets monotonically. Bars at or before the newest bucket
// already seen are rejected, so replaying a full day's grid cannot re-form
// an earlier pattern after the window has moved past it.
func (s *symbolState) push(bucket int64, low float64) bool {
	if bucket <= s.maxBucket {
		return false
	}
	s.maxBucket = bucket
	if s.n == lowWindow {
		copy(s.lows[:], s.lows[1:])
		s.n--
	}
	s.lows[s.n] = observation{bucket: bucket, low: low}
	s.n++
	return true
}

func (s *symbolState) vShape() bool {
	if s.n < lowWindow {
		return false
	}
	return s.lows[0].low > s.lows[1].low && s.lows[2].low > s.lows[1].low
}

// Detector watches per-symbol 5-minute lows for V-shape reversals. State is
// created lazily per symbol, bounded to the last three distinct buckets, and
// lives for the process lifetime only.
type Detector struct {
	loc *time.Location

	mu     sync.Mutex
	states map[string]*symbolState
}

func NewDetector(loc *time.Location) *Detector {
	if loc == nil {
		loc = time.UTC
	}
	return &Detector{
		loc:    loc,
		states: make(map[string]*symbolState),
	}
}

// Observe feeds one recomputed bar sequence for a symbol and returns at most
// one new detection. Callers pass the whole day's grid on every cycle;
// buckets already ingested are ignored, so re-observation is a no-op and a
// given third bucket fires exactly once.
func (d *Detector) Observe(symbol string, bars []market.Bar) *Detection {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := d.states[symbol]
	if st == nil {
		st = &symbolState{}
		d.states[symbol] = st
	}

	var fired *Detection
	for _, bar := range bars {
		if bar.Low == nil {
			continue
		}
		if !st.push(bar.BucketStart, *bar.Low) {
			continue
		}
		if !st.vShape() {
			continue
		}
		third := st.lows[2].bucket
		if st.lastFired == third {
			continue
		}
		st.lastFired = third
		det := &Detection{Symbol: symbol}
		for i, obs := range st.lows {
			det.Buckets[i] = obs.bucket
			det.Labels[i] = market.Bar{BucketStart: obs.bucket}.Label(d.loc)
			det.Lows[i] = obs.low
		}
		fired = det
	}
	return fired
}

// TrackedSymbols reports how many symbols currently hold detector state.
// Reads are consistent with the lock but may trail an in-flight poll cycle.
func (d *Detector) TrackedSymbols() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.states)
}
