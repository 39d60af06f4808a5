package market

import (
	"github.com/shopspring/decimal"

	"mismon/internal/models"
)

// Result is the aggregate of one symbol over one query window.
type Result struct {
	Bars        []Bar
	LatestPrice *float64
	TotalVolume int64
}

// Aggregate folds an ordered tick sequence into a gap-filled 5-minute grid.
// seedOpen seeds the flat price of a leading no-trade bucket; when nil and no
// trade has happened yet, that bar's OHLC stays nil rather than fabricated.
// Ticks must be sorted by ts_sec ascending, which the repository range query
// guarantees.
func Aggregate(ticks []models.Tick, seedOpen *float64) Result {
	if len(ticks) == 0 {
		return Result{}
	}

	first := BucketOf(ticks[0].TSSec)
	last := BucketOf(ticks[len(ticks)-1].TSSec)

	byBucket := make(map[int64][]models.Tick, len(ticks))
	total := int64(0)
	for _, t := range ticks {
		b := BucketOf(t.TSSec)
		byBucket[b] = append(byBucket[b], t)
		total += t.Vol
	}

	latest := ticks[len(ticks)-1].Price
	return Result{
		Bars:        fillBars(first, last, byBucket, seedOpen),
		LatestPrice: &latest,
		TotalVolume: total,
	}
}

// fillBars walks the complete bucket axis from first to last inclusive,
// synthesizing flat bars for empty buckets so the grid has no holes.
func fillBars(first, last int64, byBucket map[int64][]models.Tick, seedOpen *float64) []Bar {
	bars := make([]Bar, 0, (last-first)/BucketSeconds+1)
	prevClose := seedOpen
	for b := first; b <= last; b += BucketSeconds {
		in := byBucket[b]
		if len(in) == 0 {
			bar := Bar{BucketStart: b}
			if prevClose != nil {
				px := *prevClose
				bar.Open, bar.High, bar.Low, bar.Close = &px, &px, &px, &px
				prevClose = bar.Close
			}
			bars = append(bars, bar)
			continue
		}
		bar := tradedBar(b, in)
		bars = append(bars, bar)
		prevClose = bar.Close
	}
	return bars
}

func tradedBar(bucket int64, in []models.Tick) Bar {
	open := in[0].Price
	clos := in[len(in)-1].Price
	high, low := open, open
	vol := int64(0)
	value := decimal.Zero
	buy, sell := int64(0), int64(0)
	for _, t := range in {
		if t.Price > high {
			high = t.Price
		}
		if t.Price < low {
			low = t.Price
		}
		vol += t.Vol
		value = value.Add(decimal.NewFromFloat(t.Price).Mul(decimal.NewFromInt(t.Vol)))
		switch classify(t) {
		case sideBuy:
			buy += t.Vol
		case sideSell:
			sell += t.Vol
		}
	}

	bar := Bar{
		BucketStart: bucket,
		Open:        &open,
		High:        &high,
		Low:         &low,
		Close:       &clos,
		BuyVol:      buy,
		SellVol:     sell,
		Traded:      true,
	}
	if vol > 0 {
		vwap := value.Div(decimal.NewFromInt(vol))
		bar.VWAP = &vwap
	}
	return bar
}

type side int

const (
	sideNeutral side = iota
	sideBuy
	sideSell
)

// classify infers trade direction from the tick's own quote snapshot.
// The ask comparison is checked first and short-circuits, so a tick touching
// both sides counts as a buy. Missing quotes leave the tick neutral.
func classify(t models.Tick) side {
	if t.BestAsk != nil && t.Price >= *t.BestAsk {
		return sideBuy
	}
	if t.BestBid != nil && t.Price <= *t.BestBid {
		return sideSell
	}
	return sideNeutral
}
