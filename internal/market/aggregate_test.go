package market

import (
	"testing"

	"github.com/shopspring/decimal"

	"mismon/internal/models"
)

func fp(v float64) *float64 { return &v }

func tick(ts int64, price float64, vol int64, bid, ask *float64) models.Tick {
	return models.Tick{Symbol: "2330", TSSec: ts, Price: price, Vol: vol, BestBid: bid, BestAsk: ask}
}

// An arbitrary bucket-aligned unix second.
const base int64 = 1735693200

func TestAggregate_Empty(t *testing.T) {
	res := Aggregate(nil, fp(100))
	if len(res.Bars) != 0 {
		t.Fatalf("bars=%d want=0", len(res.Bars))
	}
	if res.LatestPrice != nil {
		t.Fatalf("latest=%v want=nil", *res.LatestPrice)
	}
	if res.TotalVolume != 0 {
		t.Fatalf("total=%d want=0", res.TotalVolume)
	}
}

func TestAggregate_SingleBucketScenario(t *testing.T) {
	// Both ticks straddled by their own quotes: neither crosses, so neutral.
	ticks := []models.Tick{
		tick(base, 100, 10, fp(99), fp(101)),
		tick(base+120, 102, 20, fp(101), fp(103)),
	}
	res := Aggregate(ticks, nil)
	if len(res.Bars) != 1 {
		t.Fatalf("bars=%d want=1", len(res.Bars))
	}
	bar := res.Bars[0]
	if *bar.Open != 100 || *bar.High != 102 || *bar.Low != 100 || *bar.Close != 102 {
		t.Fatalf("ohlc=%v/%v/%v/%v", *bar.Open, *bar.High, *bar.Low, *bar.Close)
	}
	want := decimal.NewFromInt(100*10 + 102*20).Div(decimal.NewFromInt(30))
	if bar.VWAP == nil || !bar.VWAP.Equal(want) {
		t.Fatalf("vwap=%v want=%s", bar.VWAP, want.String())
	}
	if bar.BuyVol != 0 || bar.SellVol != 0 {
		t.Fatalf("buy=%d sell=%d want=0/0", bar.BuyVol, bar.SellVol)
	}
	if *res.LatestPrice != 102 || res.TotalVolume != 30 {
		t.Fatalf("latest=%v total=%d", *res.LatestPrice, res.TotalVolume)
	}
}

func TestAggregate_Direction(t *testing.T) {
	ticks := []models.Tick{
		tick(base, 101, 10, fp(99), fp(101)),     // price >= ask: buy
		tick(base+30, 99, 7, fp(99), fp(101)),    // price <= bid: sell
		tick(base+60, 100, 5, nil, nil),          // no quotes: neutral
		tick(base+90, 100, 3, fp(100), fp(100)),  // touches both, ask wins: buy
		tick(base+120, 100, 2, fp(100), nil),     // only bid present: sell
	}
	res := Aggregate(ticks, nil)
	bar := res.Bars[0]
	if bar.BuyVol != 13 {
		t.Fatalf("buy=%d want=13", bar.BuyVol)
	}
	if bar.SellVol != 9 {
		t.Fatalf("sell=%d want=9", bar.SellVol)
	}
	if bar.BuyVol+bar.SellVol > res.TotalVolume {
		t.Fatalf("buy+sell=%d exceeds total=%d", bar.BuyVol+bar.SellVol, res.TotalVolume)
	}
}

func TestAggregate_GapFill(t *testing.T) {
	// Ticks in buckets 0 and 3; buckets 1 and 2 must be synthesized.
	ticks := []models.Tick{
		tick(base+10, 100, 10, nil, nil),
		tick(base+3*BucketSeconds+10, 104, 5, nil, nil),
	}
	res := Aggregate(ticks, nil)
	if len(res.Bars) != 4 {
		t.Fatalf("bars=%d want=4", len(res.Bars))
	}
	for i, bar := range res.Bars {
		if bar.BucketStart != base+int64(i)*BucketSeconds {
			t.Fatalf("bar[%d] start=%d want=%d", i, bar.BucketStart, base+int64(i)*BucketSeconds)
		}
	}
	for _, i := range []int{1, 2} {
		bar := res.Bars[i]
		if bar.Traded {
			t.Fatalf("bar[%d] traded", i)
		}
		if *bar.Open != 100 || *bar.High != 100 || *bar.Low != 100 || *bar.Close != 100 {
			t.Fatalf("bar[%d] not flat at prev close: %v/%v/%v/%v", i, *bar.Open, *bar.High, *bar.Low, *bar.Close)
		}
		if bar.VWAP != nil {
			t.Fatalf("bar[%d] vwap=%v want absent", i, bar.VWAP)
		}
		if bar.BuyVol != 0 || bar.SellVol != 0 {
			t.Fatalf("bar[%d] directional vol on no-trade bucket", i)
		}
	}
}

func TestFillBars_LeadingGapUsesSeedOpen(t *testing.T) {
	byBucket := map[int64][]models.Tick{
		base + BucketSeconds: {tick(base+BucketSeconds, 101, 1, nil, nil)},
	}
	bars := fillBars(base, base+BucketSeconds, byBucket, fp(98))
	if len(bars) != 2 {
		t.Fatalf("bars=%d want=2", len(bars))
	}
	lead := bars[0]
	if lead.Traded {
		t.Fatalf("leading bucket marked traded")
	}
	if *lead.Open != 98 || *lead.High != 98 || *lead.Low != 98 || *lead.Close != 98 {
		t.Fatalf("leading bar not flat at seed: %v/%v/%v/%v", *lead.Open, *lead.High, *lead.Low, *lead.Close)
	}
}

func TestFillBars_LeadingGapWithoutSeed(t *testing.T) {
	byBucket := map[int64][]models.Tick{
		base + BucketSeconds: {tick(base+BucketSeconds, 101, 1, nil, nil)},
	}
	bars := fillBars(base, base+BucketSeconds, byBucket, nil)
	lead := bars[0]
	if lead.Open != nil || lead.High != nil || lead.Low != nil || lead.Close != nil {
		t.Fatalf("leading bar without seed must stay absent, got close=%v", lead.Close)
	}
	if bars[1].Close == nil || *bars[1].Close != 101 {
		t.Fatalf("traded bar after absent lead broken")
	}
}

func TestAggregate_OHLCConsistency(t *testing.T) {
	ticks := []models.Tick{
		tick(base, 100, 10, fp(99), fp(101)),
		tick(base+30, 97, 4, fp(97), fp(98)),
		tick(base+70, 103, 6, fp(102), fp(103)),
		tick(base+400, 101, 2, nil, nil),
	}
	res := Aggregate(ticks, nil)
	for i, bar := range res.Bars {
		if bar.Low == nil {
			continue
		}
		if *bar.Low > *bar.Open || *bar.Low > *bar.Close || *bar.High < *bar.Open || *bar.High < *bar.Close || *bar.Low > *bar.High {
			t.Fatalf("bar[%d] inconsistent ohlc %v/%v/%v/%v", i, *bar.Open, *bar.High, *bar.Low, *bar.Close)
		}
		if bar.VWAP != nil {
			v, _ := bar.VWAP.Float64()
			if v < *bar.Low || v > *bar.High {
				t.Fatalf("bar[%d] vwap=%v outside [%v,%v]", i, v, *bar.Low, *bar.High)
			}
		}
	}
}

func TestAggregate_ZeroVolumeBucketHasNoVWAP(t *testing.T) {
	res := Aggregate([]models.Tick{tick(base, 100, 0, nil, nil)}, nil)
	bar := res.Bars[0]
	if bar.VWAP != nil {
		t.Fatalf("vwap=%v want absent for zero-volume bucket", bar.VWAP)
	}
	if !bar.Traded {
		t.Fatalf("zero-volume tick still marks the bucket traded")
	}
}

func TestBucketOf(t *testing.T) {
	if BucketOf(base+299) != base {
		t.Fatalf("floor failed")
	}
	if BucketOf(base+300) != base+300 {
		t.Fatalf("boundary failed")
	}
}
