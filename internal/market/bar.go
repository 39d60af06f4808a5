package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// BucketSeconds is the fixed aggregation window.
const BucketSeconds = 300

// Bar is one 5-minute aggregate. A synthesized no-trade bar carries the
// previous close as a flat O=H=L=C and no VWAP. OHLC pointers are nil only
// when the very first bucket has no trade and no seed open price exists.
type Bar struct {
	BucketStart int64
	Open        *float64
	High        *float64
	Low         *float64
	Close       *float64
	VWAP        *decimal.Decimal
	BuyVol      int64
	SellVol     int64
	Traded      bool
}

// Label renders the bucket start as HH:MM in the given calendar.
func (b Bar) Label(loc *time.Location) string {
	return time.Unix(b.BucketStart, 0).In(loc).Format("15:04")
}

// BucketOf aligns a unix-second timestamp down to its 5-minute bucket.
func BucketOf(tsSec int64) int64 {
	return tsSec - tsSec%BucketSeconds
}
