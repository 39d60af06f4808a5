package service

import (
	"context"
	"strconv"
	"time"

	"mismon/internal/market"
	"mismon/internal/models"
	"mismon/internal/repository"
)

// Summary is the serialized intraday view for one symbol. "No data" renders
// as absent scalars and empty lists, never as an error.
type Summary struct {
	Symbol      string   `json:"symbol"`
	ShortName   string   `json:"short_name"`
	FullName    string   `json:"full_name,omitempty"`
	Exchange    string   `json:"exchange,omitempty"`
	Date        string   `json:"date,omitempty"`
	LatestPrice *float64 `json:"latest_price"`
	DayOpen     *float64 `json:"day_open"`
	DayHigh     *float64 `json:"day_high"`
	DayLow      *float64 `json:"day_low"`
	PrevClose   *float64 `json:"prev_close"`
	TotalVolume *int64   `json:"total_volume"`
	Source      string   `json:"source"`
	OHLC5Min    []string `json:"ohlc_5m"`
	BuySell5Min []string `json:"buy_sell_5m"`
	VWAP5Min    []string `json:"vwap_5m"`
}

type SummaryService struct {
	Repo repository.Repository
	Loc  *time.Location
}

// Today aggregates the window from local midnight to now.
func (s *SummaryService) Today(ctx context.Context, symbol string) (Summary, error) {
	now := time.Now().In(s.loc())
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc())
	meta, err := s.Repo.GetLatestMeta(ctx, symbol)
	if err != nil {
		return Summary{}, err
	}
	return s.build(ctx, symbol, "", meta, start.Unix(), now.Unix())
}

// Historical aggregates one full calendar day. date is YYYY-MM-DD.
func (s *SummaryService) Historical(ctx context.Context, symbol, date string) (Summary, error) {
	start, err := time.ParseInLocation("2006-01-02", date, s.loc())
	if err != nil {
		return Summary{}, err
	}
	end := start.AddDate(0, 0, 1).Add(-time.Second)
	meta, err := s.Repo.GetMetaByDate(ctx, symbol, date)
	if err != nil {
		return Summary{}, err
	}
	return s.build(ctx, symbol, date, meta, start.Unix(), end.Unix())
}

// Bars recomputes today's bar grid for the detector without rendering.
func (s *SummaryService) Bars(ctx context.Context, symbol string, seedOpen *float64) ([]market.Bar, error) {
	now := time.Now().In(s.loc())
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc())
	ticks, err := s.Repo.ListTicks(ctx, symbol, start.Unix(), now.Unix())
	if err != nil {
		return nil, err
	}
	return market.Aggregate(ticks, seedOpen).Bars, nil
}

func (s *SummaryService) build(ctx context.Context, symbol, date string, meta *models.DailyMeta, startTS, endTS int64) (Summary, error) {
	out := Summary{
		Symbol:      symbol,
		Source:      "db",
		Date:        date,
		OHLC5Min:    []string{},
		BuySell5Min: []string{},
		VWAP5Min:    []string{},
	}
	var seedOpen *float64
	if meta != nil {
		out.ShortName = meta.ShortName
		out.FullName = meta.FullName
		out.Exchange = meta.Exchange
		out.DayOpen = meta.DayOpen
		out.DayHigh = meta.DayHigh
		out.DayLow = meta.DayLow
		out.PrevClose = meta.PrevClose
		seedOpen = meta.DayOpen
	}

	ticks, err := s.Repo.ListTicks(ctx, symbol, startTS, endTS)
	if err != nil {
		return Summary{}, err
	}
	if len(ticks) == 0 {
		return out, nil
	}

	res := market.Aggregate(ticks, seedOpen)
	out.LatestPrice = res.LatestPrice
	total := res.TotalVolume
	out.TotalVolume = &total

	for _, bar := range res.Bars {
		label := bar.Label(s.loc())
		if bar.Close != nil {
			out.OHLC5Min = append(out.OHLC5Min,
				label+",O:"+ftoa(*bar.Open)+",H:"+ftoa(*bar.High)+",L:"+ftoa(*bar.Low)+",C:"+ftoa(*bar.Close))
			out.BuySell5Min = append(out.BuySell5Min,
				label+",B:"+strconv.FormatInt(bar.BuyVol, 10)+",S:"+strconv.FormatInt(bar.SellVol, 10))
		}
		if bar.VWAP != nil {
			out.VWAP5Min = append(out.VWAP5Min, label+","+bar.VWAP.StringFixed(2))
		}
	}
	return out, nil
}

func (s *SummaryService) loc() *time.Location {
	if s.Loc != nil {
		return s.Loc
	}
	return time.UTC
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
