package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"mismon/internal/client/mis"
	"mismon/internal/config"
	"mismon/internal/models"
	"mismon/internal/notify"
	"mismon/internal/repository"
	"mismon/internal/signal"
)

const idleWait = 60 * time.Second

// PollerService drives the ingest cycle: fetch MIS quotes, upsert ticks and
// daily meta, recompute today's bars per symbol, and feed the reversal
// detector. Cycles run strictly one at a time; detector state is only
// mutated here.
type PollerService struct {
	Repo     repository.Repository
	MIS      *mis.Client
	Runtime  *config.Runtime
	Summary  *SummaryService
	Detector *signal.Detector
	Webhook  *notify.Webhook
	Logger   *zap.Logger
	Loc      *time.Location
}

func (s *PollerService) Run(ctx context.Context) error {
	if s == nil || s.Repo == nil || s.MIS == nil {
		return nil
	}
	for {
		snap := s.Runtime.Poller()
		wait := snap.Interval
		if !snap.Enabled || len(snap.Symbols) == 0 {
			wait = idleWait
		} else {
			if err := s.PollOnce(ctx, snap.Symbols); err != nil && s.Logger != nil {
				s.Logger.Warn("poll cycle failed", zap.Error(err))
			}
			if wait <= 0 {
				wait = 5 * time.Second
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// PollOnce runs a single fetch-store-derive cycle. Per-symbol failures are
// logged and do not stop the remaining symbols.
func (s *PollerService) PollOnce(ctx context.Context, channels []string) error {
	msgs, err := s.MIS.GetStockInfo(ctx, channels)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		return nil
	}

	today := time.Now().In(s.loc()).Format("2006-01-02")
	metas := make([]models.DailyMeta, 0, len(msgs))
	ticks := make([]models.Tick, 0, len(msgs))
	seedBySymbol := make(map[string]*float64, len(msgs))
	nameBySymbol := make(map[string]string, len(msgs))
	fresh := make([]string, 0, len(msgs))

	for _, msg := range msgs {
		code := strings.TrimSpace(msg.Code)
		if code == "" {
			continue
		}
		meta := models.DailyMeta{
			Symbol:    code,
			TradeDate: today,
			DayOpen:   mis.ParseFloat(msg.Open),
			DayHigh:   mis.ParseFloat(msg.High),
			DayLow:    mis.ParseFloat(msg.Low),
			PrevClose: mis.ParseFloat(msg.PrevClose),
			LimitUp:   mis.ParseFloat(msg.LimitUp),
			LimitDown: mis.ParseFloat(msg.LimitDown),
			ShortName: strings.TrimSpace(msg.ShortName),
			FullName:  strings.TrimSpace(msg.FullName),
			Exchange:  strings.TrimSpace(msg.Exchange),
		}
		metas = append(metas, meta)
		seedBySymbol[code] = meta.DayOpen
		nameBySymbol[code] = meta.ShortName

		price := mis.ParseFloat(msg.Price)
		tlong, terr := strconv.ParseInt(strings.TrimSpace(msg.TimeMillis), 10, 64)
		if price == nil || terr != nil {
			continue
		}
		vol := int64(0)
		if v := mis.ParseFloat(msg.TradeVol); v != nil {
			vol = int64(*v)
		}
		ticks = append(ticks, models.Tick{
			Symbol:  code,
			TSSec:   tlong / 1000,
			Price:   *price,
			Vol:     vol,
			BestBid: mis.FirstPrice(msg.BestBids),
			BestAsk: mis.FirstPrice(msg.BestAsks),
		})
		fresh = append(fresh, code)
	}

	if err := s.Repo.UpsertDailyMeta(ctx, metas); err != nil {
		s.warn("daily meta upsert failed", err)
	}
	if err := s.Repo.UpsertTicks(ctx, ticks); err != nil {
		s.warn("tick upsert failed", err)
	}
	if s.Logger != nil {
		s.Logger.Info("poll cycle complete",
			zap.Int("quotes", len(msgs)),
			zap.Int("meta", len(metas)),
			zap.Int("ticks", len(ticks)),
		)
	}

	if s.Detector == nil || s.Summary == nil {
		return nil
	}
	for _, symbol := range fresh {
		s.checkReversal(ctx, symbol, seedBySymbol[symbol], nameBySymbol[symbol])
	}
	return nil
}

func (s *PollerService) checkReversal(ctx context.Context, symbol string, seedOpen *float64, displayName string) {
	bars, err := s.Summary.Bars(ctx, symbol, seedOpen)
	if err != nil {
		s.warn("bar recompute failed", err, zap.String("symbol", symbol))
		return
	}
	det := s.Detector.Observe(symbol, bars)
	if det == nil {
		return
	}
	if s.Logger != nil {
		s.Logger.Info("v-shape reversal detected",
			zap.String("symbol", symbol),
			zap.Strings("buckets", det.Labels[:]),
			zap.Float64s("lows", det.Lows[:]),
		)
	}

	// Deliberate re-fetch: the notification carries the state at fire time,
	// not the snapshot that started the cycle.
	summary, err := s.Summary.Today(ctx, symbol)
	if err != nil {
		s.warn("summary fetch for notification failed", err, zap.String("symbol", symbol))
	}

	event := notify.Event{
		Symbol:      symbol,
		DisplayName: displayName,
		Buckets:     det.Labels,
		Lows:        det.Lows,
		Summary:     summary,
		DetectedAt:  time.Now().UTC(),
	}
	delivered := false
	if s.Webhook.Enabled() {
		if err := s.Webhook.Send(ctx, event); err != nil {
			// At-most-once: the miss is logged, never retried, and the
			// detector stays armed for the next bucket only.
			s.warn("webhook delivery failed", err, zap.String("symbol", symbol))
		} else {
			delivered = true
		}
	}

	payload, _ := json.Marshal(summary)
	record := &models.Detection{
		Symbol:    symbol,
		Bucket1:   det.Labels[0],
		Bucket2:   det.Labels[1],
		Bucket3:   det.Labels[2],
		Low1:      det.Lows[0],
		Low2:      det.Lows[1],
		Low3:      det.Lows[2],
		Payload:   payload,
		Delivered: delivered,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.InsertDetection(ctx, record); err != nil {
		s.warn("detection insert failed", err, zap.String("symbol", symbol))
	}
}

func (s *PollerService) warn(msg string, err error, fields ...zap.Field) {
	if s.Logger == nil {
		return
	}
	s.Logger.Warn(msg, append(fields, zap.Error(err))...)
}

func (s *PollerService) loc() *time.Location {
	if s.Loc != nil {
		return s.Loc
	}
	return time.UTC
}
