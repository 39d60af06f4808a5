package service

import (
	"context"
	"sort"

	"mismon/internal/models"
	"mismon/internal/repository"
)

type stubRepo struct {
	ticks      []models.Tick
	metaLatest map[string]*models.DailyMeta
	metaByDate map[string]*models.DailyMeta

	detections []models.Detection

	upsertTickErr error
	upsertMetaErr error

	upsertedMeta []models.DailyMeta
}

func (r *stubRepo) UpsertTicks(ctx context.Context, items []models.Tick) error {
	if r.upsertTickErr != nil {
		return r.upsertTickErr
	}
	r.ticks = append(r.ticks, items...)
	return nil
}

func (r *stubRepo) UpsertDailyMeta(ctx context.Context, items []models.DailyMeta) error {
	if r.upsertMetaErr != nil {
		return r.upsertMetaErr
	}
	r.upsertedMeta = append(r.upsertedMeta, items...)
	return nil
}

func (r *stubRepo) ListTicks(ctx context.Context, symbol string, startTS, endTS int64) ([]models.Tick, error) {
	var out []models.Tick
	for _, t := range r.ticks {
		if t.Symbol == symbol && t.TSSec >= startTS && t.TSSec <= endTS {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TSSec < out[j].TSSec })
	return out, nil
}

func (r *stubRepo) GetLatestMeta(ctx context.Context, symbol string) (*models.DailyMeta, error) {
	return r.metaLatest[symbol], nil
}

func (r *stubRepo) GetMetaByDate(ctx context.Context, symbol, tradeDate string) (*models.DailyMeta, error) {
	return r.metaByDate[symbol+"|"+tradeDate], nil
}

func (r *stubRepo) InsertDetection(ctx context.Context, item *models.Detection) error {
	r.detections = append(r.detections, *item)
	return nil
}

func (r *stubRepo) ListDetections(ctx context.Context, params repository.ListDetectionsParams) ([]models.Detection, error) {
	return r.detections, nil
}

func (r *stubRepo) DeleteTicksBefore(ctx context.Context, tsSec int64) (int64, error) {
	kept := r.ticks[:0]
	deleted := int64(0)
	for _, t := range r.ticks {
		if t.TSSec < tsSec {
			deleted++
			continue
		}
		kept = append(kept, t)
	}
	r.ticks = kept
	return deleted, nil
}

func (r *stubRepo) DeleteDailyMetaBefore(ctx context.Context, tradeDate string) (int64, error) {
	return 0, nil
}

var _ repository.Repository = (*stubRepo)(nil)
