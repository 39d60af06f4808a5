package repository

import (
	"context"

	"mismon/internal/models"
)

type ListDetectionsParams struct {
	Symbol string
	Limit  int
	Offset int
}

// Repository is the tick-store contract. Upserts are idempotent under retry
// and a failed batch leaves rows outside the batch untouched.
type Repository interface {
	UpsertTicks(ctx context.Context, items []models.Tick) error
	UpsertDailyMeta(ctx context.Context, items []models.DailyMeta) error

	// ListTicks returns the [startTS, endTS] range ordered by ts_sec
	// ascending. The ordering is part of the contract: the aggregator
	// relies on it.
	ListTicks(ctx context.Context, symbol string, startTS, endTS int64) ([]models.Tick, error)
	GetLatestMeta(ctx context.Context, symbol string) (*models.DailyMeta, error)
	GetMetaByDate(ctx context.Context, symbol, tradeDate string) (*models.DailyMeta, error)

	InsertDetection(ctx context.Context, item *models.Detection) error
	ListDetections(ctx context.Context, params ListDetectionsParams) ([]models.Detection, error)

	DeleteTicksBefore(ctx context.Context, tsSec int64) (int64, error)
	DeleteDailyMetaBefore(ctx context.Context, tradeDate string) (int64, error)
}
