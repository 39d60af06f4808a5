package gormrepository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mismon/internal/models"
	"mismon/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UpsertTicks(ctx context.Context, items []models.Tick) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}, {Name: "ts_sec"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"price",
			"vol",
			"best_bid",
			"best_ask",
		}),
	}).Create(&items).Error
}

// UpsertDailyMeta keeps existing numeric values when the incoming row has
// none; name and exchange fields always overwrite.
func (s *Store) UpsertDailyMeta(ctx context.Context, items []models.DailyMeta) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	assign := map[string]any{
		"short_name": gorm.Expr("excluded.short_name"),
		"full_name":  gorm.Expr("excluded.full_name"),
		"exchange":   gorm.Expr("excluded.exchange"),
	}
	for _, col := range []string{"day_open", "day_high", "day_low", "prev_close", "limit_up", "limit_down"} {
		assign[col] = gorm.Expr("COALESCE(excluded." + col + ", daily_meta." + col + ")")
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "trade_date"}},
		DoUpdates: clause.Assignments(assign),
	}).Create(&items).Error
}

func (s *Store) ListTicks(ctx context.Context, symbol string, startTS, endTS int64) ([]models.Tick, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Tick
	if err := s.db.WithContext(ctx).
		Model(&models.Tick{}).
		Where("symbol = ?", symbol).
		Where("ts_sec >= ?", startTS).
		Where("ts_sec <= ?", endTS).
		Order("ts_sec asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetLatestMeta(ctx context.Context, symbol string) (*models.DailyMeta, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.DailyMeta
	err := s.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("trade_date desc").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetMetaByDate(ctx context.Context, symbol, tradeDate string) (*models.DailyMeta, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.DailyMeta
	err := s.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Where("trade_date = ?", tradeDate).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) InsertDetection(ctx context.Context, item *models.Detection) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListDetections(ctx context.Context, params repository.ListDetectionsParams) ([]models.Detection, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Detection{})
	if params.Symbol != "" {
		query = query.Where("symbol = ?", params.Symbol)
	}
	limit := params.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	var items []models.Detection
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) DeleteTicksBefore(ctx context.Context, tsSec int64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("ts_sec < ?", tsSec).Delete(&models.Tick{})
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteDailyMetaBefore(ctx context.Context, tradeDate string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("trade_date < ?", tradeDate).Delete(&models.DailyMeta{})
	return res.RowsAffected, res.Error
}

var _ repository.Repository = (*Store)(nil)
