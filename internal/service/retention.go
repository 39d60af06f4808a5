package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mismon/internal/repository"
)

// RetentionService trims tick and daily-meta history past the configured
// window. Scheduled via cron, but RunOnce is callable directly.
type RetentionService struct {
	Repo   repository.Repository
	Logger *zap.Logger
	Days   int
	Loc    *time.Location
}

func (s *RetentionService) RunOnce(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	days := s.Days
	if days <= 0 {
		days = 60
	}
	loc := s.Loc
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -days)

	nTicks, err := s.Repo.DeleteTicksBefore(ctx, cutoff.Unix())
	if err != nil {
		return err
	}
	nMeta, err := s.Repo.DeleteDailyMetaBefore(ctx, cutoff.Format("2006-01-02"))
	if err != nil {
		return err
	}
	if s.Logger != nil && (nTicks > 0 || nMeta > 0) {
		s.Logger.Info("retention sweep complete",
			zap.Int64("ticks_deleted", nTicks),
			zap.Int64("meta_deleted", nMeta),
			zap.String("cutoff", cutoff.Format("2006-01-02")),
		)
	}
	return nil
}
