package repository

import (
	"Viralize/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// DailyUsageTotals 某一天全站的用量汇总
type DailyUsageTotals struct {
	TotalPredictions int64
	ActiveUsers      int64
}

// UsageRepo 用量台账的读取操作。
// 写入（upsert）固定发生在 PredictionRepo.CreateWithUsage 的事务里，
// 保证一次成功预测对应且仅对应一次计数变更
type UsageRepo interface {
	GetByUserAndDate(ctx context.Context, userID uint64, day time.Time) (*model.UsageRecord, error)
	GetDailyTotals(ctx context.Context, day time.Time) (*DailyUsageTotals, error)
}

type usageRepoImpl struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepo {
	return &usageRepoImpl{db: db}
}

func (s *usageRepoImpl) GetByUserAndDate(ctx context.Context, userID uint64, day time.Time) (*model.UsageRecord, error) {
	var record model.UsageRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND usage_date = ?", userID, day).
		First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s *usageRepoImpl) GetDailyTotals(ctx context.Context, day time.Time) (*DailyUsageTotals, error) {
	var row struct {
		Total int64
		Users int64
	}
	err := s.db.WithContext(ctx).
		Model(&model.UsageRecord{}).
		Select("COALESCE(SUM(prediction_count), 0) AS total, COUNT(*) AS users").
		Where("usage_date = ?", day).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &DailyUsageTotals{
		TotalPredictions: row.Total,
		ActiveUsers:      row.Users,
	}, nil
}
