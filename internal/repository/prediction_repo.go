package repository

import (
	"Viralize/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserPredictionAggregates 单个用户的历史汇总
type UserPredictionAggregates struct {
	TotalPredictions     int64
	AverageViralityScore float64
	LastPredictionAt     *time.Time
}

type PredictionRepo interface {
	CreateWithUsage(ctx context.Context, prediction *model.Prediction, usage *model.UsageRecord) error
	GetPageByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Prediction, int64, error)
	GetRecentByUser(ctx context.Context, userID uint64, limit int) ([]*model.Prediction, error)
	GetUserAggregates(ctx context.Context, userID uint64) (*UserPredictionAggregates, error)
}

type predictionRepoImpl struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) PredictionRepo {
	return &predictionRepoImpl{db: db}
}

// CreateWithUsage 在同一事务内插入预测并写入当日用量行。
// 用量行按 (user_id, usage_date) upsert：已存在则覆盖为调用方算好的新计数，
// 不存在则插入。任一步失败整个事务回滚
func (s *predictionRepoImpl) CreateWithUsage(ctx context.Context, prediction *model.Prediction, usage *model.UsageRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(prediction).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "usage_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"prediction_count", "updated_at"}),
		}).Create(usage).Error
	})
}

func (s *predictionRepoImpl) GetPageByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Prediction, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&model.Prediction{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	predictions := make([]*model.Prediction, 0, pageSize)
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&predictions).Error
	if err != nil {
		return nil, 0, err
	}
	return predictions, total, nil
}

func (s *predictionRepoImpl) GetRecentByUser(ctx context.Context, userID uint64, limit int) ([]*model.Prediction, error) {
	predictions := make([]*model.Prediction, 0, limit)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

func (s *predictionRepoImpl) GetUserAggregates(ctx context.Context, userID uint64) (*UserPredictionAggregates, error) {
	var row struct {
		Total int64
		Avg   float64
		Last  *time.Time
	}
	err := s.db.WithContext(ctx).
		Model(&model.Prediction{}).
		Select("COUNT(*) AS total, COALESCE(AVG(virality_score), 0) AS avg, MAX(created_at) AS last").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &UserPredictionAggregates{
		TotalPredictions:     row.Total,
		AverageViralityScore: row.Avg,
		LastPredictionAt:     row.Last,
	}, nil
}
