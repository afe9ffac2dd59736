package model

import (
	"time"
)

// UsageRecord 每个用户每个 UTC 自然日一行，记录当日成功预测次数
type UsageRecord struct {
	ID              uint64    `gorm:"primaryKey"`
	UserID          uint64    `gorm:"not null;uniqueIndex:idx_user_date"`
	UsageDate       time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_date;column:usage_date"`
	PredictionCount int       `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (UsageRecord) TableName() string {
	return "usage_tracking"
}
