package model

import (
	"time"
)

// Prediction 一次成功分析的完整结果，只插入不更新
type Prediction struct {
	ID               string    `gorm:"type:char(36);primaryKey"`
	UserID           uint64    `gorm:"not null;index:idx_user_created"`
	PostText         string    `gorm:"type:varchar(500);not null"`
	ViralityScore    float64   `gorm:"not null"`
	Confidence       float64   `gorm:"not null"`
	Sentiment        string    `gorm:"type:varchar(20);not null"`
	SentimentScore   float64   `gorm:"not null"`
	HashtagCount     int       `gorm:"not null;default:0"`
	HashtagTrending  bool      `gorm:"type:tinyint(1);not null;default:0"`
	LengthCharacters int       `gorm:"not null;default:0"`
	LengthOptimal    bool      `gorm:"type:tinyint(1);not null;default:0"`
	EmojiCount       int       `gorm:"not null;default:0"`
	EmojiImpact      string    `gorm:"type:varchar(10);not null"`
	BuzzwordCount    int       `gorm:"not null;default:0"`
	Buzzwords        string    `gorm:"type:text;not null"` // JSON 数组
	Suggestions      string    `gorm:"type:text;not null"` // JSON 数组
	CreatedAt        time.Time `gorm:"index:idx_user_created"`
}

func (Prediction) TableName() string {
	return "predictions"
}
