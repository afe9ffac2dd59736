package dto

import "time"

// UsageDTO 当日配额使用情况
type UsageDTO struct {
	Tier           string `json:"tier"`
	TodayCount     int    `json:"todayCount"`
	DailyLimit     int    `json:"dailyLimit"`
	RemainingToday int    `json:"remainingToday"`
}

// SuggestionCountDTO 建议及其出现次数
type SuggestionCountDTO struct {
	Suggestion string `json:"suggestion"`
	Count      int    `json:"count"`
}

// UsageStatsDTO 用户历史统计
type UsageStatsDTO struct {
	TotalPredictions     int64                 `json:"totalPredictions"`
	AverageViralityScore float64               `json:"averageViralityScore"`
	LastPredictionAt     *time.Time            `json:"lastPredictionAt,omitempty"`
	PredictionsToday     int                   `json:"predictionsToday"`
	TopSuggestions       []*SuggestionCountDTO `json:"topSuggestions"`
}
