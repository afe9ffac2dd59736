package kafka

import "time"

const (
	EventTypePredictionCreated = "prediction.created"
	EventTypeUsageSummary      = "usage.summary"
)

// PredictionCreatedEvent 一次成功预测落库后发出的事件
type PredictionCreatedEvent struct {
	EventType     string    `json:"eventType"`
	PredictionID  string    `json:"predictionId"`
	UserID        uint64    `json:"userId"`
	ViralityScore float64   `json:"viralityScore"`
	TodayCount    int       `json:"todayCount"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// UsageSummaryEvent 日报任务汇总前一天用量后发出的事件
type UsageSummaryEvent struct {
	EventType        string    `json:"eventType"`
	UsageDate        string    `json:"usageDate"`
	TotalPredictions int64     `json:"totalPredictions"`
	ActiveUsers      int64     `json:"activeUsers"`
	GeneratedAt      time.Time `json:"generatedAt"`
}
