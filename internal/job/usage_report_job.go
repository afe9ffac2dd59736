package job

import (
	"Viralize/internal/pkg/kafka"
	"Viralize/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// UsageReportJob 每日零点（UTC）汇总前一天的全站用量并发布摘要事件
type UsageReportJob struct {
	usageRepo repository.UsageRepo
	publisher kafka.EventPublisher
}

func NewUsageReportJob(usageRepo repository.UsageRepo, publisher kafka.EventPublisher) *UsageReportJob {
	return &UsageReportJob{
		usageRepo: usageRepo,
		publisher: publisher,
	}
}

func (s *UsageReportJob) Run() {
	ctx := context.Background()
	log.Info("start usage report job")

	yesterday := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)

	totals, err := s.usageRepo.GetDailyTotals(ctx, yesterday)
	if err != nil {
		log.Error("failed to load daily usage totals", "date", yesterday.Format(time.DateOnly), "err", err)
		return
	}

	log.Info("usage report job finished",
		"date", yesterday.Format(time.DateOnly),
		"total_predictions", totals.TotalPredictions,
		"active_users", totals.ActiveUsers,
	)

	if s.publisher != nil {
		s.publisher.PublishUsageSummary(&kafka.UsageSummaryEvent{
			UsageDate:        yesterday.Format(time.DateOnly),
			TotalPredictions: totals.TotalPredictions,
			ActiveUsers:      totals.ActiveUsers,
			GeneratedAt:      time.Now().UTC(),
		})
	}
}
