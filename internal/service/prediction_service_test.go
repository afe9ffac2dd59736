package service

import (
	"Viralize/internal/api/config"
	"Viralize/internal/api/dto"
	"Viralize/internal/model"
	"Viralize/internal/pkg/kafka"
	"Viralize/internal/pkg/llm"
	"Viralize/internal/repository"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAnalysis = `{
	"viralityScore": 72,
	"confidence": 0.8,
	"factors": {
		"sentiment": {"label": "positive", "score": 0.9},
		"hashtags": {"count": 2, "trending": true},
		"length": {"characters": 120, "optimal": true},
		"emojis": {"count": 1, "impact": "low"},
		"buzzwords": {"count": 1, "words": ["AI"]}
	},
	"suggestions": ["Add a trending hashtag", "Ask a question"]
}`

type fakeAnalyzer struct {
	raw string
	err error
}

func (s *fakeAnalyzer) Analyze(_ context.Context, _ string) (string, error) {
	return s.raw, s.err
}

type fakePredictionRepo struct {
	created      *model.Prediction
	createdUsage *model.UsageRecord
	createErr    error

	pageItems []*model.Prediction
	pageTotal int64
	recent    []*model.Prediction
	aggs      *repository.UserPredictionAggregates
}

func (s *fakePredictionRepo) CreateWithUsage(_ context.Context, prediction *model.Prediction, usage *model.UsageRecord) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = prediction
	s.createdUsage = usage
	return nil
}

func (s *fakePredictionRepo) GetPageByUser(_ context.Context, _ uint64, _, _ int) ([]*model.Prediction, int64, error) {
	return s.pageItems, s.pageTotal, nil
}

func (s *fakePredictionRepo) GetRecentByUser(_ context.Context, _ uint64, _ int) ([]*model.Prediction, error) {
	return s.recent, nil
}

func (s *fakePredictionRepo) GetUserAggregates(_ context.Context, _ uint64) (*repository.UserPredictionAggregates, error) {
	return s.aggs, nil
}

type fakeUsageRepo struct {
	record *model.UsageRecord
	err    error
}

func (s *fakeUsageRepo) GetByUserAndDate(_ context.Context, _ uint64, _ time.Time) (*model.UsageRecord, error) {
	return s.record, s.err
}

func (s *fakeUsageRepo) GetDailyTotals(_ context.Context, _ time.Time) (*repository.DailyUsageTotals, error) {
	return &repository.DailyUsageTotals{}, nil
}

type fakePublisher struct {
	predictionEvents []*kafka.PredictionCreatedEvent
	summaryEvents    []*kafka.UsageSummaryEvent
}

func (s *fakePublisher) PublishPredictionCreated(event *kafka.PredictionCreatedEvent) {
	s.predictionEvents = append(s.predictionEvents, event)
}

func (s *fakePublisher) PublishUsageSummary(event *kafka.UsageSummaryEvent) {
	s.summaryEvents = append(s.summaryEvents, event)
}

func (s *fakePublisher) Close() error { return nil }

func setupTestConfig(t *testing.T) {
	t.Helper()
	config.Cfg = &config.Config{
		Quota: config.QuotaConfig{FreeDailyLimit: 3},
	}
}

func newTestService(predictionRepo *fakePredictionRepo, usageRepo *fakeUsageRepo, analyzer *fakeAnalyzer, publisher kafka.EventPublisher) PredictionService {
	return NewPredictionService(predictionRepo, usageRepo, analyzer, publisher)
}

func TestPredictMissingText(t *testing.T) {
	setupTestConfig(t)
	svc := newTestService(&fakePredictionRepo{}, &fakeUsageRepo{}, &fakeAnalyzer{raw: validAnalysis}, nil)

	_, err := svc.Predict(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrMissingText)

	_, err = svc.Predict(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrMissingText)
}

func TestPredictEmptyText(t *testing.T) {
	setupTestConfig(t)
	svc := newTestService(&fakePredictionRepo{}, &fakeUsageRepo{}, &fakeAnalyzer{raw: validAnalysis}, nil)

	_, err := svc.Predict(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = svc.Predict(context.Background(), 1, "   \n\t  ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestPredictTextTooLong(t *testing.T) {
	setupTestConfig(t)
	svc := newTestService(&fakePredictionRepo{}, &fakeUsageRepo{}, &fakeAnalyzer{raw: validAnalysis}, nil)

	_, err := svc.Predict(context.Background(), 1, strings.Repeat("a", 501))
	assert.ErrorIs(t, err, ErrTextTooLong)
}

func TestPredictTextLimitCountsRunes(t *testing.T) {
	setupTestConfig(t)
	repo := &fakePredictionRepo{}
	svc := newTestService(repo, &fakeUsageRepo{}, &fakeAnalyzer{raw: validAnalysis}, nil)

	// 500 个多字节字符正好在上限内
	result, err := svc.Predict(context.Background(), 1, strings.Repeat("字", 500))
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestPredictQuotaExceeded(t *testing.T) {
	setupTestConfig(t)
	usageRepo := &fakeUsageRepo{record: &model.UsageRecord{PredictionCount: 3}}
	svc := newTestService(&fakePredictionRepo{}, usageRepo, &fakeAnalyzer{raw: validAnalysis}, nil)

	_, err := svc.Predict(context.Background(), 1, "hello world")
	var quotaErr *QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 3, quotaErr.DailyLimit)
	assert.Equal(t, 3, quotaErr.TodayCount)
	assert.Contains(t, quotaErr.Error(), "daily limit of 3")
}

func TestPredictQuotaNotConsumedOnProviderFailure(t *testing.T) {
	setupTestConfig(t)
	repo := &fakePredictionRepo{}
	analyzer := &fakeAnalyzer{err: errors.Wrap(llm.ErrProviderFailed, "boom")}
	svc := newTestService(repo, &fakeUsageRepo{}, analyzer, nil)

	_, err := svc.Predict(context.Background(), 1, "hello world")
	assert.ErrorIs(t, err, ErrAIFailed)
	assert.Nil(t, repo.created, "failed prediction must not be persisted")
}

func TestPredictProviderErrorClassification(t *testing.T) {
	setupTestConfig(t)

	cases := []struct {
		name     string
		provider error
		want     error
	}{
		{"timeout", llm.ErrProviderTimeout, ErrTimeout},
		{"network", llm.ErrProviderNetwork, ErrNetwork},
		{"generic", llm.ErrProviderFailed, ErrAIFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{err: errors.Wrap(tc.provider, "provider error")}
			svc := newTestService(&fakePredictionRepo{}, &fakeUsageRepo{}, analyzer, nil)

			_, err := svc.Predict(context.Background(), 1, "hello world")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPredictMalformedResponse(t *testing.T) {
	setupTestConfig(t)
	svc := newTestService(&fakePredictionRepo{}, &fakeUsageRepo{}, &fakeAnalyzer{raw: "not json at all"}, nil)

	_, err := svc.Predict(context.Background(), 1, "hello world")
	assert.ErrorIs(t, err, ErrParse)
}

func TestPredictFencedResponseIsMalformed(t *testing.T) {
	setupTestConfig(t)
	fenced := "```json\n" + validAnalysis + "\n```"
	svc := newTestService(&fakePredictionRepo{}, &fakeUsageRepo{}, &fakeAnalyzer{raw: fenced}, nil)

	_, err := svc.Predict(context.Background(), 1, "hello world")
	assert.ErrorIs(t, err, ErrParse)
}

func TestPredictIncompleteResponse(t *testing.T) {
	setupTestConfig(t)
	svc := newTestService(&fakePredictionRepo{}, &fakeUsageRepo{}, &fakeAnalyzer{raw: `{"viralityScore": 50}`}, nil)

	_, err := svc.Predict(context.Background(), 1, "hello world")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPredictHappyPath(t *testing.T) {
	setupTestConfig(t)
	repo := &fakePredictionRepo{}
	usageRepo := &fakeUsageRepo{record: &model.UsageRecord{PredictionCount: 1}}
	publisher := &fakePublisher{}
	svc := newTestService(repo, usageRepo, &fakeAnalyzer{raw: validAnalysis}, publisher)

	result, err := svc.Predict(context.Background(), 7, "  hello world  ")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.RemainingPredictions)
	require.NotNil(t, result.Data)
	assert.NotEmpty(t, result.Data.ID)
	assert.Equal(t, 72.0, result.Data.ViralityScore)
	assert.Equal(t, 0.8, result.Data.Confidence)
	assert.Equal(t, "positive", result.Data.Factors.Sentiment.Label)
	assert.Equal(t, 2, result.Data.Factors.Hashtags.Count)
	assert.Equal(t, []any{"Add a trending hashtag", "Ask a question"}, result.Data.Suggestions)

	// 落库内容
	require.NotNil(t, repo.created)
	assert.Equal(t, result.Data.ID, repo.created.ID)
	assert.Equal(t, uint64(7), repo.created.UserID)
	assert.Equal(t, "hello world", repo.created.PostText, "stored text is trimmed")
	assert.JSONEq(t, `["AI"]`, repo.created.Buzzwords)
	assert.JSONEq(t, `["Add a trending hashtag", "Ask a question"]`, repo.created.Suggestions)

	// 用量行带着算好的新计数进事务
	require.NotNil(t, repo.createdUsage)
	assert.Equal(t, uint64(7), repo.createdUsage.UserID)
	assert.Equal(t, 2, repo.createdUsage.PredictionCount)
	assert.Equal(t, time.UTC, repo.createdUsage.UsageDate.Location())

	// 事件
	require.Len(t, publisher.predictionEvents, 1)
	assert.Equal(t, result.Data.ID, publisher.predictionEvents[0].PredictionID)
	assert.Equal(t, 2, publisher.predictionEvents[0].TodayCount)
}

func TestPredictFirstOfDay(t *testing.T) {
	setupTestConfig(t)
	repo := &fakePredictionRepo{}
	svc := newTestService(repo, &fakeUsageRepo{}, &fakeAnalyzer{raw: validAnalysis}, nil)

	result, err := svc.Predict(context.Background(), 1, "hello world")
	require.NoError(t, err)
	assert.Equal(t, 2, result.RemainingPredictions)
	assert.Equal(t, 1, repo.createdUsage.PredictionCount)
}

func TestPredictPersistFailure(t *testing.T) {
	setupTestConfig(t)
	repo := &fakePredictionRepo{createErr: errors.New("db down")}
	svc := newTestService(repo, &fakeUsageRepo{}, &fakeAnalyzer{raw: validAnalysis}, nil)

	_, err := svc.Predict(context.Background(), 1, "hello world")
	assert.Error(t, err)
}

func TestGetUsageNoRecord(t *testing.T) {
	setupTestConfig(t)
	svc := newTestService(&fakePredictionRepo{}, &fakeUsageRepo{}, &fakeAnalyzer{}, nil)

	usage, err := svc.GetUsage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "free", usage.Tier)
	assert.Equal(t, 0, usage.TodayCount)
	assert.Equal(t, 3, usage.DailyLimit)
	assert.Equal(t, 3, usage.RemainingToday)
}

func TestGetUsagePartiallyConsumed(t *testing.T) {
	setupTestConfig(t)
	usageRepo := &fakeUsageRepo{record: &model.UsageRecord{PredictionCount: 2}}
	svc := newTestService(&fakePredictionRepo{}, usageRepo, &fakeAnalyzer{}, nil)

	usage, err := svc.GetUsage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, usage.TodayCount)
	assert.Equal(t, 1, usage.RemainingToday)
}

func TestGetUsageOverConsumedClampsToZero(t *testing.T) {
	setupTestConfig(t)
	usageRepo := &fakeUsageRepo{record: &model.UsageRecord{PredictionCount: 5}}
	svc := newTestService(&fakePredictionRepo{}, usageRepo, &fakeAnalyzer{}, nil)

	usage, err := svc.GetUsage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, usage.RemainingToday)
}

func TestGetHistory(t *testing.T) {
	setupTestConfig(t)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	repo := &fakePredictionRepo{
		pageItems: []*model.Prediction{
			{
				ID:            "p1",
				PostText:      "hello",
				ViralityScore: 60,
				Confidence:    0.7,
				Sentiment:     "neutral",
				Buzzwords:     `["AI"]`,
				Suggestions:   `["Add emojis"]`,
				CreatedAt:     now,
			},
		},
		pageTotal: 11,
	}
	svc := newTestService(repo, &fakeUsageRepo{}, &fakeAnalyzer{}, nil)

	history, err := svc.GetHistory(context.Background(), 1, &dto.HistoryQueryDTO{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, history.Page)
	assert.Equal(t, int64(11), history.Total)
	require.Len(t, history.Items, 1)
	assert.Equal(t, "p1", history.Items[0].ID)
	assert.Equal(t, []any{"Add emojis"}, history.Items[0].Suggestions)
	assert.Equal(t, "2026-08-28T10:00:00Z", history.Items[0].CreatedAt)
}

func TestGetStats(t *testing.T) {
	setupTestConfig(t)
	last := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	repo := &fakePredictionRepo{
		aggs: &repository.UserPredictionAggregates{
			TotalPredictions:     4,
			AverageViralityScore: 55.5,
			LastPredictionAt:     &last,
		},
		recent: []*model.Prediction{
			{Suggestions: `["Add emojis", "Ask a question"]`},
			{Suggestions: `["Add emojis"]`},
			{Suggestions: `["Add emojis", 123]`},
		},
	}
	usageRepo := &fakeUsageRepo{record: &model.UsageRecord{PredictionCount: 2}}
	svc := newTestService(repo, usageRepo, &fakeAnalyzer{}, nil)

	stats, err := svc.GetStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalPredictions)
	assert.Equal(t, 55.5, stats.AverageViralityScore)
	assert.Equal(t, &last, stats.LastPredictionAt)
	assert.Equal(t, 2, stats.PredictionsToday)

	require.Len(t, stats.TopSuggestions, 2)
	assert.Equal(t, "Add emojis", stats.TopSuggestions[0].Suggestion)
	assert.Equal(t, 3, stats.TopSuggestions[0].Count)
	assert.Equal(t, "Ask a question", stats.TopSuggestions[1].Suggestion)
	assert.Equal(t, 1, stats.TopSuggestions[1].Count)
}
