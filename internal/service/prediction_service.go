package service

import (
	"Viralize/internal/api/config"
	"Viralize/internal/api/dto"
	"Viralize/internal/model"
	"Viralize/internal/pkg/consts"
	"Viralize/internal/pkg/kafka"
	"Viralize/internal/pkg/llm"
	"Viralize/internal/pkg/processor"
	"Viralize/internal/pkg/redis"
	"Viralize/internal/repository"
	"context"
	log "log/slog"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

const statsCacheTTL = 10 * time.Minute

type PredictionService interface {
	Predict(ctx context.Context, userID uint64, postText any) (*dto.PredictResponseDTO, error)
	GetUsage(ctx context.Context, userID uint64) (*dto.UsageDTO, error)
	GetHistory(ctx context.Context, userID uint64, query *dto.HistoryQueryDTO) (*dto.PredictionHistoryDTO, error)
	GetStats(ctx context.Context, userID uint64) (*dto.UsageStatsDTO, error)
}

type predictionServiceImpl struct {
	predictionRepo repository.PredictionRepo
	usageRepo      repository.UsageRepo
	analyzer       processor.ViralityAnalyzer
	publisher      kafka.EventPublisher
}

func NewPredictionService(
	predictionRepo repository.PredictionRepo,
	usageRepo repository.UsageRepo,
	analyzer processor.ViralityAnalyzer,
	publisher kafka.EventPublisher,
) PredictionService {
	return &predictionServiceImpl{
		predictionRepo: predictionRepo,
		usageRepo:      usageRepo,
		analyzer:       analyzer,
		publisher:      publisher,
	}
}

// Predict 预测主流程：校验文本 → 查配额 → 调模型 → 解析校验 → 事务落库。
// 配额检查和计数写入之间没有行锁，并发请求可能短暂超发，按天自愈
func (s *predictionServiceImpl) Predict(ctx context.Context, userID uint64, postText any) (*dto.PredictResponseDTO, error) {
	text, ok := postText.(string)
	if !ok {
		return nil, ErrMissingText
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if utf8.RuneCountInString(text) > consts.MaxPostTextLength {
		return nil, ErrTextTooLong
	}

	// 配额按 UTC 自然日分区
	today := time.Now().UTC().Truncate(24 * time.Hour)
	limit := config.Cfg.Quota.FreeDailyLimit

	record, err := s.usageRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	todayCount := 0
	if record != nil {
		todayCount = record.PredictionCount
	}
	if todayCount >= limit {
		return nil, &QuotaExceededError{DailyLimit: limit, TodayCount: todayCount}
	}

	raw, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, classifyAnalyzeError(err)
	}

	result, err := llm.ParseViralityResponse(raw)
	if err != nil {
		log.ErrorContext(ctx, "模型输出解析失败", "err", err, "raw", raw)
		if errors.Is(err, llm.ErrMalformedResponse) {
			return nil, errors.Wrap(ErrParse, err.Error())
		}
		return nil, errors.Wrap(ErrValidation, err.Error())
	}

	buzzwords, err := json.Marshal(result.Factors.Buzzwords.Words)
	if err != nil {
		return nil, err
	}
	suggestions, err := json.Marshal(result.Suggestions)
	if err != nil {
		return nil, err
	}

	prediction := &model.Prediction{
		ID:               uuid.NewString(),
		UserID:           userID,
		PostText:         text,
		ViralityScore:    result.ViralityScore,
		Confidence:       result.Confidence,
		Sentiment:        result.Factors.Sentiment.Label,
		SentimentScore:   result.Factors.Sentiment.Score,
		HashtagCount:     result.Factors.Hashtags.Count,
		HashtagTrending:  result.Factors.Hashtags.Trending,
		LengthCharacters: result.Factors.Length.Characters,
		LengthOptimal:    result.Factors.Length.Optimal,
		EmojiCount:       result.Factors.Emojis.Count,
		EmojiImpact:      result.Factors.Emojis.Impact,
		BuzzwordCount:    result.Factors.Buzzwords.Count,
		Buzzwords:        string(buzzwords),
		Suggestions:      string(suggestions),
	}
	usage := &model.UsageRecord{
		UserID:          userID,
		UsageDate:       today,
		PredictionCount: todayCount + 1,
	}

	if err = s.predictionRepo.CreateWithUsage(ctx, prediction, usage); err != nil {
		return nil, err
	}

	s.invalidateStatsCache(ctx, userID)

	if s.publisher != nil {
		s.publisher.PublishPredictionCreated(&kafka.PredictionCreatedEvent{
			PredictionID:  prediction.ID,
			UserID:        userID,
			ViralityScore: prediction.ViralityScore,
			TodayCount:    todayCount + 1,
			OccurredAt:    time.Now().UTC(),
		})
	}

	data := &dto.PredictionDataDTO{}
	if err = copier.Copy(data, result); err != nil {
		return nil, err
	}
	data.ID = prediction.ID

	remaining := limit - (todayCount + 1)
	if remaining < 0 {
		remaining = 0
	}

	return &dto.PredictResponseDTO{
		Success:              true,
		Data:                 data,
		RemainingPredictions: remaining,
	}, nil
}

// classifyAnalyzeError 把大模型层的哨兵错误折算成对外错误
func classifyAnalyzeError(err error) error {
	switch {
	case errors.Is(err, llm.ErrProviderTimeout):
		return errors.Wrap(ErrTimeout, err.Error())
	case errors.Is(err, llm.ErrProviderNetwork):
		return errors.Wrap(ErrNetwork, err.Error())
	default:
		return errors.Wrap(ErrAIFailed, err.Error())
	}
}

func (s *predictionServiceImpl) GetUsage(ctx context.Context, userID uint64) (*dto.UsageDTO, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	limit := config.Cfg.Quota.FreeDailyLimit

	record, err := s.usageRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	todayCount := 0
	if record != nil {
		todayCount = record.PredictionCount
	}

	remaining := limit - todayCount
	if remaining < 0 {
		remaining = 0
	}

	return &dto.UsageDTO{
		Tier:           consts.TierFree,
		TodayCount:     todayCount,
		DailyLimit:     limit,
		RemainingToday: remaining,
	}, nil
}

func (s *predictionServiceImpl) GetHistory(ctx context.Context, userID uint64, query *dto.HistoryQueryDTO) (*dto.PredictionHistoryDTO, error) {
	predictions, total, err := s.predictionRepo.GetPageByUser(ctx, userID, query.Page, query.PageSize)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PredictionRecordDTO, 0, len(predictions))
	for _, p := range predictions {
		items = append(items, toPredictionRecordDTO(p))
	}

	return &dto.PredictionHistoryDTO{
		Items:    items,
		Page:     query.Page,
		PageSize: query.PageSize,
		Total:    total,
	}, nil
}

func toPredictionRecordDTO(p *model.Prediction) *dto.PredictionRecordDTO {
	var words []any
	if err := json.Unmarshal([]byte(p.Buzzwords), &words); err != nil {
		words = []any{}
	}
	var suggestions []any
	if err := json.Unmarshal([]byte(p.Suggestions), &suggestions); err != nil {
		suggestions = []any{}
	}

	return &dto.PredictionRecordDTO{
		ID:            p.ID,
		PostText:      p.PostText,
		ViralityScore: p.ViralityScore,
		Confidence:    p.Confidence,
		Factors: dto.FactorsDTO{
			Sentiment: dto.SentimentFactorDTO{Label: p.Sentiment, Score: p.SentimentScore},
			Hashtags:  dto.HashtagFactorDTO{Count: p.HashtagCount, Trending: p.HashtagTrending},
			Length:    dto.LengthFactorDTO{Characters: p.LengthCharacters, Optimal: p.LengthOptimal},
			Emojis:    dto.EmojiFactorDTO{Count: p.EmojiCount, Impact: p.EmojiImpact},
			Buzzwords: dto.BuzzwordFactorDTO{Count: p.BuzzwordCount, Words: words},
		},
		Suggestions: suggestions,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetStats 用户历史统计，Redis 缓存 10 分钟，成功预测后主动失效
func (s *predictionServiceImpl) GetStats(ctx context.Context, userID uint64) (*dto.UsageStatsDTO, error) {
	cacheKey := consts.UserStatsKey + strconv.FormatUint(userID, 10)

	if rdb := redis.GetRdbClient(); rdb != nil {
		if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
			stats := &dto.UsageStatsDTO{}
			if err = json.Unmarshal([]byte(cached), stats); err == nil {
				return stats, nil
			}
		}
	}

	aggregates, err := s.predictionRepo.GetUserAggregates(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	record, err := s.usageRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	predictionsToday := 0
	if record != nil {
		predictionsToday = record.PredictionCount
	}

	recent, err := s.predictionRepo.GetRecentByUser(ctx, userID, consts.StatsRecentSampleSize)
	if err != nil {
		return nil, err
	}

	stats := &dto.UsageStatsDTO{
		TotalPredictions:     aggregates.TotalPredictions,
		AverageViralityScore: aggregates.AverageViralityScore,
		LastPredictionAt:     aggregates.LastPredictionAt,
		PredictionsToday:     predictionsToday,
		TopSuggestions:       topSuggestions(recent),
	}

	if rdb := redis.GetRdbClient(); rdb != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err = redis.SetWithExpiration(ctx, cacheKey, payload, statsCacheTTL); err != nil {
				log.WarnContext(ctx, "统计缓存写入失败", "err", err)
			}
		}
	}

	return stats, nil
}

// topSuggestions 统计最近预测里出现次数最多的建议，非字符串元素忽略
func topSuggestions(predictions []*model.Prediction) []*dto.SuggestionCountDTO {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range predictions {
		var suggestions []any
		if err := json.Unmarshal([]byte(p.Suggestions), &suggestions); err != nil {
			continue
		}
		for _, item := range suggestions {
			text, ok := item.(string)
			if !ok {
				continue
			}
			if _, seen := counts[text]; !seen {
				order = append(order, text)
			}
			counts[text]++
		}
	}

	result := make([]*dto.SuggestionCountDTO, 0, len(order))
	for _, text := range order {
		result = append(result, &dto.SuggestionCountDTO{Suggestion: text, Count: counts[text]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if len(result) > consts.StatsTopSuggestionsLimit {
		result = result[:consts.StatsTopSuggestionsLimit]
	}
	return result
}

func (s *predictionServiceImpl) invalidateStatsCache(ctx context.Context, userID uint64) {
	if rdb := redis.GetRdbClient(); rdb == nil {
		return
	}
	key := consts.UserStatsKey + strconv.FormatUint(userID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "统计缓存失效失败", "key", key, "err", err)
	}
}
