package llm

import (
	"Viralize/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
)

// AnalyzePost 调用大模型对帖子文本做病毒传播力分析，返回模型原始文本。
// 温度取配置值（默认 0.7）：评分需要一定随机性，又不能完全发散。
// 调用失败统一经 classifyProviderError 分类后返回。
func AnalyzePost(ctx context.Context, text string) (string, error) {
	cfg := config.Cfg.LLM

	timeout := time.Duration(cfg.Timeout) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := fetchModel(ctx, viralityPrompt, fmt.Sprintf("Tweet to analyze:\n%q", text), cfg.Temperature)
	if err != nil {
		log.ErrorContext(ctx, "病毒传播力分析-AI大模型请求失败", "err", err)
		return "", classifyProviderError(err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.Wrap(ErrProviderFailed, "empty completion choices")
	}

	return resp.Choices[0].Content, nil
}

func fetchModel(ctx context.Context, systemPrompt string, userPrompt string, temp float64) (*llms.ContentResponse, error) {
	if err := TextSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer TextSem.Release(1)

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	log.Info("正在请求AI大模型")
	return llmClient.GenerateContent(ctx, messages,
		llms.WithModel(config.Cfg.LLM.Model),
		llms.WithTemperature(temp),
	)
}
