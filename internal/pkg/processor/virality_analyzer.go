package processor

import (
	"Viralize/internal/pkg/llm"
	"context"
)

// ViralityAnalyzer 封装大模型调用，工作流只依赖这个接口
type ViralityAnalyzer interface {
	Analyze(ctx context.Context, text string) (string, error)
}

type viralityAnalyzerImpl struct{}

func NewViralityAnalyzer() ViralityAnalyzer {
	return &viralityAnalyzerImpl{}
}

func (s *viralityAnalyzerImpl) Analyze(ctx context.Context, text string) (string, error) {
	return llm.AnalyzePost(ctx, text)
}
