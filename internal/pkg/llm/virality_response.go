package llm

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type SentimentFactor struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type HashtagFactor struct {
	Count    int  `json:"count"`
	Trending bool `json:"trending"`
}

type LengthFactor struct {
	Characters int  `json:"characters"`
	Optimal    bool `json:"optimal"`
}

type EmojiFactor struct {
	Count  int    `json:"count"`
	Impact string `json:"impact"`
}

type BuzzwordFactor struct {
	Count int   `json:"count"`
	Words []any `json:"words"`
}

type PredictionFactors struct {
	Sentiment SentimentFactor `json:"sentiment"`
	Hashtags  HashtagFactor   `json:"hashtags"`
	Length    LengthFactor    `json:"length"`
	Emojis    EmojiFactor     `json:"emojis"`
	Buzzwords BuzzwordFactor  `json:"buzzwords"`
}

// ViralityPrediction 模型输出通过结构校验后的形态。
// Words 和 Suggestions 保留原始 JSON 值，元素内容不做约束
type ViralityPrediction struct {
	ViralityScore float64           `json:"viralityScore"`
	Confidence    float64           `json:"confidence"`
	Factors       PredictionFactors `json:"factors"`
	Suggestions   []any             `json:"suggestions"`
}

// ParseViralityResponse 严格按 JSON 解析模型原始输出。
// 不剥离 markdown 代码块，不做局部提取：模型被明确要求只输出 JSON
func ParseViralityResponse(raw string) (*ViralityPrediction, error) {
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, errors.Wrap(ErrMalformedResponse, err.Error())
	}
	return ValidateViralityPayload(payload)
}

// ValidateViralityPayload 纯函数：只校验必需字段的存在与 JSON 类型。
// 取值范围（0-100）、枚举标签、建议条数（3-5）都不在这里检查
func ValidateViralityPayload(payload any) (*ViralityPrediction, error) {
	root, ok := payload.(map[string]any)
	if !ok {
		return nil, errors.Wrap(ErrIncompleteResponse, "payload is not an object")
	}

	score, err := requireNumber(root, "viralityScore")
	if err != nil {
		return nil, err
	}
	confidence, err := requireNumber(root, "confidence")
	if err != nil {
		return nil, err
	}

	factors, err := requireObject(root, "factors", "factors")
	if err != nil {
		return nil, err
	}

	sentiment, err := requireObject(factors, "factors.sentiment", "sentiment")
	if err != nil {
		return nil, err
	}
	sentimentLabel, err := requireString(sentiment, "sentiment.label", "label")
	if err != nil {
		return nil, err
	}
	sentimentScore, err := requireNumberAt(sentiment, "sentiment.score", "score")
	if err != nil {
		return nil, err
	}

	hashtags, err := requireObject(factors, "factors.hashtags", "hashtags")
	if err != nil {
		return nil, err
	}
	hashtagCount, err := requireNumberAt(hashtags, "hashtags.count", "count")
	if err != nil {
		return nil, err
	}
	hashtagTrending, err := requireBool(hashtags, "hashtags.trending", "trending")
	if err != nil {
		return nil, err
	}

	length, err := requireObject(factors, "factors.length", "length")
	if err != nil {
		return nil, err
	}
	lengthCharacters, err := requireNumberAt(length, "length.characters", "characters")
	if err != nil {
		return nil, err
	}
	lengthOptimal, err := requireBool(length, "length.optimal", "optimal")
	if err != nil {
		return nil, err
	}

	emojis, err := requireObject(factors, "factors.emojis", "emojis")
	if err != nil {
		return nil, err
	}
	emojiCount, err := requireNumberAt(emojis, "emojis.count", "count")
	if err != nil {
		return nil, err
	}
	emojiImpact, err := requireString(emojis, "emojis.impact", "impact")
	if err != nil {
		return nil, err
	}

	buzzwords, err := requireObject(factors, "factors.buzzwords", "buzzwords")
	if err != nil {
		return nil, err
	}
	buzzwordCount, err := requireNumberAt(buzzwords, "buzzwords.count", "count")
	if err != nil {
		return nil, err
	}
	buzzwordWords, err := requireList(buzzwords, "buzzwords.words", "words")
	if err != nil {
		return nil, err
	}

	suggestions, err := requireList(root, "suggestions", "suggestions")
	if err != nil {
		return nil, err
	}

	return &ViralityPrediction{
		ViralityScore: score,
		Confidence:    confidence,
		Factors: PredictionFactors{
			Sentiment: SentimentFactor{Label: sentimentLabel, Score: sentimentScore},
			Hashtags:  HashtagFactor{Count: int(hashtagCount), Trending: hashtagTrending},
			Length:    LengthFactor{Characters: int(lengthCharacters), Optimal: lengthOptimal},
			Emojis:    EmojiFactor{Count: int(emojiCount), Impact: emojiImpact},
			Buzzwords: BuzzwordFactor{Count: int(buzzwordCount), Words: buzzwordWords},
		},
		Suggestions: suggestions,
	}, nil
}

func requireNumber(obj map[string]any, key string) (float64, error) {
	return requireNumberAt(obj, key, key)
}

func requireNumberAt(obj map[string]any, path string, key string) (float64, error) {
	v, ok := obj[key].(float64)
	if !ok {
		return 0, errors.Wrapf(ErrIncompleteResponse, "field %s must be a number", path)
	}
	return v, nil
}

func requireObject(obj map[string]any, path string, key string) (map[string]any, error) {
	v, ok := obj[key].(map[string]any)
	if !ok {
		return nil, errors.Wrapf(ErrIncompleteResponse, "field %s must be an object", path)
	}
	return v, nil
}

func requireString(obj map[string]any, path string, key string) (string, error) {
	v, ok := obj[key].(string)
	if !ok {
		return "", errors.Wrapf(ErrIncompleteResponse, "field %s must be a string", path)
	}
	return v, nil
}

func requireBool(obj map[string]any, path string, key string) (bool, error) {
	v, ok := obj[key].(bool)
	if !ok {
		return false, errors.Wrapf(ErrIncompleteResponse, "field %s must be a boolean", path)
	}
	return v, nil
}

func requireList(obj map[string]any, path string, key string) ([]any, error) {
	v, ok := obj[key].([]any)
	if !ok {
		return nil, errors.Wrapf(ErrIncompleteResponse, "field %s must be a list", path)
	}
	return v, nil
}
