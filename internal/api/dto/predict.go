package dto

// PredictRequestDTO 预测请求体。
// PostText 故意声明为 any：字段缺失或非字符串要报 MISSING_TEXT，
// 而不是在 JSON 绑定阶段报 INVALID_REQUEST
type PredictRequestDTO struct {
	PostText any `json:"postText"`
}

// SentimentFactorDTO 情感分析
type SentimentFactorDTO struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HashtagFactorDTO 话题标签分析
type HashtagFactorDTO struct {
	Count    int  `json:"count"`
	Trending bool `json:"trending"`
}

// LengthFactorDTO 文本长度分析
type LengthFactorDTO struct {
	Characters int  `json:"characters"`
	Optimal    bool `json:"optimal"`
}

// EmojiFactorDTO 表情符号分析
type EmojiFactorDTO struct {
	Count  int    `json:"count"`
	Impact string `json:"impact"`
}

// BuzzwordFactorDTO 热词分析
type BuzzwordFactorDTO struct {
	Count int   `json:"count"`
	Words []any `json:"words"`
}

// FactorsDTO 五组评分因子
type FactorsDTO struct {
	Sentiment SentimentFactorDTO `json:"sentiment"`
	Hashtags  HashtagFactorDTO   `json:"hashtags"`
	Length    LengthFactorDTO    `json:"length"`
	Emojis    EmojiFactorDTO     `json:"emojis"`
	Buzzwords BuzzwordFactorDTO  `json:"buzzwords"`
}

// PredictionDataDTO 单次预测结果
type PredictionDataDTO struct {
	ID            string     `json:"id"`
	ViralityScore float64    `json:"viralityScore"`
	Confidence    float64    `json:"confidence"`
	Factors       FactorsDTO `json:"factors"`
	Suggestions   []any      `json:"suggestions"`
}

// PredictResponseDTO 预测成功响应
type PredictResponseDTO struct {
	Success              bool               `json:"success"`
	Data                 *PredictionDataDTO `json:"data"`
	RemainingPredictions int                `json:"remainingPredictions"`
}

// PredictionRecordDTO 历史记录中的一条预测
type PredictionRecordDTO struct {
	ID            string     `json:"id"`
	PostText      string     `json:"postText"`
	ViralityScore float64    `json:"viralityScore"`
	Confidence    float64    `json:"confidence"`
	Factors       FactorsDTO `json:"factors"`
	Suggestions   []any      `json:"suggestions"`
	CreatedAt     string     `json:"createdAt"`
}

// PredictionHistoryDTO 历史记录分页
type PredictionHistoryDTO struct {
	Items    []*PredictionRecordDTO `json:"items"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"pageSize"`
	Total    int64                  `json:"total"`
}

// HistoryQueryDTO 历史记录查询参数
type HistoryQueryDTO struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"page_size,default=10" binding:"min=1,max=50"`
}
