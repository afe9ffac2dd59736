package consts

const (
	// TierFree 当前唯一的用户档位
	TierFree = "free"

	// MaxPostTextLength 服务端硬上限，前端编辑器另有 280 字的软提示
	MaxPostTextLength = 500
)

const (
	// StatsRecentSampleSize 统计 topSuggestions 时取样的最近预测条数
	StatsRecentSampleSize = 100
	// StatsTopSuggestionsLimit 返回的高频建议条数上限
	StatsTopSuggestionsLimit = 5
)
