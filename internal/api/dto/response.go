package dto

// ErrorDTO 失败响应：人类可读的 error + 机器可读的 code，
// 可重试的错误带 retryable 标记
type ErrorDTO struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable,omitempty"`
}

// QuotaExceededDTO 429 专用：除错误信息外还要带配额上下文
type QuotaExceededDTO struct {
	Error                string `json:"error"`
	Code                 string `json:"code"`
	DailyLimit           int    `json:"dailyLimit"`
	TodayCount           int    `json:"todayCount"`
	RemainingPredictions int    `json:"remainingPredictions"`
	Message              string `json:"message"`
}
