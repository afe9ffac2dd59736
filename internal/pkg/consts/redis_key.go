package consts

const (
	TokenBlacklistKey = "auth:token:blacklist:"
	UserStatsKey      = "predict:stats:user:"
)
