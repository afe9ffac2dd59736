package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Quota    QuotaConfig    `mapstructure:"quota"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Logstash LogstashConfig `mapstructure:"logstash"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LLMConfig 大模型供应商配置，URL 为 OpenAI 兼容网关地址
type LLMConfig struct {
	URL         string  `mapstructure:"url"`
	Model       string  `mapstructure:"model"`
	ApiKey      string  `mapstructure:"api_key"`
	Temperature float64 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"`
}

// QuotaConfig 免费档每日预测次数配额
type QuotaConfig struct {
	FreeDailyLimit int `mapstructure:"free_daily_limit"`
}

type KafkaConfig struct {
	Enabled bool       `mapstructure:"enabled"`
	Brokers []string   `mapstructure:"brokers"`
	Topic   string     `mapstructure:"topic"`
	Sasl    SaslConfig `mapstructure:"sasl"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// LogstashConfig 远程日志上报配置，Address 为空则只写 stdout
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}
