package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量可覆盖同名配置项
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 未配置时的兜底默认值
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("quota.free_daily_limit", 3)
	viper.SetDefault("llm.model", "openai/gpt-4o-mini")
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.timeout", 60)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}
