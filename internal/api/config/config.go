package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetEnvPrefix("touchline")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

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

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.session_name", "touchline_session")
	viper.SetDefault("server.jwt_expire_hours", 24*14)

	viper.SetDefault("limiter.max_attempts", 4)
	viper.SetDefault("limiter.window_seconds", 60)

	viper.SetDefault("forum.per_page", 25)
	viper.SetDefault("forum.comments_per_page", 25)
	viper.SetDefault("forum.hot_feed_size", 10)
	viper.SetDefault("forum.index_sync_spec", "0 */1 * * * *")
	viper.SetDefault("forum.hot_sweep_spec", "0 */10 * * * *")

	viper.SetDefault("elastic.indices.topic_index", "touchline_topics")
	viper.SetDefault("kafka_push_consumer.topic", "touchline-app-push")
	viper.SetDefault("kafka_push_consumer.group_id", "touchline-app-push-group")
	viper.SetDefault("push.timeout", 10)
}
