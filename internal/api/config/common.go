package config

// Config 配置主体
type Config struct {
	Server            ServerConfig      `mapstructure:"server"`
	DB                DBConfig          `mapstructure:"database"`
	Redis             RedisConfig       `mapstructure:"redis"`
	Mongo             MongoConfig       `mapstructure:"mongo"`
	MinIO             MinIOConfig       `mapstructure:"minio"`
	Elastic           ElasticConfig     `mapstructure:"elastic"`
	Kafka             KafkaConfig       `mapstructure:"kafka"`
	KafkaPushConsumer KafkaPushConsumer `mapstructure:"kafka_push_consumer"`
	Push              PushConfig        `mapstructure:"push"`
	Limiter           LimiterConfig     `mapstructure:"limiter"`
	Forum             ForumConfig       `mapstructure:"forum"`
	Logstash          LogstashConfig    `mapstructure:"logstash"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	SessionName    string   `mapstructure:"session_name"`
	SessionSecret  string   `mapstructure:"session_secret"`
	CookieDomain   string   `mapstructure:"cookie_domain"`
	SecureCookie   bool     `mapstructure:"secure_cookie"`
	AllowOrigins   []string `mapstructure:"allow_origins"`
	JWTSecret      string   `mapstructure:"jwt_secret"`
	JWTExpireHours int      `mapstructure:"jwt_expire_hours"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	TopicIndex string `mapstructure:"topic_index"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaPushConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// PushConfig 推送网关
type PushConfig struct {
	IOSURL     string `mapstructure:"ios_url"`
	AndroidURL string `mapstructure:"android_url"`
	ApiKey     string `mapstructure:"api_key"`
	Timeout    int    `mapstructure:"timeout"`
}

// LimiterConfig 登录限流
type LimiterConfig struct {
	MaxAttempts   int64 `mapstructure:"max_attempts"`
	WindowSeconds int   `mapstructure:"window_seconds"`
}

// ForumConfig 分页等业务参数
type ForumConfig struct {
	PerPage         int    `mapstructure:"per_page"`
	CommentsPerPage int    `mapstructure:"comments_per_page"`
	HotFeedSize     int    `mapstructure:"hot_feed_size"`
	IndexSyncSpec   string `mapstructure:"index_sync_spec"`
	HotSweepSpec    string `mapstructure:"hot_sweep_spec"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
	Level   string `mapstructure:"level"`
}
