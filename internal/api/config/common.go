package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"database"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	Fanout FanoutConfig `mapstructure:"fanout"`
	Cache  CacheConfig  `mapstructure:"cache"`
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

// MongoConfig 宽列存储后端配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
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

// FanoutConfig newsfeed 扇出配置
type FanoutConfig struct {
	MainTopic    string `mapstructure:"main_topic"`
	BatchTopic   string `mapstructure:"batch_topic"`
	MainGroupID  string `mapstructure:"main_group_id"`
	BatchGroupID string `mapstructure:"batch_group_id"`
	BatchSize    int    `mapstructure:"batch_size"`
}

// CacheConfig 列表/计数缓存配置
type CacheConfig struct {
	ListLimit  int `mapstructure:"list_limit"`
	TTLMinutes int `mapstructure:"ttl_minutes"`
}
