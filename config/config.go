package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Lock     LockConfig
	Queue    QueueConfig
	Ticket   TicketConfig
	Auth     AuthConfig
	RSVP     RSVPConfig
	Notify   NotifyConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string
	Mode string // gin mode: debug / release / test
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LockConfig 每個活動的入場序列化鎖
type LockConfig struct {
	Backend     string // local / redis
	TTL         time.Duration
	WaitTimeout time.Duration
}

// QueueConfig 通知 outbox 佇列
type QueueConfig struct {
	Backend      string // memory / redis
	BufferSize   int
	ClaimMinIdle time.Duration
	MaxRetry     int
}

type TicketConfig struct {
	// 空字串代表 QR payload 不簽章
	QRSigningSecret string
}

type AuthConfig struct {
	JWTSecret string
}

type RSVPConfig struct {
	MaxPlusOnes int
}

type NotifyConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

type LogConfig struct {
	Level string
}

const (
	LockBackendLocal   = "local"
	LockBackendRedis   = "redis"
	QueueBackendMemory = "memory"
	QueueBackendRedis  = "redis"
)

var AppConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "postgres")
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("db.max_conns", 25)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("lock.backend", LockBackendLocal)
	v.SetDefault("lock.ttl", 10*time.Second)
	v.SetDefault("lock.wait_timeout", 5*time.Second)

	v.SetDefault("queue.backend", QueueBackendMemory)
	v.SetDefault("queue.buffer_size", 1024)
	v.SetDefault("queue.claim_min_idle", 5*time.Second)
	v.SetDefault("queue.max_retry", 5)

	v.SetDefault("ticket.qr_signing_secret", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("rsvp.max_plus_ones", 10)

	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.timeout", 3*time.Second)

	v.SetDefault("log.level", "info")
}

// newViper 環境變數以底線取代點，例如 db.host -> DB_HOST、lock.wait_timeout -> LOCK_WAIT_TIMEOUT
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadConfig 讀取環境變數；path 非空時先合併設定檔 (yaml/toml/json)，環境變數優先
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	AppConfig = fromViper(v)
	return AppConfig, nil
}

func LoadTestConfig() *Config {
	cfg := fromViper(newViper())

	cfg.Database = DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
		MaxConns: 25,
	}

	cfg.Redis = RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	cfg.Auth.JWTSecret = "test-secret"
	return cfg
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port: v.GetString("server.port"),
			Mode: v.GetString("server.mode"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.ssl_mode"),
			MaxConns: v.GetInt32("db.max_conns"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Lock: LockConfig{
			Backend:     v.GetString("lock.backend"),
			TTL:         v.GetDuration("lock.ttl"),
			WaitTimeout: v.GetDuration("lock.wait_timeout"),
		},
		Queue: QueueConfig{
			Backend:      v.GetString("queue.backend"),
			BufferSize:   v.GetInt("queue.buffer_size"),
			ClaimMinIdle: v.GetDuration("queue.claim_min_idle"),
			MaxRetry:     v.GetInt("queue.max_retry"),
		},
		Ticket: TicketConfig{
			QRSigningSecret: v.GetString("ticket.qr_signing_secret"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
		},
		RSVP: RSVPConfig{
			MaxPlusOnes: v.GetInt("rsvp.max_plus_ones"),
		},
		Notify: NotifyConfig{
			WebhookURL: v.GetString("notify.webhook_url"),
			Timeout:    v.GetDuration("notify.timeout"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}
}
