package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Log      LogConfig
	CORS     CORSConfig
	RBAC     RBACConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Env          string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
}

type RedisConfig struct {
	Addr       string
	MaxRetries int
}

type KafkaConfig struct {
	Broker        string
	ConsumerGroup string
}

type JWTConfig struct {
	Secret    string
	AccessTTL time.Duration
}

type LogConfig struct {
	Level      string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type CORSConfig struct {
	AllowOrigins []string
}

type RBACConfig struct {
	PolicyPath string
}

// SeedConfig names the admin account created on first start. Seeding is
// skipped when either field is empty.
type SeedConfig struct {
	AdminUsername string
	AdminPassword string
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the key/value postgres connection string used by gorm.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("app.read_timeout", 5*time.Second)
	v.SetDefault("app.write_timeout", 10*time.Second)
	v.SetDefault("app.idle_timeout", 60*time.Second)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "hris_dashboard")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_retries", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.max_retries", 5)

	v.SetDefault("kafka.broker", "")
	v.SetDefault("kafka.consumer_group", "hris-dashboard-notifications")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access_ttl", 24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.filename", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("rbac.policy_path", "")
	v.SetDefault("seed.admin_username", "")
	v.SetDefault("seed.admin_password", "")
}

// Load reads .env (if present), an optional config.yaml, then environment
// variables. Env vars win: DB_HOST maps to db.host, APP_PORT or PORT to
// app.port.
func Load() (*Config, *viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("app.port", "APP_PORT", "PORT")
	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("kafka.broker", "KAFKA_BROKER")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("seed.admin_username", "ADMIN_USERNAME")
	_ = v.BindEnv("seed.admin_password", "ADMIN_PASSWORD")

	cfg := fromViper(v)
	if cfg.JWT.Secret == "" {
		return nil, nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, v, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:          v.GetString("app.env"),
			Port:         v.GetString("app.port"),
			ReadTimeout:  v.GetDuration("app.read_timeout"),
			WriteTimeout: v.GetDuration("app.write_timeout"),
			IdleTimeout:  v.GetDuration("app.idle_timeout"),
		},
		Database: DatabaseConfig{
			Host:       v.GetString("db.host"),
			Port:       v.GetString("db.port"),
			User:       v.GetString("db.user"),
			Password:   v.GetString("db.password"),
			Name:       v.GetString("db.name"),
			SSLMode:    v.GetString("db.sslmode"),
			MaxRetries: v.GetInt("db.max_retries"),
		},
		Redis: RedisConfig{
			Addr:       v.GetString("redis.addr"),
			MaxRetries: v.GetInt("redis.max_retries"),
		},
		Kafka: KafkaConfig{
			Broker:        v.GetString("kafka.broker"),
			ConsumerGroup: v.GetString("kafka.consumer_group"),
		},
		JWT: JWTConfig{
			Secret:    v.GetString("jwt.secret"),
			AccessTTL: v.GetDuration("jwt.access_ttl"),
		},
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			Filename:   v.GetString("log.filename"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
		},
		CORS: CORSConfig{
			AllowOrigins: v.GetStringSlice("cors.allow_origins"),
		},
		RBAC: RBACConfig{
			PolicyPath: v.GetString("rbac.policy_path"),
		},
		Seed: SeedConfig{
			AdminUsername: v.GetString("seed.admin_username"),
			AdminPassword: v.GetString("seed.admin_password"),
		},
	}
}

// WatchLogLevel re-applies log.level whenever config.yaml changes on disk.
func WatchLogLevel(v *viper.Viper, level zap.AtomicLevel) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) {
			return
		}
		newLevel := v.GetString("log.level")
		if err := level.UnmarshalText([]byte(newLevel)); err != nil {
			zap.L().Warn("ignoring invalid log level from config",
				zap.String("file", e.Name),
				zap.String("level", newLevel),
			)
			return
		}
		zap.L().Info("log level reloaded", zap.String("level", newLevel))
	})
	v.WatchConfig()
}
