package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SchedulerConfig carries the policy knobs for the duty scheduling engine.
type SchedulerConfig struct {
	// BalanceWindowMonths is the trailing window used for fairness scoring.
	BalanceWindowMonths int
	// MaxConsecutiveDays caps calendar days in a row with at least one duty. 0 disables.
	MaxConsecutiveDays int
	// StackableDutyTypes lists duty type codes that may share a date for one staff member.
	StackableDutyTypes []string
	// MatrixWorkers bounds the parallel fan-out when building the placement matrix.
	MatrixWorkers int
	// RunLockTTL is how long the advisory scheduling-run lock lives in Redis.
	RunLockTTL time.Duration
	// MatrixCacheTTL is the response-cache TTL for the placement matrix endpoint.
	MatrixCacheTTL time.Duration
	// RateLimitPerSec throttles requests per client IP.
	RateLimitPerSec float64
	// AdminEmail/AdminPassword seed the first admin account on an empty users table.
	AdminEmail    string
	AdminPassword string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	runLockTTL, err := time.ParseDuration(viper.GetString("SCHEDULER_RUN_LOCK_TTL"))
	if err != nil {
		runLockTTL = 5 * time.Minute
	}

	matrixCacheTTL, err := time.ParseDuration(viper.GetString("SCHEDULER_MATRIX_CACHE_TTL"))
	if err != nil {
		matrixCacheTTL = 30 * time.Second
	}

	balanceWindow := viper.GetInt("SCHEDULER_BALANCE_WINDOW_MONTHS")
	if balanceWindow <= 0 {
		balanceWindow = 3
	}

	maxConsecutive := viper.GetInt("SCHEDULER_MAX_CONSECUTIVE_DAYS")
	if !viper.IsSet("SCHEDULER_MAX_CONSECUTIVE_DAYS") {
		maxConsecutive = 5
	}

	matrixWorkers := viper.GetInt("SCHEDULER_MATRIX_WORKERS")
	if matrixWorkers <= 0 {
		matrixWorkers = 8
	}

	rateLimit := viper.GetFloat64("RATE_LIMIT_PER_SEC")
	if rateLimit <= 0 {
		rateLimit = 20
	}

	var stackable []string
	if raw := viper.GetString("SCHEDULER_STACKABLE_DUTY_TYPES"); raw != "" {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				stackable = append(stackable, code)
			}
		}
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Scheduler: SchedulerConfig{
			BalanceWindowMonths: balanceWindow,
			MaxConsecutiveDays:  maxConsecutive,
			StackableDutyTypes:  stackable,
			MatrixWorkers:       matrixWorkers,
			RunLockTTL:          runLockTTL,
			MatrixCacheTTL:      matrixCacheTTL,
			RateLimitPerSec:     rateLimit,
			AdminEmail:          viper.GetString("ADMIN_EMAIL"),
			AdminPassword:       viper.GetString("ADMIN_PASSWORD"),
		},
	}

	return config, nil
}
