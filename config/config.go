package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger         `mapstructure:"logger"`
	DB        Database       `mapstructure:"database"`
	API       API            `mapstructure:"api"`
	Scheduler Scheduler      `mapstructure:"scheduler"`
	Binance   Exchange       `mapstructure:"binance"`
	Kucoin    Exchange       `mapstructure:"kucoin"`
	Gemini    Gemini         `mapstructure:"gemini"`
	Telegram  TelegramConfig `mapstructure:"telegram"`
	Cache     Cache          `mapstructure:"cache"`
	Sessions  []Session      `mapstructure:"sessions"`
	Trade     Trade          `mapstructure:"trade"`
	Watchlist []string       `mapstructure:"watchlist"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Scheduler struct {
	MaxConcurrency  int           `mapstructure:"max_concurrency"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
	EvaluateSpec    string        `mapstructure:"evaluate_spec"`
}

type Exchange struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type Gemini struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	BaseModel           string        `mapstructure:"base_model"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
}

type TelegramConfig struct {
	BotToken                  string `mapstructure:"bot_token"`
	ChatID                    int64  `mapstructure:"chat_id"`
	Enabled                   bool   `mapstructure:"enabled"`
	MaxGlobalRequestPerSecond int    `mapstructure:"max_global_request_per_second"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// Session describes one tradable session window. The calibration window is
// always the first 30 minutes after the local open.
type Session struct {
	ID         string `mapstructure:"id"`
	Name       string `mapstructure:"name"`
	TZ         string `mapstructure:"tz"`
	OpenHour   int    `mapstructure:"open_hour"`
	OpenMinute int    `mapstructure:"open_minute"`
	CloseHour  int    `mapstructure:"close_hour"`
}

type Trade struct {
	ConfirmationMode string `mapstructure:"confirmation_mode"`
	AcceptanceCloses int    `mapstructure:"acceptance_closes"`
	IgnoreAlignment  bool   `mapstructure:"ignore_alignment"`
	IgnoreStoch      bool   `mapstructure:"ignore_stoch"`
	StopRiskBps      int    `mapstructure:"stop_risk_bps"`
}

func Load() (*Config, error) {
	// .env is optional, used for local development only.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, env vars can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Trade.AcceptanceCloses <= 0 {
		c.Trade.AcceptanceCloses = 2
	}
	if c.Trade.StopRiskBps <= 0 {
		c.Trade.StopRiskBps = 120
	}
	if c.Trade.ConfirmationMode == "" {
		c.Trade.ConfirmationMode = "1-Candle Close (Standard)"
	}
	if c.Scheduler.MaxConcurrency <= 0 {
		c.Scheduler.MaxConcurrency = 4
	}
	if len(c.Sessions) == 0 {
		c.Sessions = DefaultSessions()
	}
}

// DefaultSessions is the session catalog the level engine was designed
// around. Config can override or extend it.
func DefaultSessions() []Session {
	return []Session{
		{ID: "us_ny_futures", Name: "NY Futures", TZ: "America/New_York", OpenHour: 8, OpenMinute: 30, CloseHour: 16},
		{ID: "us_ny_equity", Name: "NY Equity", TZ: "America/New_York", OpenHour: 9, OpenMinute: 30, CloseHour: 16},
		{ID: "eu_london", Name: "London", TZ: "Europe/London", OpenHour: 8, OpenMinute: 0, CloseHour: 16},
		{ID: "asia_tokyo", Name: "Tokyo", TZ: "Asia/Tokyo", OpenHour: 9, OpenMinute: 0, CloseHour: 15},
		{ID: "au_sydney", Name: "Sydney", TZ: "Australia/Sydney", OpenHour: 10, OpenMinute: 0, CloseHour: 16},
	}
}
