package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Market    MarketConfig    `mapstructure:"market"`
	MIS       MISConfig       `mapstructure:"mis"`
	Poller    PollerConfig    `mapstructure:"poller"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	Retention RetentionConfig `mapstructure:"retention"`
	Admin     AdminConfig     `mapstructure:"admin"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

// MarketConfig pins the trading-day calendar. Bucket labels and the
// "today" window boundary both follow this zone.
type MarketConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type MISConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type PollerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Symbols  string        `mapstructure:"symbols"`
	Interval time.Duration `mapstructure:"interval"`
}

type WebhookConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RetentionConfig struct {
	Days  int    `mapstructure:"days"`
	Sweep string `mapstructure:"sweep"`
}

type AdminConfig struct {
	Token string `mapstructure:"token"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("market.timezone", "Asia/Taipei")
	v.SetDefault("mis.base_url", "https://mis.twse.com.tw")
	v.SetDefault("mis.timeout", "4s")
	v.SetDefault("mis.user_agent", "Mozilla/5.0")
	v.SetDefault("poller.enabled", true)
	v.SetDefault("poller.symbols", "tse_2330.tw,otc_6488.tw")
	v.SetDefault("poller.interval", "5s")
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.timeout", "5s")
	v.SetDefault("retention.days", 60)
	v.SetDefault("retention.sweep", "@every 24h")
	v.SetDefault("admin.token", "")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
