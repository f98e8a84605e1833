package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	API        API
	Auth       Auth
	Push       Push
	Feed       Feed
	Prometheus Prometheus
	Redis      Redis
}

type API struct {
	BaseURL string
	Timeout time.Duration
}

type Auth struct {
	ProviderURL     string
	CredentialsFile string
}

type Push struct {
	URL                   string
	MaxReconnectAttempts  int
	ReconnectInitialDelay time.Duration
	ReconnectMaxDelay     time.Duration
}

type Feed struct {
	PageSize          int
	RetryInitialDelay time.Duration
	RetryMaxDelay     time.Duration
	RetryMultiplier   float64
}

type Prometheus struct {
	Enabled bool
	Address string
	Port    int
}

type Redis struct {
	Enabled  bool
	Address  string
	Port     int
	Password string
	DB       int
	PoolSize int
}

func MustLoad() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.config/feedwatch")

	viper.SetDefault("env", "dev")

	viper.SetDefault("api.base_url", "http://localhost:8000/api")
	viper.SetDefault("api.timeout", "10s")

	viper.SetDefault("auth.provider_url", "http://localhost:8000/auth")
	viper.SetDefault("auth.credentials_file", "$HOME/.config/feedwatch/credentials.json")

	viper.SetDefault("push.url", "ws://localhost:8000/events")
	viper.SetDefault("push.max_reconnect_attempts", 5)
	viper.SetDefault("push.reconnect_initial_delay", "500ms")
	viper.SetDefault("push.reconnect_max_delay", "30s")

	viper.SetDefault("feed.page_size", 10)
	viper.SetDefault("feed.retry_initial_delay", "1s")
	viper.SetDefault("feed.retry_max_delay", "30s")
	viper.SetDefault("feed.retry_multiplier", 2.0)

	viper.SetDefault("prometheus.enabled", false)
	viper.SetDefault("prometheus.address", "127.0.0.1")
	viper.SetDefault("prometheus.port", 9104)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.address", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine, defaults cover a local setup.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Error reading config file: %s", err)
			os.Exit(1)
		}
	}

	config := &Config{
		Env: viper.GetString("env"),
		API: API{
			BaseURL: viper.GetString("api.base_url"),
			Timeout: viper.GetDuration("api.timeout"),
		},
		Auth: Auth{
			ProviderURL:     viper.GetString("auth.provider_url"),
			CredentialsFile: os.ExpandEnv(viper.GetString("auth.credentials_file")),
		},
		Push: Push{
			URL:                   viper.GetString("push.url"),
			MaxReconnectAttempts:  viper.GetInt("push.max_reconnect_attempts"),
			ReconnectInitialDelay: viper.GetDuration("push.reconnect_initial_delay"),
			ReconnectMaxDelay:     viper.GetDuration("push.reconnect_max_delay"),
		},
		Feed: Feed{
			PageSize:          viper.GetInt("feed.page_size"),
			RetryInitialDelay: viper.GetDuration("feed.retry_initial_delay"),
			RetryMaxDelay:     viper.GetDuration("feed.retry_max_delay"),
			RetryMultiplier:   viper.GetFloat64("feed.retry_multiplier"),
		},
		Prometheus: Prometheus{
			Enabled: viper.GetBool("prometheus.enabled"),
			Address: viper.GetString("prometheus.address"),
			Port:    viper.GetInt("prometheus.port"),
		},
		Redis: Redis{
			Enabled:  viper.GetBool("redis.enabled"),
			Address:  viper.GetString("redis.address"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			PoolSize: viper.GetInt("redis.pool_size"),
		},
	}

	return config
}
