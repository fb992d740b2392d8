package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Market MarketConfig
	Watch  WatchConfig
	Notify NotifyConfig
}

// MarketConfig defines the marketplace API settings.
type MarketConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// WatchConfig defines the search and polling settings.
type WatchConfig struct {
	Item            string `mapstructure:"item"`
	IntervalMinutes int    `mapstructure:"interval_minutes"`
	Notifications   bool   `mapstructure:"notifications"`
}

// NotifyConfig defines the desktop notification settings.
type NotifyConfig struct {
	AppName string `mapstructure:"app_name"`
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error; defaults cover every key.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("market.base_url", "https://api.warframe.market/v1/items")
	v.SetDefault("market.timeout_seconds", 15)
	v.SetDefault("watch.item", "")
	v.SetDefault("watch.interval_minutes", 5)
	v.SetDefault("watch.notifications", false)
	v.SetDefault("notify.app_name", "platwatch")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	if config.Watch.IntervalMinutes < 1 || config.Watch.IntervalMinutes > 5 {
		err = fmt.Errorf("watch.interval_minutes must be between 1 and 5, got %d", config.Watch.IntervalMinutes)
	}
	return
}
