package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Portal PortalConfig
	Auth   AuthConfig
}

type PortalConfig struct {
	BaseURL   string
	Language  string
	UserAgent string
	Timeout   time.Duration
}

// AuthConfig carries portal credentials taken from the environment. Either
// may be empty, in which case the CLI prompts for it.
type AuthConfig struct {
	Username string
	Password string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("MEDICOVER_BASE_URL", "https://mol.medicover.pl")
	viper.SetDefault("MEDICOVER_LANGUAGE", "pl-PL")
	viper.SetDefault("MEDICOVER_USER_AGENT",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) "+
			"Ubuntu Chromium/69.0.3497.81 Chrome/69.0.3497.81 Safari/537.36")
	viper.SetDefault("MEDICOVER_TIMEOUT", "30s")

	// A missing .env is fine, the CLI can run purely on flags and env vars.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	timeout, err := time.ParseDuration(viper.GetString("MEDICOVER_TIMEOUT"))
	if err != nil {
		timeout = 30 * time.Second
	}

	config := &Config{
		Portal: PortalConfig{
			BaseURL:   viper.GetString("MEDICOVER_BASE_URL"),
			Language:  viper.GetString("MEDICOVER_LANGUAGE"),
			UserAgent: viper.GetString("MEDICOVER_USER_AGENT"),
			Timeout:   timeout,
		},
		Auth: AuthConfig{
			Username: viper.GetString("MEDICOVER_USERNAME"),
			Password: viper.GetString("MEDICOVER_PASSWORD"),
		},
	}

	return config, nil
}
