package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"servo_control/internal/logger"

	"github.com/spf13/viper"
)

// Defaults for a freshly flashed board on the bench network.
const (
	DefaultPort         = "8080"
	DefaultBaseURL      = "http://192.168.0.183"
	DefaultPollInterval = 2000 * time.Millisecond
	DefaultRefreshDelay = 250 * time.Millisecond

	envPrefix = "SERVO"
)

// Config is everything the process needs at start-up.
type Config struct {
	Port     string
	LogLevel string
	Device   DeviceConfig
	Sync     SyncConfig
}

type DeviceConfig struct {
	BaseURL string
	Timeout time.Duration // 0 = no client timeout
}

type SyncConfig struct {
	PollInterval time.Duration
	RefreshDelay time.Duration
}

var (
	errBaseURL      = errors.New("device.base_url must be an absolute http(s) URL")
	errPollInterval = errors.New("sync.poll_interval must be > 0")
	errRefreshDelay = errors.New("sync.refresh_delay must be > 0")
)

// Load reads configs/config.yml (or path when set) and SERVO_* env vars.
// A missing default config file is fine; defaults apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log.level"),
		Device: DeviceConfig{
			BaseURL: strings.TrimRight(v.GetString("device.base_url"), "/"),
			Timeout: v.GetDuration("device.timeout"),
		},
		Sync: SyncConfig{
			PollInterval: v.GetDuration("sync.poll_interval"),
			RefreshDelay: v.GetDuration("sync.refresh_delay"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", DefaultPort)
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("device.base_url", DefaultBaseURL)
	v.SetDefault("device.timeout", "0s")
	v.SetDefault("sync.poll_interval", DefaultPollInterval.String())
	v.SetDefault("sync.refresh_delay", DefaultRefreshDelay.String())
}

// Validate checks the values the sync loop and gateway cannot work without.
func (c Config) Validate() error {
	u, err := url.Parse(c.Device.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errBaseURL
	}
	if c.Sync.PollInterval <= 0 {
		return errPollInterval
	}
	if c.Sync.RefreshDelay <= 0 {
		return errRefreshDelay
	}
	return nil
}
