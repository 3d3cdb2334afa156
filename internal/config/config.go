package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/varoOP/shotsort/internal/domain"
	"github.com/varoOP/shotsort/internal/extract"
)

// SetDefaults registers the default value of every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("pattern", domain.DefaultPattern)
	v.SetDefault("offline", false)
	v.SetDefault("quiet", false)
	v.SetDefault("json_only", false)
	v.SetDefault("dir", ".")
	v.SetDefault("cache_file", domain.DefaultCacheFile)
	v.SetDefault("journal", "")
	v.SetDefault("steam_api_url", domain.DefaultSteamURL)
	v.SetDefault("steam_store_url", domain.DefaultSteamURL)
	v.SetDefault("store_fallback", false)
	v.SetDefault("language", "")
	v.SetDefault("request_timeout", 15*time.Second)
	v.SetDefault("discord_webhook_url", "")
	v.SetDefault("log_level", "info")
}

// Load loads configuration from multiple sources:
// 1. Command line flags bound in cmd/shotsort
// 2. Environment variables (SHOTSORT_*)
// 3. Config file (config.yaml, optional)
func Load() (*domain.Config, error) {
	return FromViper(viper.GetViper())
}

// FromViper builds a Config from v and validates it.
func FromViper(v *viper.Viper) (*domain.Config, error) {
	SetDefaults(v)

	cfg := &domain.Config{
		Pattern:           v.GetString("pattern"),
		Connect:           !v.GetBool("offline"),
		Quiet:             v.GetBool("quiet"),
		JSONOnly:          v.GetBool("json_only"),
		Dir:               v.GetString("dir"),
		CacheFile:         v.GetString("cache_file"),
		JournalPath:       v.GetString("journal"),
		SteamAPIURL:       strings.TrimRight(v.GetString("steam_api_url"), "/"),
		SteamStoreURL:     strings.TrimRight(v.GetString("steam_store_url"), "/"),
		StoreFallback:     v.GetBool("store_fallback"),
		Language:          v.GetString("language"),
		RequestTimeout:    v.GetDuration("request_timeout"),
		DiscordWebhookURL: v.GetString("discord_webhook_url"),
		LogLevel:          strings.ToLower(v.GetString("log_level")),
		ProgramName:       filepath.Base(os.Args[0]),
	}

	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.CacheFile == "" {
		return nil, errors.New("cache_file must not be empty")
	}
	if _, err := extract.Compile(cfg.Pattern); err != nil {
		return nil, errors.Wrap(err, "invalid pattern")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, errors.Errorf("invalid request_timeout: %s (must be positive)", cfg.RequestTimeout)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, errors.Errorf("invalid log_level: %s (must be 'trace', 'debug', 'info', 'warn' or 'error')", cfg.LogLevel)
	}

	return cfg, nil
}

// CachePath returns the cache file location. A bare file name lives in the scan directory.
func CachePath(cfg *domain.Config) string {
	if filepath.IsAbs(cfg.CacheFile) || strings.ContainsRune(cfg.CacheFile, filepath.Separator) {
		return cfg.CacheFile
	}
	return filepath.Join(cfg.Dir, cfg.CacheFile)
}
