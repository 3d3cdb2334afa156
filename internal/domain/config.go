package domain

import "time"

const (
	// DefaultPattern takes the numeric prefix before the first underscore,
	// e.g. 440 from 440_20231104123456_1.png.
	DefaultPattern = `(\d+)_.*`
	// DefaultCacheFile is the cache file name kept in the scan directory.
	DefaultCacheFile = "knownNames.json"
	// DefaultSteamURL is used for both the appdetails API and the store pages.
	DefaultSteamURL = "https://store.steampowered.com"
)

type Config struct {
	Pattern           string        `toml:"pattern" mapstructure:"pattern"`
	Connect           bool          `toml:"-" mapstructure:"-"`
	Quiet             bool          `toml:"quiet" mapstructure:"quiet"`
	JSONOnly          bool          `toml:"json_only" mapstructure:"json_only"`
	Dir               string        `toml:"dir" mapstructure:"dir"`
	CacheFile         string        `toml:"cache_file" mapstructure:"cache_file"`
	JournalPath       string        `toml:"journal" mapstructure:"journal"`
	SteamAPIURL       string        `toml:"steam_api_url" mapstructure:"steam_api_url"`
	SteamStoreURL     string        `toml:"steam_store_url" mapstructure:"steam_store_url"`
	StoreFallback     bool          `toml:"store_fallback" mapstructure:"store_fallback"`
	Language          string        `toml:"language" mapstructure:"language"`
	RequestTimeout    time.Duration `toml:"request_timeout" mapstructure:"request_timeout"`
	DiscordWebhookURL string        `toml:"discord_webhook_url" mapstructure:"discord_webhook_url"`
	LogLevel          string        `toml:"log_level" mapstructure:"log_level"`

	// ProgramName is the base name of the running binary, never treated as a screenshot.
	ProgramName string `toml:"-" mapstructure:"-"`
}
