package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig selects and configures the record store backend.
type StorageConfig struct {
	Backend    string `mapstructure:"backend"` // "sqlite" or "redis"
	SQLitePath string `mapstructure:"sqlite_path"`
}

// MediaConfig controls uploaded file handling.
type MediaConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
}

// ModerationConfig controls the fake-score classifier and the retention
// threshold.
type ModerationConfig struct {
	Threshold   float64            `mapstructure:"threshold"`
	Preset      string             `mapstructure:"preset"`       // "strict" (default) or "baseline"
	LexiconFile string             `mapstructure:"lexicon_file"` // optional YAML word-list override
	Weights     map[string]float64 `mapstructure:"weights"`      // optional per-weight overrides
}

// SweepConfig controls the periodic purge. A sweep also runs once at
// startup regardless of the schedule.
type SweepConfig struct {
	Schedule string `mapstructure:"schedule"` // cron expression
}

// TrustedConfig controls the trusted-headline fetcher. An empty URL
// disables it.
type TrustedConfig struct {
	URL           string `mapstructure:"url"`
	Limit         int    `mapstructure:"limit"`
	FetchInterval string `mapstructure:"fetch_interval"` // duration string, e.g. "30m"
	CacheTTL      string `mapstructure:"cache_ttl"`
}

// OpenAIConfig enables the embedding cross-check when an API key is set.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Config is the top-level configuration structure.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Media      MediaConfig      `mapstructure:"media"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Sweep      SweepConfig      `mapstructure:"sweep"`
	Trusted    TrustedConfig    `mapstructure:"trusted"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "sqlite"
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "./data/news.db"
	}
	if c.Media.UploadDir == "" {
		c.Media.UploadDir = "./data/uploads"
	}
	if c.Moderation.Threshold == 0 {
		c.Moderation.Threshold = 70
	}
	if c.Moderation.Preset == "" {
		c.Moderation.Preset = "strict"
	}
	if c.Sweep.Schedule == "" {
		c.Sweep.Schedule = "*/30 * * * *"
	}
	if c.Trusted.Limit == 0 {
		c.Trusted.Limit = 10
	}
	if c.Trusted.FetchInterval == "" {
		c.Trusted.FetchInterval = "30m"
	}
	if c.Trusted.CacheTTL == "" {
		c.Trusted.CacheTTL = "24h"
	}
}
