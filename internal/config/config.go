package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// StorageConfig selects the post store backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // memory, redis, postgres
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PostgresConfig holds postgres connection settings.
type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

// HNConfig controls the Hacker News data source.
type HNConfig struct {
	BaseAPI       string   `mapstructure:"base_api"`
	FetchInterval string   `mapstructure:"fetch_interval"` // duration string, e.g., "10m"
	Lists         []string `mapstructure:"lists"`          // top, new, best, ask, show, job
	LimitPerList  int      `mapstructure:"limit_per_list"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// OpenAIConfig enables AI report summaries when an API key is set.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// ReportConfig holds report generation defaults.
type ReportConfig struct {
	Title     string `mapstructure:"title"`
	OutputDir string `mapstructure:"output_dir"`
}

// Config is the top-level configuration structure.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	HN       HNConfig       `mapstructure:"hackernews"`
	Server   ServerConfig   `mapstructure:"server"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Report   ReportConfig   `mapstructure:"report"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "memory"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.HN.BaseAPI == "" {
		c.HN.BaseAPI = "https://hacker-news.firebaseio.com/v0"
	}
	if c.HN.FetchInterval == "" {
		c.HN.FetchInterval = "10m"
	}
	if len(c.HN.Lists) == 0 {
		c.HN.Lists = []string{"top"}
	}
	if c.HN.LimitPerList == 0 {
		c.HN.LimitPerList = 30
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Report.Title == "" {
		c.Report.Title = "Hacker News Report"
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "./out"
	}
}
