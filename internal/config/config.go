package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides (NETFROG_SHOW_ID=169)
const EnvPrefix = "NETFROG"

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Show    ShowConfig    `mapstructure:"show"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds TVMaze API settings
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"` // 0 disables the client timeout
	UserAgent string        `mapstructure:"user_agent"`
}

// ShowConfig selects the show displayed in the detail view
type ShowConfig struct {
	ID            int `mapstructure:"id"`
	DefaultSeason int `mapstructure:"default_season"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	AltScreen    bool     `mapstructure:"alt_screen"`
	SummaryWidth int      `mapstructure:"summary_width"` // wrap width for plain output
	Browser      string   `mapstructure:"browser"`       // empty uses the system default
	BrowserArgs  []string `mapstructure:"browser_args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "https://api.tvmaze.com",
			Timeout:   0,
			UserAgent: "netfrog/1.0",
		},
		Show: ShowConfig{
			ID:            184,
			DefaultSeason: 1,
		},
		UI: UIConfig{
			AltScreen:    true,
			SummaryWidth: 80,
		},
		Logging: LoggingConfig{
			File:   defaultLogPath(),
			Level:  "INFO",
			Format: "json",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "netfrog", "netfrog.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "netfrog", "netfrog.log")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "netfrog")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "netfrog")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "netfrog")
	}
}

// Load loads configuration from file and environment. An empty path searches
// the default config directory and the working directory; a missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	// Environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so env overrides apply without a config file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)

	v.SetDefault("show.id", cfg.Show.ID)
	v.SetDefault("show.default_season", cfg.Show.DefaultSeason)

	v.SetDefault("ui.alt_screen", cfg.UI.AltScreen)
	v.SetDefault("ui.summary_width", cfg.UI.SummaryWidth)
	v.SetDefault("ui.browser", cfg.UI.Browser)
	v.SetDefault("ui.browser_args", cfg.UI.BrowserArgs)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.Show.ID <= 0 {
		return fmt.Errorf("show.id must be positive, got %d", c.Show.ID)
	}
	if c.Show.DefaultSeason < 0 {
		return fmt.Errorf("show.default_season must not be negative, got %d", c.Show.DefaultSeason)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unknown logging.format %q (want json or text)", c.Logging.Format)
	}
	return nil
}
