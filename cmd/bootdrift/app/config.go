package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/bootdrift/internal/cmd/globals"
	"github.com/agentstation/bootdrift/pkg/constants"
	"github.com/agentstation/bootdrift/pkg/errors"
)

// EnvPrefix namespaces environment variables, e.g. BOOTDRIFT_CACHE_DIR.
const EnvPrefix = "BOOTDRIFT"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Catalog configuration
	CacheDir        string
	CacheTTL        time.Duration
	DocsURLTemplate string
	HTTPTimeout     time.Duration
	Offline         bool

	// Logging configuration. LogLevel is set only by --log-level;
	// EnvLogLevel comes from the config file or environment.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (BOOTDRIFT_*, plus LOG_LEVEL and NO_COLOR)
// 3. .env files
// 4. Config file (configFile, or .bootdrift.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".bootdrift")
		// A missing config file is fine; a broken one is not.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.NewConfigError("config", "cannot read config file", err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		CacheDir:        v.GetString("cache_dir"),
		CacheTTL:        v.GetDuration("cache_ttl"),
		DocsURLTemplate: v.GetString("docs_url_template"),
		HTTPTimeout:     v.GetDuration("http_timeout"),
		Offline:         v.GetBool("offline"),

		EnvLogLevel: firstNonEmpty(v.GetString("log_level"), os.Getenv("LOG_LEVEL")),
		LogFormat:   v.GetString("log_format"),
		LogOutput:   v.GetString("log_output"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return errors.NewConfigError("cache", "cache_dir must not be empty", nil)
	}
	if c.CacheTTL < 0 {
		return errors.NewConfigError("cache", "cache_ttl must not be negative", nil)
	}
	if c.HTTPTimeout <= 0 {
		return errors.NewConfigError("http", "http_timeout must be positive", nil)
	}
	if !strings.Contains(c.DocsURLTemplate, "%s") {
		return errors.NewConfigError("catalog", "docs_url_template must contain %s", nil)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(flags *globals.Flags) {
	// unset switches keep the configured value
	if flags.Verbose || flags.Changed("verbose") {
		c.Verbose = flags.Verbose
	}
	if flags.Quiet || flags.Changed("quiet") {
		c.Quiet = flags.Quiet
	}
	c.NoColor = c.NoColor || flags.NoColor
	if flags.Format != "" {
		c.Format = flags.Format
	}
	c.LogLevel = flags.LogLevel
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache_dir", constants.DefaultCacheDir)
	v.SetDefault("cache_ttl", constants.DefaultCacheTTL)
	v.SetDefault("docs_url_template", constants.DefaultDocsURLTemplate)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("offline", false)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
