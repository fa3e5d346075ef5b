package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/providerhub/pkg/constants"
	"github.com/agentstation/providerhub/pkg/errors"
)

// Config holds the application configuration loaded from flags, the
// environment, .env files and the config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string
	Locale  string

	ConfigFile string

	// Hub configuration
	DataDir      string
	FetchTimeout time.Duration
	RateLimitRPM int
	RateBurst    int
	AutoRefresh  time.Duration
	EnvAPIKeys   bool

	// Server configuration
	ServerHost   string
	ServerPort   int
	ServerAPIKey string
	CORSOrigins  []string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"data_dir":       "PROVIDERHUB_DATA_DIR",
	"locale":         "PROVIDERHUB_LOCALE",
	"fetch_timeout":  "PROVIDERHUB_FETCH_TIMEOUT",
	"rate_limit_rpm": "PROVIDERHUB_RATE_LIMIT",
	"auto_refresh":   "PROVIDERHUB_AUTO_REFRESH",
	"env_api_keys":   "PROVIDERHUB_ENV_API_KEYS",
	"server.host":    "HTTP_HOST",
	"server.port":    "HTTP_PORT",
	"server.api_key": "PROVIDERHUB_SERVER_API_KEY",
	"log.level":      "LOG_LEVEL",
	"log.format":     "LOG_FORMAT",
	"log.output":     "LOG_OUTPUT",
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.providerhub.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, err
		}
	}
	setDefaults()

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".providerhub")
	}

	// a missing config file is fine
	_ = viper.ReadInConfig()

	return fromViper(), nil
}

// LoadConfigFile reads an explicitly named config file on top of the
// environment and defaults. Unlike the default file it must exist.
func LoadConfigFile(path string) (*Config, error) {
	viper.SetConfigFile(expandHome(path))
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.NewConfigError("config", "cannot read "+path, err)
	}
	return fromViper(), nil
}

func setDefaults() {
	viper.SetDefault("locale", "en")
	viper.SetDefault("data_dir", defaultDataDir())
	viper.SetDefault("rate_limit_rpm", 0)
	viper.SetDefault("rate_burst", constants.BurstSize)
	viper.SetDefault("env_api_keys", true)
	viper.SetDefault("server.host", constants.DefaultServerHost)
	viper.SetDefault("server.port", constants.DefaultServerPort)
	viper.SetDefault("log.format", "auto")
	viper.SetDefault("log.output", "stderr")
}

func fromViper() *Config {
	return &Config{
		Format:     viper.GetString("format"),
		Locale:     viper.GetString("locale"),
		ConfigFile: viper.ConfigFileUsed(),

		DataDir:      expandHome(viper.GetString("data_dir")),
		FetchTimeout: viper.GetDuration("fetch_timeout"),
		RateLimitRPM: viper.GetInt("rate_limit_rpm"),
		RateBurst:    viper.GetInt("rate_burst"),
		AutoRefresh:  viper.GetDuration("auto_refresh"),
		EnvAPIKeys:   viper.GetBool("env_api_keys"),

		ServerHost:   viper.GetString("server.host"),
		ServerPort:   viper.GetInt("server.port"),
		ServerAPIKey: viper.GetString("server.api_key"),
		CORSOrigins:  viper.GetStringSlice("server.cors_origins"),

		LogLevel:  viper.GetString("log.level"),
		LogFormat: viper.GetString("log.format"),
		LogOutput: viper.GetString("log.output"),
	}
}

// UpdateFromFlags applies parsed flag values, which take precedence over
// config file and environment values.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, locale string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if locale != "" {
		c.Locale = locale
	}
}

// loadEnvFiles loads .env and then .env.local. Variables already present in
// the environment are never overwritten.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, constants.DefaultDataDirName)
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
