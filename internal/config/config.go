package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/auto-dns/docker-discord-bot/internal/runtime"
	"github.com/spf13/viper"
)

// AppConfig holds application-specific configuration.
type AppConfig struct {
	Hostname string `mapstructure:"hostname"`
}

// DiscordConfig holds the chat credentials and authorization settings.
type DiscordConfig struct {
	Token       string `mapstructure:"token"`
	AllowedRole int64  `mapstructure:"allowed_role"`
	GuildID     string `mapstructure:"guild_id"`
}

// RuntimeConfig selects how the container engine is driven.
type RuntimeConfig struct {
	Backend         string `mapstructure:"backend"`
	Engine          string `mapstructure:"engine"`
	ContainerFilter string `mapstructure:"container_filter"`
}

// HookConfig controls the pre-action script.
type HookConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ScriptPath string `mapstructure:"script_path"`
}

// NotifierConfig holds webhook settings.
type NotifierConfig struct {
	WebhookURL string  `mapstructure:"webhook_url"`
	Timeout    float64 `mapstructure:"timeout"`
	Footer     string  `mapstructure:"footer"`
}

// WatchConfig controls the engine event watcher.
type WatchConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	KillWindow float64 `mapstructure:"kill_window"`
}

// AuditConfig holds etcd journal settings. The journal is disabled without endpoints.
type AuditConfig struct {
	Endpoints    []string `mapstructure:"etcd_endpoints"`
	PathPrefix   string   `mapstructure:"path_prefix"`
	TTL          int64    `mapstructure:"ttl"`
	HistoryLimit int64    `mapstructure:"history_limit"`
	DialTimeout  float64  `mapstructure:"dial_timeout"`
}

func (ac AuditConfig) Enabled() bool {
	return len(ac.Endpoints) > 0
}

// LoggingConfig holds the logging-related configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the top-level configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Discord  DiscordConfig  `mapstructure:"discord"`
	Runtime  RuntimeConfig  `mapstructure:"runtime"`
	Hook     HookConfig     `mapstructure:"hook"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Logging  LoggingConfig  `mapstructure:"log"`
}

const (
	BackendCLI = "cli"
	BackendAPI = "api"
)

// legacyEnv lists environment names accepted in addition to the derived KEY_NAME form.
var legacyEnv = map[string][]string{
	"discord.allowed_role":     {"ALLOWED_ROLE"},
	"notifier.webhook_url":     {"DISCORD_WEBHOOK_URL"},
	"app.hostname":             {"HOSTNAME"},
	"hook.enabled":             {"ENABLE_AAF_RENAME"},
	"runtime.container_filter": {"CONTAINER_FILTER"},
}

// InitConfig performs the initial configuration: setting defaults, specifying the config file, and reading it.
func InitConfig(configFile string) error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown-host"
	}

	viper.SetDefault("app.hostname", hostname)
	viper.SetDefault("discord.token", "")
	viper.SetDefault("discord.allowed_role", 0)
	viper.SetDefault("discord.guild_id", "")
	viper.SetDefault("runtime.backend", BackendCLI)
	viper.SetDefault("runtime.engine", "docker")
	viper.SetDefault("runtime.container_filter", "")
	viper.SetDefault("hook.enabled", false)
	viper.SetDefault("hook.script_path", "/app/scripts/pre_restart.sh")
	viper.SetDefault("notifier.webhook_url", "")
	viper.SetDefault("notifier.timeout", 10.0)
	viper.SetDefault("notifier.footer", "Docker Discord Bot")
	viper.SetDefault("watch.enabled", false)
	viper.SetDefault("watch.kill_window", 30.0)
	viper.SetDefault("audit.etcd_endpoints", []string{})
	viper.SetDefault("audit.path_prefix", "/docker-discord-bot/audit")
	viper.SetDefault("audit.ttl", 7*24*60*60)
	viper.SetDefault("audit.history_limit", 10)
	viper.SetDefault("audit.dial_timeout", 2.0)
	viper.SetDefault("log.level", "INFO")

	// Specify the config file details.
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config") // Looks for config.yaml
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	// Read the config file if available.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// If the file is not found, just continue with defaults and env vars.
	}

	// Enable automatic environment variable binding.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, aliases := range legacyEnv {
		names := append([]string{envName(key)}, aliases...)
		if err := viper.BindEnv(append([]string{key}, names...)...); err != nil {
			return fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	return nil
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Load unmarshals the configuration into the Config struct and validates it.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	config.Audit.Endpoints = splitEndpoints(config.Audit.Endpoints)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// splitEndpoints accepts both list values and a single comma separated env value.
func splitEndpoints(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Discord.Token) == "" {
		errs = append(errs, errors.New("discord.token is required"))
	}
	switch c.Runtime.Backend {
	case BackendCLI, BackendAPI:
	default:
		errs = append(errs, fmt.Errorf("runtime.backend must be %q or %q, got %q", BackendCLI, BackendAPI, c.Runtime.Backend))
	}
	if c.Runtime.Backend == BackendCLI && strings.TrimSpace(c.Runtime.Engine) == "" {
		errs = append(errs, errors.New("runtime.engine is required for the cli backend"))
	}
	if err := runtime.ValidatePattern(c.Runtime.ContainerFilter); err != nil {
		errs = append(errs, fmt.Errorf("runtime.container_filter %q: %w", c.Runtime.ContainerFilter, err))
	}
	if c.Hook.Enabled && strings.TrimSpace(c.Hook.ScriptPath) == "" {
		errs = append(errs, errors.New("hook.script_path is required when hook.enabled is set"))
	}
	if c.Audit.Enabled() && c.Audit.TTL <= 0 {
		errs = append(errs, errors.New("audit.ttl must be positive"))
	}
	if strings.TrimSpace(c.App.Hostname) == "" {
		errs = append(errs, errors.New("app.hostname must not be empty"))
	}
	return errors.Join(errs...)
}
