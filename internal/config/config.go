// README: Config loader: defaults, optional YAML file, then PLANNER_* environment (viper).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix         = "PLANNER"
	defaultConfigFile = "config/config.yaml"
)

var ErrMissingAPIKey = errors.New("missing API key")

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	// DSN enables itinerary persistence when set.
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	// Addr enables the shared exchange-rate table when set.
	Addr string `mapstructure:"addr"`
}

type AIConfig struct {
	Provider  string        `mapstructure:"provider"`
	Model     string        `mapstructure:"model"`
	GeminiKey string        `mapstructure:"gemini_key"`
	OpenAIKey string        `mapstructure:"openai_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type MapsConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type RatesConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type Config struct {
	HTTP  HTTPConfig  `mapstructure:"http"`
	DB    DBConfig    `mapstructure:"db"`
	Redis RedisConfig `mapstructure:"redis"`
	AI    AIConfig    `mapstructure:"ai"`
	Maps  MapsConfig  `mapstructure:"maps"`
	Rates RatesConfig `mapstructure:"rates"`
}

// Load reads PLANNER_CONFIG_FILE (default config/config.yaml) when it exists.
func Load() (Config, error) {
	path := os.Getenv(envPrefix + "_CONFIG_FILE")
	if path == "" {
		path = defaultConfigFile
	}
	return LoadFrom(path)
}

// LoadFrom layers defaults, the YAML file at path (skipped when absent) and
// the environment, then validates the provider key.
func LoadFrom(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindWellKnownKeys(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.gemini_key", "")
	v.SetDefault("ai.openai_key", "")
	v.SetDefault("ai.timeout", 30*time.Second)
	v.SetDefault("maps.api_key", "")
	v.SetDefault("rates.api_key", "")
	v.SetDefault("rates.base_url", "https://v6.exchangerate-api.com")
	v.SetDefault("rates.ttl", time.Hour)
}

// bindWellKnownKeys lets the providers' conventional variable names work
// alongside the PLANNER_* ones.
func bindWellKnownKeys(v *viper.Viper) {
	_ = v.BindEnv("ai.gemini_key", envPrefix+"_AI_GEMINI_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("ai.openai_key", envPrefix+"_AI_OPENAI_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("maps.api_key", envPrefix+"_MAPS_API_KEY", "GOOGLE_MAPS_API_KEY")
	_ = v.BindEnv("rates.api_key", envPrefix+"_RATES_API_KEY", "EXCHANGE_RATE_API_KEY")
}

func (c Config) validate() error {
	switch c.AI.Provider {
	case "gemini":
		if c.AI.GeminiKey == "" {
			return fmt.Errorf("gemini provider: %w (set GEMINI_API_KEY)", ErrMissingAPIKey)
		}
	case "openai":
		if c.AI.OpenAIKey == "" {
			return fmt.Errorf("openai provider: %w (set OPENAI_API_KEY)", ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("unknown ai provider %q", c.AI.Provider)
	}
	return nil
}
