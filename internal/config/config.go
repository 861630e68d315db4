package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings
type Config struct {
	// Scoring engine settings
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`

	// Output settings
	Output OutputConfig `yaml:"output" mapstructure:"output"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

type EngineConfig struct {
	Currency                  string `yaml:"currency" mapstructure:"currency"`
	TrackControlEffectiveness bool   `yaml:"track_control_effectiveness" mapstructure:"track_control_effectiveness"`
}

type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "standard", "quiet", "json", "yaml" or empty
}

type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // logrus level name
	Format string `yaml:"format" mapstructure:"format"` // "text", "json"
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Currency:                  "R",
			TrackControlEffectiveness: true,
		},
		Output: OutputConfig{
			Format: "", // quiet under CI, standard otherwise
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	// Load .env files first (in order of precedence)
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	// Defaults are set per key so AutomaticEnv can see every nested key
	cfg := Default()
	v.SetDefault("engine.currency", cfg.Engine.Currency)
	v.SetDefault("engine.track_control_effectiveness", cfg.Engine.TrackControlEffectiveness)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	// HEALTHRISK_ENGINE_CURRENCY, HEALTHRISK_LOGGING_LEVEL, ...
	v.SetEnvPrefix("HEALTHRISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(expandPath(path))
	} else {
		// Search for config in standard locations
		v.SetConfigName("config")
		v.AddConfigPath(".healthrisk")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".healthrisk"))
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	// godotenv never overrides a variable that is already set,
	// so the first file to define a key wins
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".healthrisk", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		_ = godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies the short-form environment overrides, which win
// over both the config file and the HEALTHRISK_<SECTION>_<KEY> variables
func applyEnvOverrides(cfg *Config) {
	cfg.Engine.Currency = GetString("HEALTHRISK_CURRENCY", cfg.Engine.Currency)
	cfg.Engine.TrackControlEffectiveness = GetBool("HEALTHRISK_TRACK_CONTROLS", cfg.Engine.TrackControlEffectiveness)
	cfg.Output.Format = GetString("HEALTHRISK_OUTPUT", cfg.Output.Format)
	cfg.Logging.Level = GetString("HEALTHRISK_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = GetString("HEALTHRISK_LOG_FORMAT", cfg.Logging.Format)
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("engine.currency", c.Engine.Currency)
	v.Set("engine.track_control_effectiveness", c.Engine.TrackControlEffectiveness)
	v.Set("output.format", c.Output.Format)
	v.Set("logging.level", c.Logging.Level)
	v.Set("logging.format", c.Logging.Format)

	path = expandPath(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
