package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/jeanpaul/adivina/internal/knowledge"
	"github.com/jeanpaul/adivina/internal/questions"
)

type Config struct {
	Storage   StorageConfig         `yaml:"storage" mapstructure:"storage"`
	Assets    AssetsConfig          `yaml:"assets" mapstructure:"assets"`
	Game      GameConfig            `yaml:"game" mapstructure:"game"`
	Log       LogConfig             `yaml:"log" mapstructure:"log"`
	Theme     string                `yaml:"theme" mapstructure:"theme"`
	Questions []questions.Attribute `yaml:"questions,omitempty" mapstructure:"questions"`
}

type StorageConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
	Path    string `yaml:"path" mapstructure:"path"`
}

type AssetsConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

type GameConfig struct {
	DefaultEntity string `yaml:"default_entity" mapstructure:"default_entity"`
	Seed          int64  `yaml:"seed" mapstructure:"seed"` // 0 seeds from the clock
}

type LogConfig struct {
	File  string `yaml:"file" mapstructure:"file"`
	Level string `yaml:"level" mapstructure:"level"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "adivina")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "adivina")
}

// Path is where the user config file is expected.
func Path() string {
	return filepath.Join(configDir(), "config.yaml")
}

func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "json",
			Path:    "warframes.json",
		},
		Assets: AssetsConfig{Dir: "recursos"},
		Game:   GameConfig{DefaultEntity: "excalibur"},
		Log: LogConfig{
			File:  filepath.Join(configDir(), "adivina.log"),
			Level: "info",
		},
		Theme: "green",
	}
}

// Load reads config.yaml from the working directory or the user config
// directory (or from file, when given), then applies ADIVINA_* environment
// overrides. A missing config file is not an error.
func Load(file string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("assets.dir", cfg.Assets.Dir)
	v.SetDefault("game.default_entity", cfg.Game.DefaultEntity)
	v.SetDefault("game.seed", cfg.Game.Seed)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("theme", cfg.Theme)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Search paths
		v.AddConfigPath(".")
		v.AddConfigPath(configDir())
	}

	// Environment variables
	v.SetEnvPrefix("ADIVINA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
		// Config file not found; ignore and use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.Storage.Path = expandHome(expandEnv(cfg.Storage.Path))
	cfg.Assets.Dir = expandHome(expandEnv(cfg.Assets.Dir))
	cfg.Log.File = expandHome(expandEnv(cfg.Log.File))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	backend := strings.ToLower(c.Storage.Backend)
	valid := false
	for _, b := range knowledge.Backends {
		if b == backend || (backend == "yml" && b == "yaml") {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("config: storage.backend %q is invalid (must be %s)", c.Storage.Backend, strings.Join(knowledge.Backends, ", "))
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("config: storage.path is required")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if len(c.Questions) > 0 {
		if _, err := questions.New(c.Questions...); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if strings.TrimSpace(c.Game.DefaultEntity) == "" {
		c.Game.DefaultEntity = "excalibur"
	}
	return nil
}

// QuestionSet returns the configured schedule, or the built-in one.
func (c *Config) QuestionSet() (*questions.Set, error) {
	if len(c.Questions) == 0 {
		return questions.Default(), nil
	}
	return questions.New(c.Questions...)
}
