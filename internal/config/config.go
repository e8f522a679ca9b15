package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// RetrievalConfig tunes scoring and ranking.
type RetrievalConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	MinTokenRunes       int     `yaml:"min_token_runes"`
	TopK                int     `yaml:"top_k"`
}

// DisplayConfig controls how results are rendered.
type DisplayConfig struct {
	Precision     int `yaml:"precision"`
	MatrixColumns int `yaml:"matrix_columns"`
}

// DemoConfig holds the content the UI starts with.
type DemoConfig struct {
	Title       string   `yaml:"title"`
	Documents   []string `yaml:"documents"`
	Question    string   `yaml:"question"`
	Suggestions []string `yaml:"suggestions"`
}

// LogConfig configures logrus.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Display   DisplayConfig   `yaml:"display"`
	Demo      DemoConfig      `yaml:"demo"`
	Log       LogConfig       `yaml:"log"`
}

// Environment variables that override file values.
const (
	EnvConfidenceThreshold = "TDF_ESP_CONFIDENCE_THRESHOLD"
	EnvPrecision           = "TDF_ESP_PRECISION"
	EnvLogLevel            = "TDF_ESP_LOG_LEVEL"
	EnvLogFile             = "TDF_ESP_LOG_FILE"
)

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return finish(cfg)
		}
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(cfg)
	return finish(cfg)
}

// LoadDefault tries ./config.yaml first, then ~/.config/tdf-esp/config.yaml.
// If neither exists, it writes defaults to ~/.config/tdf-esp/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	cfg, err = finish(cfg)
	return cfg, userPath, err
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values the pipeline cannot work with.
func (c *AppConfig) Validate() error {
	if c.Retrieval.ConfidenceThreshold < 0 || c.Retrieval.ConfidenceThreshold > 1 {
		return fmt.Errorf("retrieval.confidence_threshold must be within [0, 1], got %v", c.Retrieval.ConfidenceThreshold)
	}
	if c.Retrieval.MinTokenRunes < 1 {
		return fmt.Errorf("retrieval.min_token_runes must be positive, got %d", c.Retrieval.MinTokenRunes)
	}
	if c.Retrieval.TopK < 0 {
		return fmt.Errorf("retrieval.top_k must not be negative, got %d", c.Retrieval.TopK)
	}
	if c.Display.Precision < 0 || c.Display.Precision > 10 {
		return fmt.Errorf("display.precision must be within [0, 10], got %d", c.Display.Precision)
	}
	if c.Display.MatrixColumns < 1 {
		return fmt.Errorf("display.matrix_columns must be positive, got %d", c.Display.MatrixColumns)
	}
	return nil
}

func finish(cfg *AppConfig) (*AppConfig, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv(EnvConfidenceThreshold); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvConfidenceThreshold, err)
		}
		cfg.Retrieval.ConfidenceThreshold = f
	}
	if v := os.Getenv(EnvPrecision); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPrecision, err)
		}
		cfg.Display.Precision = p
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tdf-esp", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Retrieval: RetrievalConfig{ConfidenceThreshold: 0.01, MinTokenRunes: 2},
		Display:   DisplayConfig{Precision: 3, MatrixColumns: 8},
		Demo: DemoConfig{
			Title:       "Demo TF-IDF en Español: Tecnología y Trabajo Remoto",
			Documents:   append([]string(nil), defaultDocuments...),
			Question:    defaultSuggestions[0],
			Suggestions: append([]string(nil), defaultSuggestions...),
		},
		Log: LogConfig{Level: "info"},
	}
	return cfg
}

// applyConfigDefaults fills fields a partial file left at zero.
func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Retrieval.MinTokenRunes == 0 {
		cfg.Retrieval.MinTokenRunes = 2
	}
	if cfg.Display.MatrixColumns == 0 {
		cfg.Display.MatrixColumns = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if len(cfg.Demo.Suggestions) == 0 {
		cfg.Demo.Suggestions = append([]string(nil), defaultSuggestions...)
	}
}

var defaultDocuments = []string{
	"El trabajo remoto permite a los empleados laborar desde casa con flexibilidad.",
	"Las reuniones virtuales se realizan a través de plataformas como Zoom o Teams.",
	"El equipo de desarrollo colabora en proyectos mediante GitHub.",
	"La ciberseguridad es esencial para proteger la información de la empresa.",
	"Muchos trabajadores usan escritorios ergonómicos para mejorar su postura.",
	"Las startups tecnológicas están contratando diseñadores y programadores en todo el mundo.",
	"La inteligencia artificial está transformando los procesos empresariales.",
}

var defaultSuggestions = []string{
	"¿Qué plataformas se usan para reuniones virtuales?",
	"¿Qué herramientas usan los desarrolladores para colaborar?",
	"¿Cómo mejora la postura un trabajador remoto?",
	"¿Qué papel cumple la ciberseguridad?",
	"¿Qué área está siendo transformada por la inteligencia artificial?",
}
