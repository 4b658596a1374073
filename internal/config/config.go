package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the simulator. Values are resolved
// in order: defaults, YAML file, .env file, environment, CLI flags.
type Config struct {
	DataDir          string        `yaml:"data_dir" env:"DATA_DIR"`
	LogLevel         string        `yaml:"log_level" env:"LOG_LEVEL"`
	LogFile          string        `yaml:"log_file" env:"LOG_FILE"`
	ListenAddr       string        `yaml:"listen_addr" env:"LISTEN_ADDR"`
	ExamDuration     time.Duration `yaml:"exam_duration" env:"DURATION"`
	NumericTolerance float64       `yaml:"numeric_tolerance" env:"NUMERIC_TOLERANCE"`
}

func Default() *Config {
	return &Config{
		DataDir:          DefaultDataDir,
		LogLevel:         LogLevelInfo,
		LogFile:          LogFilePath,
		ListenAddr:       DefaultListenAddr,
		ExamDuration:     DefaultExamDuration,
		NumericTolerance: DefaultNumericTolerance,
	}
}

// Load builds the configuration. An empty path skips the YAML file; a
// missing .env file is ignored.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data dir must not be empty")
	}
	if c.ExamDuration <= 0 {
		return fmt.Errorf("exam duration must be positive, got %s", c.ExamDuration)
	}
	if c.NumericTolerance < 0 {
		return fmt.Errorf("numeric tolerance must not be negative, got %v", c.NumericTolerance)
	}
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
