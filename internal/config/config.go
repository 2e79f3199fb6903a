package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config is the resolved startup configuration. It is fixed for the life of
// the process.
type Config struct {
	Environment string
	APIURL      string
	LogFile     string
	LogLevel    string
}

// Overrides carries command-line values, which beat everything else.
type Overrides struct {
	Environment string
	APIURL      string
	// EnvFile is the dotenv file to load; empty means ".env" in the working
	// directory. A missing file is ignored.
	EnvFile string
}

// Known environments.
const (
	Production  = "production"
	Development = "development"
)

// Environment variables consulted by Load.
const (
	EnvEnvironment = "SCANBOARD_ENV"
	EnvAPIURL      = "SCANBOARD_API_URL"
)

const (
	defaultConfigPath = "~/.config/scanboard/config.toml"
	defaultLogFile    = "~/.local/state/scanboard/scanboard.log"
	defaultLogLevel   = "info"
	defaultEnvFile    = ".env"
)

var environmentURLs = map[string]string{
	Production:  "https://pixelflip-scraper.onrender.com/api",
	Development: "http://localhost:5000/api",
}

// Load reads the dotenv file, then the TOML config at path (defaults when the
// file is missing), and applies precedence: flag, environment variable,
// config file, built-in default.
func Load(path string, ov Overrides) (Config, error) {
	if err := loadEnvFile(ov.EnvFile); err != nil {
		return Config{}, err
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	raw, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}

	env := strings.ToLower(first(ov.Environment, os.Getenv(EnvEnvironment), raw.Environment, Development))
	defaultURL, ok := DefaultURL(env)
	if !ok {
		return Config{}, fmt.Errorf("unknown environment %q (want %s or %s)", env, Production, Development)
	}

	cfg := Config{
		Environment: env,
		APIURL:      first(ov.APIURL, os.Getenv(EnvAPIURL), raw.APIURL, defaultURL),
		LogFile:     mustExpand(first(raw.LogFile, defaultLogFile)),
		LogLevel:    strings.ToLower(first(raw.LogLevel, defaultLogLevel)),
	}
	return cfg, nil
}

// DefaultURL returns the built-in API root for env.
func DefaultURL(env string) (string, bool) {
	u, ok := environmentURLs[strings.ToLower(strings.TrimSpace(env))]
	return u, ok
}

type rawConfig struct {
	Environment string `toml:"environment"`
	APIURL      string `toml:"api_url"`
	LogFile     string `toml:"log_file"`
	LogLevel    string `toml:"log_level"`
}

func readFile(path string) (rawConfig, error) {
	var raw rawConfig

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return raw, nil
		}
		return raw, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return raw, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return raw, fmt.Errorf("parse config: %w", err)
	}
	return raw, nil
}

// loadEnvFile exports dotenv entries without overriding variables that are
// already set.
func loadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// first returns the first value that is not blank, trimmed.
func first(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
