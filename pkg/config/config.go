package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	AnthropicAPIKey string        `json:"anthropic_api_key"`
	Workspace       string        `json:"workspace"`
	Model           string        `json:"model,omitempty"`
	MaxTries        int           `json:"max_tries,omitempty"`
	Compile         CompileConfig `json:"compile"`
}

// CompileConfig holds the optional PDF compilation step. Disabled by default:
// the pipeline's job ends at the regenerated .tex sections.
type CompileConfig struct {
	Enabled bool   `json:"enabled"`
	Target  string `json:"target,omitempty"`
}

// Load reads configuration from file with environment variable overrides.
// A .env file next to the working directory is honored before the
// environment is consulted.
func Load(configPath string) (cfg Config, err error) {
	_ = godotenv.Load()

	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return cfg, err
		}
		path = filepath.Join(homeDir, ".resume-refresh", "config.json")
	}

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'resume-refresh init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	// Override with environment variable if set
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		cfg.AnthropicAPIKey = apiKey
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() (err error) {
	if c.AnthropicAPIKey == "" {
		err = errors.New("anthropic_api_key is required (set in config or ANTHROPIC_API_KEY env var)")
		return err
	}

	if c.Workspace == "" {
		err = errors.New("workspace is required in config")
		return err
	}

	// Check workspace directory exists
	_, err = os.Stat(c.Workspace)
	if os.IsNotExist(err) {
		err = errors.Errorf("workspace directory not found: %s", c.Workspace)
		return err
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return err
		}
		path = filepath.Join(homeDir, ".resume-refresh", "config.json")
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return err
	}

	defaultConfig := Config{
		AnthropicAPIKey: "sk-ant-api03-...",
		Workspace:       filepath.Join(homeDir, "resume"),
		Compile: CompileConfig{
			Enabled: false,
			Target:  "resume.tex",
		},
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
