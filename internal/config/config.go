package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config interface {
	EnvConfig
	APIConfig
	StoreConfig
	SecurityConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetCallbackPort() string
}

type mainConfig struct {
	EnvVars
	API
	Store
	Security
}

// New reads configuration from the process environment, after loading any
// .env file found in the working directory.
func New() Config {
	_ = godotenv.Load()
	return newMainConfig(overlay{})
}

// Load is New plus a YAML overlay. Keys in the file are environment variable
// names; a set environment variable always wins over the file.
func Load(path string) (Config, error) {
	_ = godotenv.Load()
	if path == "" {
		return newMainConfig(overlay{}), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newMainConfig(overlay{}), nil
		}
		return nil, fmt.Errorf("config.Load ReadFile: %w", err)
	}

	values := overlay{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("config.Load yaml.Unmarshal: %w", err)
	}
	return newMainConfig(values), nil
}

func newMainConfig(values overlay) mainConfig {
	return mainConfig{
		EnvVars:  EnvVars{values: values},
		API:      API{values: values},
		Store:    Store{values: values},
		Security: Security{values: values},
	}
}
