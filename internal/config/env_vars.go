package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	appNameVar      = "APP_NAME"
	envVar          = "ENV"
	logLevelVar     = "LOG_LEVEL"
	callbackPortVar = "CALLBACK_PORT"
)

// overlay holds values read from a config file, keyed by env var name.
type overlay map[string]string

func (o overlay) get(name, defaultValue string) string {
	if value, ok := o[name]; ok && value != "" {
		defaultValue = value
	}
	return GetEnv(name, defaultValue)
}

func (o overlay) getInt(name string, defaultValue int) int {
	value, err := strconv.Atoi(o.get(name, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func (o overlay) getBool(name string, defaultValue bool) bool {
	value, err := strconv.ParseBool(o.get(name, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func (o overlay) getDuration(name string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(o.get(name, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

type EnvVars struct {
	values overlay
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.values.get(appNameVar, "SkillShare")
}

func (e EnvVars) GetEnv() string {
	return strings.ToUpper(e.values.get(envVar, "DEV"))
}

func (e EnvVars) GetLogLevel() string {
	return strings.ToLower(e.values.get(logLevelVar, "info"))
}

func (e EnvVars) GetCallbackPort() string {
	port := e.values.get(callbackPortVar, "3000")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
