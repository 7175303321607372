package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"breathe/internal/core/model"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	DefaultMinutes int    `yaml:"default_minutes"`
	Haptics        *bool  `yaml:"haptics"`
	PulseIndicator *bool  `yaml:"pulse_indicator"`
	Fullscreen     *bool  `yaml:"fullscreen"`
	LogLevel       string `yaml:"log_level"`
}

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// LoadSettings reads application settings from the user config directory.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (model.Settings, error) {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return model.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads application settings from configPath.
// Missing keys and out-of-range values keep their defaults.
func LoadSettingsFile(configPath string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// ResolveConfigPath returns the settings file location for appName.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.DefaultMinutes > 0 {
		settings.DefaultMinutes = fileData.DefaultMinutes
	}
	if fileData.Haptics != nil {
		settings.Haptics = *fileData.Haptics
	}
	if fileData.PulseIndicator != nil {
		settings.PulseIndicator = *fileData.PulseIndicator
	}
	if fileData.Fullscreen != nil {
		settings.Fullscreen = *fileData.Fullscreen
	}

	level := strings.ToLower(strings.TrimSpace(fileData.LogLevel))
	if logLevels[level] {
		settings.LogLevel = level
	}
}
