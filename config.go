package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML config file. Unset keys leave the flag
// defaults alone.
type FileConfig struct {
	Duration       *int    `yaml:"duration"`
	Quality        *string `yaml:"quality"`
	Bugreport      *bool   `yaml:"bugreport"`
	NonInteractive *bool   `yaml:"non_interactive"`
	Regression     *string `yaml:"regression"`
	FRStatus       *string `yaml:"fr"`
	CaptureStatus  *bool   `yaml:"capture_status"`
	OutputRoot     *string `yaml:"output"`
	ADBPath        *string `yaml:"adb_path"`
	DeviceID       *string `yaml:"device_id"`
}

func loadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// applyTo copies set keys into cfg unless the matching flag was given on the
// command line. It reports whether the file supplied any capture choice.
func (fc *FileConfig) applyTo(cfg *Config, changed func(name string) bool) (captureSet bool) {
	captureSet = fc.Duration != nil || fc.Quality != nil || fc.Bugreport != nil

	setValue(fc.Duration, &cfg.Duration, "duration", changed)
	setValue(fc.Quality, &cfg.Quality, "quality", changed)
	setValue(fc.Bugreport, &cfg.Bugreport, "bugreport", changed)
	setValue(fc.NonInteractive, &cfg.NonInteractive, "non-interactive", changed)
	setValue(fc.Regression, &cfg.Regression, "regression", changed)
	setValue(fc.FRStatus, &cfg.FRStatus, "fr", changed)
	setValue(fc.CaptureStatus, &cfg.CaptureStatus, "capture-status", changed)
	setValue(fc.OutputRoot, &cfg.OutputRoot, "output", changed)
	setValue(fc.ADBPath, &cfg.ADBPath, "adb-path", changed)
	setValue(fc.DeviceID, &cfg.DeviceID, "device-id", changed)
	return captureSet
}

func setValue[T any](src *T, dst *T, flag string, changed func(string) bool) {
	if src != nil && !changed(flag) {
		*dst = *src
	}
}
