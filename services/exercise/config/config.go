// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config provides settings for the exercise pipeline.
//
// Defaults are embedded in the binary; a user YAML file overlays individual
// keys on top of them. Every loaded configuration is validated before use.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KodiakMath/mathgen/services/exercise/artifact"
	"github.com/KodiakMath/mathgen/services/exercise/generator"
)

// MaxYAMLFileSize is the maximum allowed user config file size (1MB).
const MaxYAMLFileSize = 1024 * 1024

//go:embed defaults.yaml
var defaultConfigYAML []byte

// settingsValidate is the validator instance for pipeline settings.
var settingsValidate *validator.Validate

func init() {
	settingsValidate = validator.New()
}

// GeneratorSettings bounds the problem generator.
type GeneratorSettings struct {
	// MaxCount is the hard cap on requested problem counts. Zero disables
	// the cap.
	MaxCount int `yaml:"max_count" mapstructure:"max_count" validate:"gte=0"`

	// DefaultCount is used when no count is requested.
	DefaultCount int `yaml:"default_count" mapstructure:"default_count" validate:"gt=0"`

	PairAttempts   int `yaml:"pair_attempts" mapstructure:"pair_attempts" validate:"gt=0"`
	ExtendAttempts int `yaml:"extend_attempts" mapstructure:"extend_attempts" validate:"gt=0"`
	BudgetFactor   int `yaml:"budget_factor" mapstructure:"budget_factor" validate:"gt=0"`
}

// Limits converts the settings into the generator's retry bounds.
func (g GeneratorSettings) Limits() generator.Limits {
	return generator.Limits{
		PairAttempts:   g.PairAttempts,
		ExtendAttempts: g.ExtendAttempts,
		BudgetFactor:   g.BudgetFactor,
	}
}

// ArtifactSettings names the pipeline's artifact files.
type ArtifactSettings struct {
	Exercises string `yaml:"exercises" mapstructure:"exercises" validate:"required"`
	Answers   string `yaml:"answers" mapstructure:"answers" validate:"required"`
	Grade     string `yaml:"grade" mapstructure:"grade" validate:"required"`
	Stats     string `yaml:"stats" mapstructure:"stats" validate:"required"`
}

// Filenames converts the settings into the artifact store's filename set.
func (a ArtifactSettings) Filenames() artifact.Filenames {
	return artifact.Filenames{
		Exercises: a.Exercises,
		Answers:   a.Answers,
		Grade:     a.Grade,
		Stats:     a.Stats,
	}
}

// Settings is the full pipeline configuration.
type Settings struct {
	Generator GeneratorSettings `yaml:"generator" mapstructure:"generator"`
	Artifacts ArtifactSettings  `yaml:"artifacts" mapstructure:"artifacts"`
}

// Validate checks all settings fields against their constraints.
func (s *Settings) Validate() error {
	if err := settingsValidate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Default returns the embedded default settings.
func Default() (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(defaultConfigYAML, &s); err != nil {
		return s, fmt.Errorf("unmarshalling embedded defaults: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("embedded defaults: %w", err)
	}
	return s, nil
}

// Load returns the default settings overlaid with the user config file at
// path. Keys absent from the file keep their default values. An empty path
// returns the defaults unchanged.
func Load(path string) (Settings, error) {
	s, err := Default()
	if err != nil {
		return s, err
	}
	if path == "" {
		return s, nil
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return s, fmt.Errorf("config file not found at %s", path)
	} else if err != nil {
		return s, fmt.Errorf("error checking config file %s: %w", path, err)
	}
	if info.Size() > MaxYAMLFileSize {
		return s, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), MaxYAMLFileSize)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return s, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("error unmarshalling config file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("config file %s: %w", path, err)
	}
	return s, nil
}
