package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads and validates configuration from the given path, falling back
// to config.yml in the working directory when path is empty.
func Load(path string) (*AppConfig, error) {
	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "./config/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every enabled section's tags plus the cross-section rules
// that tags alone cannot express.
func Validate(cfg *AppConfig) error {
	v := validator.New()
	sections := []struct {
		key string
		val any
	}{
		{"street", cfg.Street},
		{"boarding", cfg.Boarding},
		{"transit", cfg.Transit},
		{"gbfs", cfg.Gbfs},
		{"geofence", cfg.Geofence},
	}
	for _, s := range sections {
		if isNil(s.val) {
			continue
		}
		if err := v.Struct(s.val); err != nil {
			return fmt.Errorf("config section %q: %w", s.key, err)
		}
	}
	if err := v.Struct(cfg.Tracker); err != nil {
		return fmt.Errorf("config section %q: %w", "tracker", err)
	}
	if cfg.Boarding != nil && cfg.Transit == nil {
		return fmt.Errorf("config section %q: boarding requires a transit section for its schedule source", "boarding")
	}
	return nil
}

func isNil(v any) bool {
	switch t := v.(type) {
	case *StreetConfig:
		return t == nil
	case *BoardingConfig:
		return t == nil
	case *TransitConfig:
		return t == nil
	case *GbfsConfig:
		return t == nil
	case *GeofenceConfig:
		return t == nil
	default:
		return v == nil
	}
}
