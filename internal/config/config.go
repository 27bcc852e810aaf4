package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Strava  StravaConfig  `json:"strava"`
	Garmin  GarminConfig  `json:"garmin"`
	Targets TargetsConfig `json:"targets"`
	API     APIConfig     `json:"api"`
	Sync    SyncConfig    `json:"sync"`
}

// StravaConfig holds Strava API credentials
type StravaConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// GarminConfig holds the Garmin Connect API token
type GarminConfig struct {
	Token string `json:"token"`
}

// TargetsConfig holds the classification thresholds and weekly goals.
// Every cutoff is user-tunable; the defaults below are the documented
// starting point, not hidden constants.
type TargetsConfig struct {
	Zone2HRMin           float64 `json:"zone2_hr_min"`
	Zone2HRMax           float64 `json:"zone2_hr_max"`
	Zone2MinDurationMin  float64 `json:"zone2_min_duration_minutes"`
	VO2MaxHRMin          float64 `json:"vo2max_hr_min"`
	VO2MaxMinDurationMin float64 `json:"vo2max_min_duration_minutes"`
	VO2MaxMaxDurationMin float64 `json:"vo2max_max_duration_minutes"`

	Zone2SessionsPerWeek    int     `json:"zone2_sessions_per_week"`
	StrengthSessionsPerWeek int     `json:"strength_sessions_per_week"`
	StepsPerDay             float64 `json:"steps_per_day"`
	MaxGapDays              float64 `json:"max_gap_days"`
}

// APIConfig holds the REST API settings
type APIConfig struct {
	ListenAddr string `json:"listen_addr"`
}

// SyncConfig holds sync behavior settings
type SyncConfig struct {
	// Schedule is a cron expression for the daemon's daily sync
	Schedule string `json:"schedule"`
	// HistoryDays is how far back a historical sync reaches
	HistoryDays int `json:"history_days"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Targets: TargetsConfig{
			Zone2HRMin:              120,
			Zone2HRMax:              140,
			Zone2MinDurationMin:     40,
			VO2MaxHRMin:             170,
			VO2MaxMinDurationMin:    25,
			VO2MaxMaxDurationMin:    50,
			Zone2SessionsPerWeek:    3,
			StrengthSessionsPerWeek: 3,
			StepsPerDay:             8000,
			MaxGapDays:              2.0,
		},
		API: APIConfig{
			ListenAddr: ":8000",
		},
		Sync: SyncConfig{
			Schedule:    "0 6 * * *",
			HistoryDays: 90,
		},
	}
}

// Load reads the configuration from ~/.longevity/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in missing values with the documented defaults
func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Targets.Zone2HRMin == 0 {
		cfg.Targets.Zone2HRMin = defaults.Targets.Zone2HRMin
	}
	if cfg.Targets.Zone2HRMax == 0 {
		cfg.Targets.Zone2HRMax = defaults.Targets.Zone2HRMax
	}
	if cfg.Targets.Zone2MinDurationMin == 0 {
		cfg.Targets.Zone2MinDurationMin = defaults.Targets.Zone2MinDurationMin
	}
	if cfg.Targets.VO2MaxHRMin == 0 {
		cfg.Targets.VO2MaxHRMin = defaults.Targets.VO2MaxHRMin
	}
	if cfg.Targets.VO2MaxMinDurationMin == 0 {
		cfg.Targets.VO2MaxMinDurationMin = defaults.Targets.VO2MaxMinDurationMin
	}
	if cfg.Targets.VO2MaxMaxDurationMin == 0 {
		cfg.Targets.VO2MaxMaxDurationMin = defaults.Targets.VO2MaxMaxDurationMin
	}
	if cfg.Targets.Zone2SessionsPerWeek == 0 {
		cfg.Targets.Zone2SessionsPerWeek = defaults.Targets.Zone2SessionsPerWeek
	}
	if cfg.Targets.StrengthSessionsPerWeek == 0 {
		cfg.Targets.StrengthSessionsPerWeek = defaults.Targets.StrengthSessionsPerWeek
	}
	if cfg.Targets.StepsPerDay == 0 {
		cfg.Targets.StepsPerDay = defaults.Targets.StepsPerDay
	}
	if cfg.Targets.MaxGapDays == 0 {
		cfg.Targets.MaxGapDays = defaults.Targets.MaxGapDays
	}
	if cfg.API.ListenAddr == "" {
		cfg.API.ListenAddr = defaults.API.ListenAddr
	}
	if cfg.Sync.Schedule == "" {
		cfg.Sync.Schedule = defaults.Sync.Schedule
	}
	if cfg.Sync.HistoryDays == 0 {
		cfg.Sync.HistoryDays = defaults.Sync.HistoryDays
	}
}

// Save writes the configuration to ~/.longevity/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Strava = StravaConfig{
		ClientID:     "YOUR_CLIENT_ID",
		ClientSecret: "YOUR_CLIENT_SECRET",
	}
	example.Garmin = GarminConfig{
		Token: "YOUR_GARMIN_TOKEN",
	}

	return Save(&example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if !c.StravaConfigured() && !c.GarminConfigured() {
		return errors.New("at least one data source is required - set strava.client_id/client_secret or garmin.token")
	}

	if c.Targets.Zone2HRMin >= c.Targets.Zone2HRMax {
		return fmt.Errorf("targets.zone2_hr_min (%v) must be less than targets.zone2_hr_max (%v)",
			c.Targets.Zone2HRMin, c.Targets.Zone2HRMax)
	}
	if c.Targets.VO2MaxMinDurationMin >= c.Targets.VO2MaxMaxDurationMin {
		return fmt.Errorf("targets.vo2max_min_duration_minutes (%v) must be less than targets.vo2max_max_duration_minutes (%v)",
			c.Targets.VO2MaxMinDurationMin, c.Targets.VO2MaxMaxDurationMin)
	}
	if c.Targets.MaxGapDays <= 0 {
		return fmt.Errorf("targets.max_gap_days must be positive, got %v", c.Targets.MaxGapDays)
	}

	return nil
}

// StravaConfigured reports whether Strava credentials are usable
func (c *Config) StravaConfigured() bool {
	return c.Strava.ClientID != "" && c.Strava.ClientID != "YOUR_CLIENT_ID" &&
		c.Strava.ClientSecret != "" && c.Strava.ClientSecret != "YOUR_CLIENT_SECRET"
}

// GarminConfigured reports whether a Garmin token is usable
func (c *Config) GarminConfigured() bool {
	return c.Garmin.Token != "" && c.Garmin.Token != "YOUR_GARMIN_TOKEN"
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".longevity", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".longevity"), nil
}
