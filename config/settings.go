package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"eventcalendar/internal/datetime"
)

// NotificationOption is one choice of the reminder dropdown.
type NotificationOption struct {
	Minutes int    `yaml:"minutes" json:"minutes"`
	Label   string `yaml:"label" json:"label"`
}

// Settings holds the calendar presentation settings loaded from YAML.
type Settings struct {
	// WeekStart is "sunday" (default) or "monday".
	WeekStart string `yaml:"week_start" json:"week_start"`

	// Timezone is the IANA zone event dates and times are read in.
	Timezone string `yaml:"timezone" json:"timezone"`

	Categories          []string             `yaml:"categories" json:"categories"`
	NotificationOptions []NotificationOption `yaml:"notification_options" json:"notification_options"`

	// Holidays maps YYYY-MM-DD to a holiday name.
	Holidays map[string]string `yaml:"holidays" json:"holidays"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.Normalize()
	return s
}

// Normalize fills missing values with defaults.
func (s *Settings) Normalize() {
	switch strings.ToLower(s.WeekStart) {
	case "monday":
		s.WeekStart = "monday"
	default:
		s.WeekStart = "sunday"
	}
	if s.Timezone == "" {
		s.Timezone = "UTC"
	}
	if len(s.Categories) == 0 {
		s.Categories = []string{"Work", "Personal", "Family", "Other"}
	}
	if len(s.NotificationOptions) == 0 {
		s.NotificationOptions = []NotificationOption{
			{Minutes: 0, Label: "No reminder"},
			{Minutes: 1, Label: "1 minute before"},
			{Minutes: 10, Label: "10 minutes before"},
			{Minutes: 60, Label: "1 hour before"},
			{Minutes: 120, Label: "2 hours before"},
			{Minutes: 1440, Label: "1 day before"},
		}
	}
	if s.Holidays == nil {
		s.Holidays = map[string]string{}
	}
}

// Validate reports invalid holiday dates and time zones.
func (s *Settings) Validate() error {
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	for day := range s.Holidays {
		if _, err := datetime.ParseDate(day); err != nil {
			return fmt.Errorf("invalid holiday date %q: %w", day, err)
		}
	}
	return nil
}

// WeekStartDay returns the configured first day of the week.
func (s *Settings) WeekStartDay() time.Weekday {
	if s.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// Location returns the configured time zone, UTC when it cannot be loaded.
func (s *Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadSettings reads settings from path. A missing file yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	s := &Settings{}
	if err := yaml.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}
