// Package settings loads message store connection settings from a JSON or
// YAML file and renders them as a connection string.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPathVar names the environment variable consulted for the settings file
// path when none is given explicitly.
const EnvPathVar = "MESSAGE_STORE_SETTINGS_PATH"

// Settings holds the connection parameters for the message store database.
type Settings struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Database string `json:"dbname" yaml:"dbname"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	SSLMode  string `json:"sslmode" yaml:"sslmode"`
}

// Default returns settings pointing at a local message store database.
func Default() *Settings {
	return &Settings{
		Host:     "localhost",
		Port:     5432,
		Database: "message_store",
		User:     "message_store",
		SSLMode:  "disable",
	}
}

// Load reads settings from the given file, falling back to the path in
// MESSAGE_STORE_SETTINGS_PATH when path is empty, and to defaults when
// neither is set. The file format is selected by extension: .yaml/.yml is
// parsed as YAML, anything else as JSON.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = os.Getenv(EnvPathVar)
	}
	if path == "" {
		return Default(), nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(contents, settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(contents, settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
	}

	return settings, nil
}

// ConnectionString renders the settings as a libpq-style connection string.
// Empty fields are omitted.
func (s *Settings) ConnectionString() string {
	var parts []string

	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+value)
		}
	}

	add("host", s.Host)
	if s.Port != 0 {
		parts = append(parts, fmt.Sprintf("port=%d", s.Port))
	}
	add("dbname", s.Database)
	add("user", s.User)
	add("password", s.Password)
	add("sslmode", s.SSLMode)

	return strings.Join(parts, " ")
}
