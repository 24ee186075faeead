package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "settings.json", `{
		"host": "db.internal",
		"port": 5433,
		"dbname": "message_store",
		"user": "reader",
		"password": "secret"
	}`)

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if settings.Host != "db.internal" || settings.Port != 5433 {
		t.Errorf("Expected host/port from file, got %s:%d", settings.Host, settings.Port)
	}
	if settings.User != "reader" || settings.Password != "secret" {
		t.Errorf("Expected credentials from file, got %s/%s", settings.User, settings.Password)
	}
	// Unset fields keep their defaults
	if settings.SSLMode != "disable" {
		t.Errorf("Expected default sslmode, got %s", settings.SSLMode)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "settings.yaml", "host: db.internal\nport: 5433\nuser: reader\n")

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if settings.Host != "db.internal" || settings.Port != 5433 || settings.User != "reader" {
		t.Errorf("Expected values from YAML file, got %+v", settings)
	}
}

func TestLoad_EnvFallback(t *testing.T) {
	path := writeFile(t, "settings.json", `{"host": "from-env"}`)
	t.Setenv(EnvPathVar, path)

	settings, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if settings.Host != "from-env" {
		t.Errorf("Expected host from env-pointed file, got %s", settings.Host)
	}
}

func TestLoad_NoPathUsesDefaults(t *testing.T) {
	t.Setenv(EnvPathVar, "")

	settings, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if settings.Host != "localhost" || settings.Database != "message_store" {
		t.Errorf("Expected default settings, got %+v", settings)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Expected missing settings file to fail")
	}
}

func TestConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		expected string
	}{
		{
			name: "all fields",
			settings: Settings{
				Host:     "db.internal",
				Port:     5433,
				Database: "message_store",
				User:     "reader",
				Password: "secret",
				SSLMode:  "require",
			},
			expected: "host=db.internal port=5433 dbname=message_store user=reader password=secret sslmode=require",
		},
		{
			name: "empty fields omitted",
			settings: Settings{
				Host:     "localhost",
				Database: "message_store",
			},
			expected: "host=localhost dbname=message_store",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.ConnectionString(); got != tt.expected {
				t.Errorf("ConnectionString() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
