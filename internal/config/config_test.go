// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_LOG_LEVEL": "debug",
		"APP_VERSION":   "1.2.3",

		// Storage has nested prefixes: STORAGE_ + DB_
		"STORAGE_DB_DATABASE_URI": "/var/lib/inventario/inventario.db",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "/var/lib/inventario/inventario.db", cfg.Storage.DB.DSN)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"APP_LOG_LEVEL": "warn",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Empty(t, cfg.App.Version)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": {
			"log_level": "info",
			"version": "2.0.0"
		},
		"storage": {
			"db": { "dsn": "data/inventario.db" }
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, "data/inventario.db", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileMissing(t *testing.T) {
	cfg, err := parseJSON(filepath.Join(t.TempDir(), "no-such-file.json"))
	assert.Nil(t, cfg)
	require.Error(t, err)
}

func TestParseJSON_Malformed(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"storage": `), 0o600))

	cfg, err := parseJSON(p)
	assert.Nil(t, cfg)
	require.Error(t, err)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstSourceWins verifies the merge precedence: a field set by an
// earlier source is not overridden by a later one.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DB: DB{DSN: "from-env.db"}}},
		&StructuredConfig{
			App:     App{LogLevel: "debug"},
			Storage: Storage{DB: DB{DSN: "from-flags.db"}},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

// TestBuild_DefaultsFillGaps verifies that withDefaults supplies the database
// path when no other source sets it.
func TestBuild_DefaultsFillGaps(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
}

func TestWithJSON_MergesFileOnTop(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	jsonBody := `{"app": {"version": "3.1.4"}, "storage": {"db": {"dsn": "json.db"}}}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: p,
		Storage:      Storage{DB: DB{DSN: "env.db"}},
	})

	cfg, err := b.withJSON().build()
	require.NoError(t, err)

	// DSN came from the earlier source, version only from the file.
	assert.Equal(t, "env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "3.1.4", cfg.App.Version)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{
			name: "valid",
			cfg: StructuredConfig{
				App:     App{LogLevel: "info"},
				Storage: Storage{DB: DB{DSN: "inventario.db"}},
			},
		},
		{
			name:    "empty log level is allowed",
			cfg:     StructuredConfig{Storage: Storage{DB: DB{DSN: "inventario.db"}}},
			wantErr: nil,
		},
		{
			name:    "empty dsn",
			cfg:     StructuredConfig{App: App{LogLevel: "info"}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "unknown log level",
			cfg: StructuredConfig{
				App:     App{LogLevel: "loud"},
				Storage: Storage{DB: DB{DSN: "inventario.db"}},
			},
			wantErr: ErrInvalidAppConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",
		"APP_LOG_LEVEL",
		"APP_VERSION",
		"STORAGE_DB_DATABASE_URI",
	}
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}
