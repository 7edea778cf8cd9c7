package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bzerror "github.com/VDFOREVER/blaze/foundation/core/error"
	bzlog "github.com/VDFOREVER/blaze/foundation/core/log"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{5 * time.Minute}
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "5m0s", string(text))
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvLogLevel, "")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "blaze", cfg.General.Name)
	assert.Equal(t, "info", cfg.General.LogLevel)
	assert.Equal(t, "Shell", cfg.Script.SourceLabel)
	assert.Equal(t, 64*1024, cfg.Script.MaxSourceLength)
	assert.Equal(t, 1024, cfg.Script.CacheSize)
	assert.Equal(t, 5*time.Minute, cfg.Script.CacheTTL.Duration)
	assert.Equal(t, 3300, cfg.Server.GRPCPort)
	assert.Equal(t, 3301, cfg.Server.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout.Duration)
	assert.Equal(t, 20, cfg.Storage.HistoryLimit)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_TOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "blaze.toml", `
[general]
log_level = "debug"
log_format = "json"

[script]
source_label = "Tests"

[server]
host = "127.0.0.1"
grpc_port = 9000
read_timeout = "5s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, bzlog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, bzlog.FormatJSON, cfg.LogFormat())
	assert.Equal(t, "Tests", cfg.Script.SourceLabel)
	assert.Equal(t, "127.0.0.1:9000", cfg.GRPCAddress())
	assert.Equal(t, "127.0.0.1:3301", cfg.HTTPAddress())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout.Duration)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout.Duration)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "blaze.yaml", `
general:
  environment: production
script:
  max_source_length: 128
server:
  write_timeout: 1m
storage:
  path: ${HOME}/groceries.db
  record_history: true
`)
	t.Setenv("HOME", "/home/blaze")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.General.Environment)
	assert.Equal(t, 128, cfg.Script.MaxSourceLength)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout.Duration)
	assert.Equal(t, "/home/blaze/groceries.db", cfg.Storage.Path)
	assert.True(t, cfg.Storage.RecordHistory)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name     string
		file     string
		content  string
		wantCode bzerror.Code
	}{
		{"unsupported extension", "blaze.ini", "name=x", bzerror.CodeConfigError},
		{"broken toml", "blaze.toml", "[general", bzerror.CodeConfigError},
		{"broken duration", "blaze.yml", "server:\n  read_timeout: soon\n", bzerror.CodeConfigError},
		{"unknown level", "blaze.toml", "[general]\nlog_level = \"loud\"\n", bzerror.CodeInvalidConfig},
		{"port clash", "blaze.toml", "[server]\ngrpc_port = 4000\nhttp_port = 4000\n", bzerror.CodeInvalidConfig},
		{"port range", "blaze.toml", "[server]\nhttp_port = 70000\n", bzerror.CodeInvalidConfig},
		{"negative cache ttl", "blaze.yaml", "script:\n  cache_ttl: -1m\n", bzerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, bzerror.GetCode(err))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.True(t, bzerror.HasCode(err, bzerror.CodeNotFound))
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("no path", func(t *testing.T) {
		clearEnv(t)
		cfg, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("path from environment", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "blaze.toml", "[script]\nsource_label = \"Env\"\n")
		t.Setenv(EnvConfigPath, path)

		cfg, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, "Env", cfg.Script.SourceLabel)
	})

	t.Run("log level override", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvLogLevel, "warn")

		cfg, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, bzlog.LevelWarn, cfg.LogLevel())
	})
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)

	for _, name := range []string{"blaze.toml", "blaze.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Script.SourceLabel = "Saved"
			cfg.Server.ReadTimeout = Duration{42 * time.Second}
			cfg.Server.AllowedOrigins = []string{"http://localhost"}

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, cfg.Save(path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestSave_UnsupportedFormat(t *testing.T) {
	err := Default().Save(filepath.Join(t.TempDir(), "blaze.json"))
	assert.True(t, bzerror.HasCode(err, bzerror.CodeConfigError))
}
