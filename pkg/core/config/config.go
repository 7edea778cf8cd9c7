package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	bzerror "github.com/VDFOREVER/blaze/foundation/core/error"
	bzlog "github.com/VDFOREVER/blaze/foundation/core/log"
)

// Environment variables read by the loader
const (
	EnvConfigPath = "BLAZE_CONFIG"
	EnvLogLevel   = "BLAZE_LOG_LEVEL"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Script  ScriptConfig  `toml:"script" yaml:"script"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	Storage StorageConfig `toml:"storage" yaml:"storage"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
	DataDir     string `toml:"data_dir" yaml:"data_dir"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format"`
}

// ScriptConfig holds lexer and parser settings
type ScriptConfig struct {
	SourceLabel     string `toml:"source_label" yaml:"source_label"`
	MaxSourceLength int    `toml:"max_source_length" yaml:"max_source_length"`

	// CacheSize bounds the server's result cache; a negative size disables it
	CacheSize int      `toml:"cache_size" yaml:"cache_size"`
	CacheTTL  Duration `toml:"cache_ttl" yaml:"cache_ttl"`
}

// ServerConfig holds the script server settings
type ServerConfig struct {
	Host            string   `toml:"host" yaml:"host"`
	GRPCPort        int      `toml:"grpc_port" yaml:"grpc_port"`
	HTTPPort        int      `toml:"http_port" yaml:"http_port"`
	ReadTimeout     Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxMessageSize  int      `toml:"max_message_size" yaml:"max_message_size"`
	AllowedOrigins  []string `toml:"allowed_origins" yaml:"allowed_origins"`
}

// StorageConfig holds datablaze settings
type StorageConfig struct {
	Path          string `toml:"path" yaml:"path"`
	RecordHistory bool   `toml:"record_history" yaml:"record_history"`
	HistoryLimit  int    `toml:"history_limit" yaml:"history_limit"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns a configuration that works without a file
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension.
// Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bzerror.Newf("config file not found: %s", path).
				WithCode(bzerror.CodeNotFound).
				WithOperation("config.Load")
		}
		return nil, bzerror.Wrap(err, "read config").
			WithCode(bzerror.CodeConfigError).
			WithOperation("config.Load")
	}

	cfg := Default()
	if err := decode(path, data, cfg); err != nil {
		return nil, bzerror.Wrap(err, "failed to parse config").
			WithCode(bzerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to BLAZE_CONFIG and then to the
// defaults when neither names a file.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		cfg := Default()
		cfg.applyEnv()
		return cfg, cfg.Validate()
	}
	return Load(path)
}

// Save writes the configuration as TOML or YAML, chosen by extension
func (c *Config) Save(path string) error {
	var buf bytes.Buffer

	switch formatOf(path) {
	case "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return bzerror.Wrap(err, "encode config").WithCode(bzerror.CodeConfigError)
		}
		_ = enc.Close()
	case "toml":
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return bzerror.Wrap(err, "encode config").WithCode(bzerror.CodeConfigError)
		}
	default:
		return unsupportedFormat(path)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return bzerror.Wrap(err, "write config").
			WithCode(bzerror.CodeConfigError).
			WithDetail("path", path)
	}
	return nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch formatOf(path) {
	case "yaml":
		return yaml.Unmarshal(data, cfg)
	case "toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return unsupportedFormat(path)
	}
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}

func unsupportedFormat(path string) error {
	return bzerror.Newf("unsupported config format %q, use .toml, .yaml or .yml", filepath.Ext(path)).
		WithCode(bzerror.CodeConfigError).
		WithDetail("path", path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.Name == "" {
		c.General.Name = "blaze"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	if c.Script.SourceLabel == "" {
		c.Script.SourceLabel = "Shell"
	}
	if c.Script.MaxSourceLength == 0 {
		c.Script.MaxSourceLength = 64 * 1024
	}
	if c.Script.CacheSize == 0 {
		c.Script.CacheSize = 1024
	}
	if c.Script.CacheTTL.Duration == 0 {
		c.Script.CacheTTL.Duration = 5 * time.Minute
	}

	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = 3300
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 3301
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 30 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}
	if c.Server.MaxMessageSize == 0 {
		c.Server.MaxMessageSize = 4 * 1024 * 1024
	}

	if c.Storage.HistoryLimit == 0 {
		c.Storage.HistoryLimit = 20
	}
}

// applyEnv applies environment overrides
func (c *Config) applyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.General.LogLevel = level
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Storage.Path = os.ExpandEnv(c.Storage.Path)
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return bzerror.Newf(format, args...).
			WithCode(bzerror.CodeInvalidConfig).
			WithOperation("config.Validate")
	}

	if _, err := bzlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level: unknown level %q", c.General.LogLevel)
	}
	if _, err := bzlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format: unknown format %q", c.General.LogFormat)
	}
	if strings.TrimSpace(c.Script.SourceLabel) == "" {
		return invalid("script.source_label must not be empty")
	}
	if c.Script.MaxSourceLength < 0 {
		return invalid("script.max_source_length must not be negative")
	}
	if c.Script.CacheTTL.Duration < 0 {
		return invalid("script.cache_ttl must not be negative")
	}
	for name, port := range map[string]int{"server.grpc_port": c.Server.GRPCPort, "server.http_port": c.Server.HTTPPort} {
		if port < 1 || port > 65535 {
			return invalid("%s: port %d out of range", name, port)
		}
	}
	if c.Server.GRPCPort == c.Server.HTTPPort {
		return invalid("server.grpc_port and server.http_port must differ")
	}
	if c.Storage.HistoryLimit < 0 {
		return invalid("storage.history_limit must not be negative")
	}
	return nil
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() bzlog.Level {
	level, _ := bzlog.ParseLevel(c.General.LogLevel)
	return level
}

// LogFormat returns the parsed log format
func (c *Config) LogFormat() bzlog.Format {
	format, _ := bzlog.ParseFormat(c.General.LogFormat)
	return format
}

// GRPCAddress returns the listen address of the gRPC server
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}

// HTTPAddress returns the listen address of the HTTP server
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}
