// ============================================================================
// calc - Interaktiver Rechner
// ============================================================================
//
// Package:     config
// Description: Typed application configuration with defaults, file
//              discovery and CALC_* environment overrides
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/msto63/calc/foundation/calc/value"
	mdwconfig "github.com/msto63/calc/foundation/core/config"
	mdwerror "github.com/msto63/calc/foundation/core/error"
	mdwlog "github.com/msto63/calc/foundation/core/log"
)

// EnvPrefix is the prefix of environment overrides, e.g. CALC_REPL_PROMPT
const EnvPrefix = "CALC"

// EnvConfigPath names the variable holding an explicit config file path
const EnvConfigPath = "CALC_CONFIG"

// DefaultPaths are tried in order when no path is given
var DefaultPaths = []string{
	"./configs/config.toml",
	"./configs/config.yaml",
	"~/.config/calc/config.toml",
}

// Config holds the complete application configuration
type Config struct {
	General   GeneralConfig          `toml:"general" yaml:"general"`
	REPL      REPLConfig             `toml:"repl" yaml:"repl"`
	Server    ServerConfig           `toml:"server" yaml:"server"`
	Constants map[string]interface{} `toml:"constants" yaml:"constants"`

	// source is the file the configuration was read from, if any
	source string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name           string `toml:"name" yaml:"name"`
	LogLevel       string `toml:"log_level" yaml:"log_level"`
	LogFormat      string `toml:"log_format" yaml:"log_format"`
	MaxInputLength int    `toml:"max_input_length" yaml:"max_input_length"`
}

// REPLConfig holds settings of the interactive front ends
type REPLConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
	ShowAST     bool   `toml:"show_ast" yaml:"show_ast"`
	Color       bool   `toml:"color" yaml:"color"`
}

// ServerConfig holds the websocket server settings
type ServerConfig struct {
	Host           string   `toml:"host" yaml:"host"`
	Port           int      `toml:"port" yaml:"port"`
	ReadTimeout    Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout" yaml:"write_timeout"`
	PingInterval   Duration `toml:"ping_interval" yaml:"ping_interval"`
	MaxSessions    int      `toml:"max_sessions" yaml:"max_sessions"`
	ParseCacheSize int      `toml:"parse_cache_size" yaml:"parse_cache_size"`
	AllowedOrigins []string `toml:"allowed_origins" yaml:"allowed_origins"`
}

// Duration wraps time.Duration for TOML and YAML text encoding
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

// Default returns the built-in configuration without file or environment input
func Default() *Config {
	cfg := &Config{REPL: REPLConfig{Color: true}}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML or YAML file
func Load(path string) (*Config, error) {
	path = mdwconfig.ExpandHome(os.ExpandEnv(path))

	loader, err := mdwconfig.LoadWithOptions(path, mdwconfig.LoadOptions{
		Format:    mdwconfig.FormatAuto,
		EnvPrefix: EnvPrefix,
	})
	if err != nil {
		return nil, err
	}
	return FromLoader(loader)
}

// Parse builds the configuration from TOML or YAML text. CALC_* overrides
// apply as for files.
func Parse(content string, format string) (*Config, error) {
	f := mdwconfig.FormatTOML
	switch strings.ToLower(format) {
	case "", "toml":
	case "yaml", "yml":
		f = mdwconfig.FormatYAML
	default:
		return nil, mdwerror.New(fmt.Sprintf("unsupported config format: %s", format)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config.Parse")
	}

	loader, err := mdwconfig.LoadFromString(content, f)
	if err != nil {
		return nil, err
	}
	return FromLoader(loader.WithEnvPrefix(EnvPrefix))
}

// LoadFromEnv resolves the configuration file: the explicit path if given,
// then CALC_CONFIG, then DefaultPaths. Without any file the defaults are used.
func LoadFromEnv(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	loader, err := mdwconfig.Discover(mdwconfig.DiscoveryOptions{
		Candidates: DefaultPaths,
		EnvPrefix:  EnvPrefix,
	})
	if err != nil {
		return nil, err
	}
	return FromLoader(loader)
}

// FromLoader builds the typed configuration from a generic loader.
// The loader applies environment overrides for every scalar key.
func FromLoader(l *mdwconfig.Config) (*Config, error) {
	cfg := &Config{
		General: GeneralConfig{
			Name:           l.GetString("general.name"),
			LogLevel:       l.GetString("general.log_level"),
			LogFormat:      l.GetString("general.log_format"),
			MaxInputLength: l.GetInt("general.max_input_length"),
		},
		REPL: REPLConfig{
			Prompt:      l.GetString("repl.prompt"),
			HistoryFile: l.GetString("repl.history_file"),
			ShowAST:     l.GetBool("repl.show_ast"),
			Color:       l.GetBool("repl.color", true),
		},
		Server: ServerConfig{
			Host:           l.GetString("server.host"),
			Port:           l.GetInt("server.port"),
			ReadTimeout:    Duration{l.GetDuration("server.read_timeout")},
			WriteTimeout:   Duration{l.GetDuration("server.write_timeout")},
			PingInterval:   Duration{l.GetDuration("server.ping_interval")},
			MaxSessions:    l.GetInt("server.max_sessions"),
			ParseCacheSize: l.GetInt("server.parse_cache_size"),
			AllowedOrigins: l.GetStringSlice("server.allowed_origins"),
		},
		source: l.FilePath(),
	}

	constants, err := loadConstants(l)
	if err != nil {
		return nil, err
	}
	cfg.Constants = constants

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConstants reads the [constants] table. Integers stay int64 and
// floats stay float64; CALC_CONSTANTS_<NAME> overrides a single constant.
func loadConstants(l *mdwconfig.Config) (map[string]interface{}, error) {
	raw := l.GetMap("constants")
	constants := make(map[string]interface{}, len(raw))
	for _, name := range l.Keys("constants") {
		key := "constants." + name
		switch v := raw[name].(type) {
		case int64, int:
			constants[name] = int64(l.GetInt(key))
		case float64:
			constants[name] = l.GetFloat(key)
		default:
			return nil, mdwerror.New(fmt.Sprintf("constant %s must be a number, got %T", name, v)).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.FromLoader").
				WithDetail("constant", name)
		}
	}
	return constants, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "calc"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}
	if c.General.MaxInputLength == 0 {
		c.General.MaxInputLength = 4096
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = ">> "
	}
	if c.REPL.HistoryFile == "" {
		c.REPL.HistoryFile = "~/.calc_history"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8765
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 60 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 10 * time.Second
	}
	if c.Server.PingInterval.Duration == 0 {
		c.Server.PingInterval.Duration = 30 * time.Second
	}
	if c.Server.MaxSessions == 0 {
		c.Server.MaxSessions = 64
	}
	if c.Server.ParseCacheSize == 0 {
		c.Server.ParseCacheSize = 1024
	}

	if c.Constants == nil {
		c.Constants = make(map[string]interface{})
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.REPL.HistoryFile = mdwconfig.ExpandHome(os.ExpandEnv(c.REPL.HistoryFile))
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat)
	}
	if c.General.MaxInputLength < 0 {
		return invalid("general.max_input_length", c.General.MaxInputLength)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port", c.Server.Port)
	}
	if c.Server.MaxSessions < 0 {
		return invalid("server.max_sessions", c.Server.MaxSessions)
	}
	return nil
}

func invalid(key string, v interface{}) error {
	return mdwerror.New(fmt.Sprintf("invalid value for %s: %v", key, v)).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("key", key)
}

// ConstantValues returns the configured constants as calculator numbers
func (c *Config) ConstantValues() map[string]value.Number {
	values := make(map[string]value.Number, len(c.Constants))
	for name, v := range c.Constants {
		switch n := v.(type) {
		case int64:
			values[name] = value.Int(n)
		case float64:
			values[name] = value.Float(n)
		}
	}
	return values
}

// ConstantNames returns the constant names in sorted order
func (c *Config) ConstantNames() []string {
	names := make([]string, 0, len(c.Constants))
	for name := range c.Constants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Address returns host:port of the websocket server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Source returns the file the configuration was loaded from, or ""
func (c *Config) Source() string {
	return c.source
}

// Encode writes the configuration as "toml" or "yaml"
func (c *Config) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "toml":
		return toml.NewEncoder(w).Encode(c)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return mdwerror.New(fmt.Sprintf("unsupported config format: %s", format)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config.Encode")
	}
}
