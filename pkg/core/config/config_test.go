package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/msto63/calc/foundation/calc/value"
	mdwerror "github.com/msto63/calc/foundation/core/error"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

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

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.Name != "calc" {
		t.Errorf("General.Name = %v, want calc", cfg.General.Name)
	}
	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.General.MaxInputLength != 4096 {
		t.Errorf("General.MaxInputLength = %v, want 4096", cfg.General.MaxInputLength)
	}
	if cfg.REPL.Prompt != ">> " {
		t.Errorf("REPL.Prompt = %q", cfg.REPL.Prompt)
	}
	if !cfg.REPL.Color {
		t.Error("REPL.Color should default to true")
	}
	if strings.HasPrefix(cfg.REPL.HistoryFile, "~") {
		t.Errorf("REPL.HistoryFile not expanded: %s", cfg.REPL.HistoryFile)
	}
	if cfg.Address() != "127.0.0.1:8765" {
		t.Errorf("Address() = %v", cfg.Address())
	}
	if cfg.Server.PingInterval.Duration != 30*time.Second {
		t.Errorf("Server.PingInterval = %v", cfg.Server.PingInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[general]
log_level = "debug"
max_input_length = 256

[repl]
prompt = "calc> "
color = false

[server]
port = 9000
read_timeout = "5s"
allowed_origins = ["http://localhost"]

[constants]
e = 2.718281828459045
answer = 42
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" || cfg.General.MaxInputLength != 256 {
		t.Errorf("General = %+v", cfg.General)
	}
	if cfg.REPL.Prompt != "calc> " || cfg.REPL.Color {
		t.Errorf("REPL = %+v", cfg.REPL)
	}
	if cfg.Server.Port != 9000 || cfg.Server.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if len(cfg.Server.AllowedOrigins) != 1 {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.General.Name != "calc" {
		t.Errorf("defaults not applied: %+v", cfg.General)
	}
	if cfg.Source() != path {
		t.Errorf("Source() = %q", cfg.Source())
	}

	values := cfg.ConstantValues()
	if !values["answer"].Equal(value.Int(42)) {
		t.Errorf("answer = %s", values["answer"])
	}
	if !values["e"].Equal(value.Float(math.E)) {
		t.Errorf("e = %s", values["e"])
	}
	if names := cfg.ConstantNames(); strings.Join(names, ",") != "answer,e" {
		t.Errorf("ConstantNames() = %v", names)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
general:
  log_format: json
repl:
  show_ast: true
constants:
  three: 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.General.LogFormat != "json" || !cfg.REPL.ShowAST {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.ConstantValues()["three"].Equal(value.Int(3)) {
		t.Errorf("three = %v", cfg.Constants["three"])
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    mdwerror.Code
	}{
		{"bad log level", "[general]\nlog_level = \"loud\"\n", mdwerror.CodeInvalidConfig},
		{"bad port", "[server]\nport = 70000\n", mdwerror.CodeInvalidConfig},
		{"non numeric constant", "[constants]\nname = \"x\"\n", mdwerror.CodeInvalidConfig},
		{"syntax error", "[general\n", mdwerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.toml", tt.content))
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeFile(t, "calc.toml", "[repl]\nprompt = \"env> \"\n")

	t.Setenv(EnvConfigPath, path)
	cfg, err := LoadFromEnv("")
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.REPL.Prompt != "env> " {
		t.Errorf("REPL.Prompt = %q, want value from CALC_CONFIG", cfg.REPL.Prompt)
	}

	explicit := writeFile(t, "explicit.toml", "[repl]\nprompt = \"flag> \"\n")
	cfg, err = LoadFromEnv(explicit)
	if err != nil {
		t.Fatalf("LoadFromEnv(explicit) error = %v", err)
	}
	if cfg.REPL.Prompt != "flag> " {
		t.Errorf("explicit path should win, got %q", cfg.REPL.Prompt)
	}
}

func TestLoadFromEnv_NoFile(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CALC_SERVER_PORT", "9999")

	cfg, err := LoadFromEnv("")
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Source() != "" {
		t.Errorf("Source() = %q, want no file", cfg.Source())
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want env override 9999", cfg.Server.Port)
	}
}

func TestEncode(t *testing.T) {
	cfg := Default()
	cfg.Constants["answer"] = int64(42)

	var buf bytes.Buffer
	if err := cfg.Encode(&buf, "toml"); err != nil {
		t.Fatalf("Encode(toml) error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"[general]", `log_level = "warn"`, `read_timeout = "1m0s"`, "answer = 42"} {
		if !strings.Contains(out, want) {
			t.Errorf("TOML output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := cfg.Encode(&buf, "yaml"); err != nil {
		t.Fatalf("Encode(yaml) error = %v", err)
	}
	if !strings.Contains(buf.String(), "prompt: '>> '") && !strings.Contains(buf.String(), `prompt: ">> "`) {
		t.Errorf("YAML output missing prompt:\n%s", buf.String())
	}

	if err := cfg.Encode(&buf, "ini"); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Encode(ini) error = %v", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  string
		code    mdwerror.Code
	}{
		{"toml", "[repl]\nprompt = \"calc> \"\n", "toml", ""},
		{"yaml", "repl:\n  prompt: 'calc> '\n", "yml", ""},
		{"unknown format", "", "ini", mdwerror.CodeInvalidInput},
		{"broken toml", "[repl\n", "toml", mdwerror.CodeInvalidConfig},
		{"constant not a number", "[constants]\ntau = \"6.28\"\n", "toml", mdwerror.CodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.content, tt.format)
			if tt.code != "" {
				if !mdwerror.HasCode(err, tt.code) {
					t.Errorf("Parse() error = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if cfg.REPL.Prompt != "calc> " || cfg.Source() != "" {
				t.Errorf("cfg = %+v", cfg.REPL)
			}
		})
	}
}

func TestParse_ConstantEnvOverride(t *testing.T) {
	t.Setenv("CALC_CONSTANTS_E", "2.5")
	t.Setenv("CALC_CONSTANTS_ANSWER", "7")

	cfg, err := Parse("[constants]\ne = 2.718281828459045\nanswer = 42\n", "toml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	values := cfg.ConstantValues()
	if !values["e"].Equal(value.Float(2.5)) {
		t.Errorf("e = %s, want 2.5", values["e"])
	}
	if !values["answer"].Equal(value.Int(7)) {
		t.Errorf("answer = %s (%s), want int 7", values["answer"], values["answer"].Kind())
	}
}
