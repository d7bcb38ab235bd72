// File: calc_test.go
// Title: Calculator Engine Tests
// Description: End-to-end tests running input lines through the engine,
//              covering expressions, declarations, built-ins and error
//              isolation between lines.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial engine tests
// - 2025-10-19 v0.2.0: Calculator sessions

package calc

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/msto63/calc/foundation/calc/value"
	mdwerror "github.com/msto63/calc/foundation/core/error"
	mdwlog "github.com/msto63/calc/foundation/core/log"
)

func newTestEngine(t *testing.T, opts ...Options) *Engine {
	t.Helper()
	if len(opts) == 0 {
		opts = []Options{{}}
	}
	if opts[0].Logger == nil {
		opts[0].Logger = mdwlog.NewNop()
	}
	engine, err := NewEngine(opts...)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func bigValue(t *testing.T, text string) value.Number {
	t.Helper()
	n, ok := value.ParseInt(text)
	if !ok {
		t.Fatalf("ParseInt(%q) failed", text)
	}
	return n
}

func TestExecute_Expressions(t *testing.T) {
	tests := []struct {
		input string
		want  value.Number
	}{
		{"7", value.Int(7)},
		{"2+3*4", value.Int(14)},
		{"2*3+4", value.Int(14)},
		{"10 - 4", value.Int(6)},
		{"17 % 5", value.Int(2)},
		{"9 / 3", value.Float(3)},
		{"9223372036854775807 + 1", bigValue(t, "9223372036854775808")},
		{"4611686018427387904 * 4", bigValue(t, "18446744073709551616")},
		{"7 / 2", value.Float(3.5)},
		{"x", value.Int(23)},
		{"pi", value.Float(math.Pi)},
		{"x * 2", value.Int(46)},
		{"pi * 2", value.Float(math.Pi * 2)},
	}

	engine := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := engine.Execute(tt.input)
			if err != nil {
				t.Fatalf("Execute(%q) error = %v", tt.input, err)
			}
			if result.Kind != ResultExpression {
				t.Errorf("Kind = %s, want expression", result.Kind)
			}
			if !result.Value.Equal(tt.want) {
				t.Errorf("Execute(%q) = %s, want %s", tt.input, result.Value, tt.want)
			}
		})
	}
}

func TestExecute_NumericLiteralRoundTrip(t *testing.T) {
	engine := newTestEngine(t)
	for _, text := range []string{"0", "1", "23", "9223372036854775807", "000120", "99999999999999999999"} {
		result, err := engine.Execute(text)
		if err != nil {
			t.Fatalf("Execute(%q) error = %v", text, err)
		}
		want := new(big.Int)
		for _, ch := range text {
			want.Mul(want, big.NewInt(10))
			want.Add(want, big.NewInt(int64(ch-'0')))
		}
		if !result.Value.Equal(value.BigInt(want)) {
			t.Errorf("Execute(%q) = %s, want %d", text, result.Value, want)
		}
	}
}

func TestExecute_DeclarationRoundTrip(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Execute("int a = 5 ;")
	if err != nil {
		t.Fatalf("declaration error = %v", err)
	}
	if result.Kind != ResultDeclaration || result.Name != "a" || !result.Value.Equal(value.Int(5)) {
		t.Errorf("declaration result = %+v", result)
	}
	if result.Tree() != "" {
		t.Errorf("declaration Tree() = %q, want empty", result.Tree())
	}

	result, err = engine.Execute("a")
	if err != nil {
		t.Fatalf("Execute(a) error = %v", err)
	}
	if !result.Value.Equal(value.Int(5)) {
		t.Errorf("a = %s, want 5", result.Value)
	}
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  mdwerror.Code
	}{
		{"blank", "   ", mdwerror.CodeEmptyInput},
		{"division by zero", "5 / 0", mdwerror.CodeDivisionByZero},
		{"modulo by zero", "5 % 0", mdwerror.CodeDivisionByZero},
		{"unknown identifier", "y", mdwerror.CodeUnknownIdentifier},
		{"duplicate built-in", "int x = 1 ;", mdwerror.CodeDuplicateDeclaration},
		{"malformed declaration", "int = 1 ;", mdwerror.CodeMalformedDeclaration},
		{"invalid expression", "1 2", mdwerror.CodeInvalidExpression},
		{"too long", strings.Repeat("1", DefaultMaxInputLength+1), mdwerror.CodeInvalidInput},
	}

	engine := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Execute(tt.input)
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("Execute(%q) error = %v, want %s", tt.input, err, tt.code)
			}
		})
	}
}

func TestExecute_DuplicateDeclaration(t *testing.T) {
	engine := newTestEngine(t, Options{SkipBuiltins: true})

	if _, err := engine.Execute("int x = 1 ;"); err != nil {
		t.Fatalf("first declaration error = %v", err)
	}
	_, err := engine.Execute("int x = 2 ;")
	if !mdwerror.HasCode(err, mdwerror.CodeDuplicateDeclaration) {
		t.Errorf("second declaration error = %v, want DUPLICATE_DECLARATION", err)
	}
}

func TestExecute_UnknownIdentifierOnEmptyEnvironment(t *testing.T) {
	engine := newTestEngine(t, Options{SkipBuiltins: true})
	if _, err := engine.Execute("x"); !mdwerror.HasCode(err, mdwerror.CodeUnknownIdentifier) {
		t.Errorf("Execute(x) error = %v, want UNKNOWN_IDENTIFIER", err)
	}
}

func TestExecute_FailedLineKeepsBindings(t *testing.T) {
	engine := newTestEngine(t)

	lines := []string{"int a = 2 ;", "int b = a / 0 ;", "int c = a * 3 ;"}
	for _, line := range lines {
		engine.Execute(line)
	}

	env := engine.Environment()
	if env.Has("b") {
		t.Error("failed declaration of b must not bind")
	}
	if v, ok := engine.Lookup("c"); !ok || !v.Equal(value.Int(6)) {
		t.Errorf("c = %v, %v; want 6", v, ok)
	}
	if got := strings.Join(env.Names(), ","); got != "x,pi,a,c" {
		t.Errorf("Names() = %s", got)
	}
}

func TestNewEngine_Constants(t *testing.T) {
	engine := newTestEngine(t, Options{
		Constants: map[string]value.Number{
			"e":   value.Float(math.E),
			"two": value.Int(2),
		},
	})

	result, err := engine.Execute("two * x")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.Value.Equal(value.Int(46)) {
		t.Errorf("two * x = %s", result.Value)
	}
	if got := strings.Join(engine.Environment().Names(), ","); got != "x,pi,e,two" {
		t.Errorf("Names() = %s", got)
	}

	_, err = NewEngine(Options{Logger: mdwlog.NewNop(), Constants: map[string]value.Number{"pi": value.Int(3)}})
	if !mdwerror.HasCode(err, mdwerror.CodeDuplicateDeclaration) || !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("conflicting constant error = %v", err)
	}

	_, err = NewEngine(Options{Logger: mdwlog.NewNop(), Constants: map[string]value.Number{"int": value.Int(3)}})
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("keyword constant error = %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	engine := newTestEngine(t)

	expr, tokens, err := engine.Analyze("2+3*4")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(tokens) != 5 {
		t.Errorf("tokens = %v", tokens)
	}
	if expr.String() != "(2 + (3 * 4))" {
		t.Errorf("expr = %s", expr)
	}

	// Analyze does not need bindings
	if _, _, err := engine.Analyze("undefined + 1"); err != nil {
		t.Errorf("Analyze() with unknown names error = %v", err)
	}
}

func TestExecute_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:  mdwlog.LevelDebug,
		Format: mdwlog.FormatText,
		Output: &buf,
	})
	engine := newTestEngine(t, Options{Logger: logger})

	engine.Execute("1/0")

	out := buf.String()
	if !strings.Contains(out, "execute failed") || !strings.Contains(out, "division by zero") {
		t.Errorf("log output missing failure:\n%s", out)
	}
}

type mapCache struct {
	items map[string]interface{}
	hits  int
}

func (c *mapCache) Get(key string) (interface{}, bool) {
	v, ok := c.items[key]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *mapCache) Set(key string, v interface{}) { c.items[key] = v }

func TestExecute_SharedParseCache(t *testing.T) {
	cache := &mapCache{items: map[string]interface{}{}}
	first := newTestEngine(t, Options{ParseCache: cache})
	second := newTestEngine(t, Options{ParseCache: cache})

	if _, err := first.Execute("int a = 2 ;"); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if _, err := second.Execute("int a = 7 ;"); err != nil {
		t.Fatalf("declare: %v", err)
	}

	r1, err := first.Execute("a * x")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	r2, err := second.Execute("a * x")
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	if r1.Value.String() != "46" || r2.Value.String() != "161" {
		t.Errorf("values = %s, %s; cached trees must evaluate per session", r1.Value, r2.Value)
	}
	if cache.hits != 1 || len(cache.items) != 1 {
		t.Errorf("hits = %d, items = %d, want 1, 1", cache.hits, len(cache.items))
	}

	if _, err := first.Execute("1 2"); err == nil {
		t.Fatal("1 2 should fail")
	}
	if len(cache.items) != 1 {
		t.Error("failed parses must not be cached")
	}
}

func TestExecute_ParseCacheKeepsPositions(t *testing.T) {
	cache := &mapCache{items: map[string]interface{}{}}
	engine := newTestEngine(t, Options{ParseCache: cache})

	for _, tt := range []struct {
		line string
		pos  int
	}{
		{"1 + y", 4},
		{"   1 + y", 7},
		{"1 + y", 4},
	} {
		_, err := engine.Execute(tt.line)
		var calcErr *mdwerror.Error
		if !errors.As(err, &calcErr) {
			t.Fatalf("Execute(%q) error = %v, want *Error", tt.line, err)
		}
		if pos, _ := calcErr.Detail("position"); pos != tt.pos {
			t.Errorf("Execute(%q) position = %v, want %d", tt.line, pos, tt.pos)
		}
	}
	if cache.hits != 1 || len(cache.items) != 2 {
		t.Errorf("hits = %d, items = %d, want 1, 2", cache.hits, len(cache.items))
	}
}
