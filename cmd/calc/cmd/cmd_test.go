package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CALC_CONFIG", "")
	t.Setenv("CALC_GENERAL_LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestEval(t *testing.T) {
	out, errOut, err := run(t, "", "eval", "2+3*4", "int a = 5 ;", "a*2", "2*3+4")
	if err != nil {
		t.Fatalf("eval error = %v (%s)", err, errOut)
	}
	want := "14\na = 5\n10\n10\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestEval_FailingLine(t *testing.T) {
	out, errOut, err := run(t, "", "eval", "1/0", "x")
	if err == nil {
		t.Fatal("eval should fail when a line fails")
	}
	if out != "23\n" {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "DIVISION_BY_ZERO") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestEval_Stdin(t *testing.T) {
	out, _, err := run(t, "int b = x - 3 ;\n\nb / 4\n", "eval")
	if err != nil {
		t.Fatalf("eval error = %v", err)
	}
	if out != "b = 20\n5.0\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestREPL_Piped(t *testing.T) {
	out, _, err := run(t, "int c = 2 ;\nc + pi\n:quit\n", "repl", "--plain")
	if err != nil {
		t.Fatalf("repl error = %v", err)
	}
	if !strings.HasPrefix(out, "c = 2\n5.14159") {
		t.Errorf("stdout = %q", out)
	}
}

func TestConfigShow(t *testing.T) {
	out, _, err := run(t, "", "config", "show", "--format", "yaml")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"prompt: '>> '", "port: 8765"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigCheck(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		format  string
		want    string
		wantErr bool
	}{
		{"toml", "[constants]\ne = 2.5\nanswer = 42\n", "toml", "2 Konstante(n)", false},
		{"yaml", "repl:\n  prompt: 'calc> '\n", "yaml", "0 Konstante(n)", false},
		{"port out of range", "[server]\nport = 70000\n", "toml", "", true},
		{"broken toml", "[general\n", "toml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.stdin, "config", "check", "--format", tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("config check error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("stdout = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "calc v") {
		t.Errorf("stdout = %q", out)
	}
}
