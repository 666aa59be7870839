package config

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:  "empty document uses defaults",
			input: "",
		},
		{
			name: "full document",
			input: `
toolchain:
  required: ">= 0.4"
checker:
  parallelism: 4
  debug: true
`,
		},
		{
			name: "unsatisfied toolchain constraint",
			input: `
toolchain:
  required: ">= 9.0"
`,
			wantErr: "does not satisfy",
		},
		{
			name: "malformed constraint",
			input: `
toolchain:
  required: "not a version"
`,
			wantErr: "invalid toolchain constraint",
		},
		{
			name: "negative parallelism",
			input: `
checker:
  parallelism: -1
`,
			wantErr: "must not be negative",
		},
		{
			name: "lint overrides",
			input: `
checker:
  lints:
    W0001: error
    W0002: hint
`,
		},
		{
			name: "invalid lint level",
			input: `
checker:
  lints:
    W0001: loud
`,
			wantErr: "invalid level",
		},
		{
			name:    "malformed yaml",
			input:   "checker: [",
			wantErr: "parsing config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Parse succeeded, want error containing %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if cfg == nil {
				t.Fatal("Parse returned nil config")
			}
		})
	}
}

func TestParseValues(t *testing.T) {
	cfg, err := Parse([]byte("checker:\n  parallelism: 8\n  debug: true\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Checker.Parallelism != 8 {
		t.Errorf("parallelism = %d, want 8", cfg.Checker.Parallelism)
	}
	if !cfg.Checker.Debug {
		t.Error("debug = false, want true")
	}
}

func TestLintLevels(t *testing.T) {
	cfg, err := Parse([]byte("checker:\n  lints:\n    W0001: error\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	levels := cfg.Checker.LintLevels()
	if len(levels) != 1 {
		t.Fatalf("LintLevels() = %d entries, want 1", len(levels))
	}
	if got := levels["W0001"]; got.String() != "error" {
		t.Errorf("W0001 level = %s, want error", got)
	}

	if levels := Default().Checker.LintLevels(); levels != nil {
		t.Errorf("default LintLevels() = %v, want nil", levels)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Fatal("Load succeeded for a missing file")
	}
}
