package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/rc-runtime/arena"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rcplay.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
mode = "unchecked"
scenario = "weak-cycle"
verbose = true
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Mode != arena.Unchecked {
		t.Errorf("Mode = %v, want Unchecked", cfg.Mode)
	}
	if cfg.Scenario != "weak-cycle" {
		t.Errorf("Scenario = %q, want weak-cycle", cfg.Scenario)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, ``)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Mode != arena.Checked {
		t.Errorf("Mode = %v, want Checked default", cfg.Mode)
	}
	if cfg.Scenario != "" || cfg.Verbose {
		t.Errorf("unexpected non-defaults: %+v", cfg)
	}
}

func TestLoadConfig_BadMode(t *testing.T) {
	path := writeConfig(t, `mode = "paranoid"`)

	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    arena.Mode
		wantErr bool
	}{
		{"checked", arena.Checked, false},
		{"UNCHECKED", arena.Unchecked, false},
		{"  checked ", arena.Checked, false},
		{"", arena.Checked, false},
		{"bogus", arena.Checked, true},
	}

	for _, tt := range tests {
		got, err := parseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFindScenario(t *testing.T) {
	if _, ok := findScenario("strong-cycle"); !ok {
		t.Error("strong-cycle scenario should exist")
	}
	if _, ok := findScenario("nope"); ok {
		t.Error("unknown scenario should not be found")
	}
}

func TestScenariosRunClean(t *testing.T) {
	for _, s := range scenarios {
		for _, mode := range []arena.Mode{arena.Checked, arena.Unchecked} {
			t.Run(s.name+"/"+mode.String(), func(t *testing.T) {
				if err := s.run(mode); err != nil {
					t.Fatalf("scenario failed: %v", err)
				}
			})
		}
	}
}
