package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gfxport/gos"
)

func runConfig(t *testing.T, path string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := configCmd
	cmd.ResetFlags()
	cmd.Flags().String("config", path, "")
	cmd.SetOut(&out)
	err := cmd.RunE(cmd, nil)
	return out.String(), err
}

func TestConfigPrintsDefaults(t *testing.T) {
	out, err := runConfig(t, "")
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	got, err := gos.DecodeConfig(strings.NewReader(out))
	if err != nil {
		t.Fatalf("DecodeConfig(output) error = %v\n%s", err, out)
	}
	if got != gos.DefaultConfig() {
		t.Fatalf("config output = %+v, want defaults", got)
	}
}

func TestConfigRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[kernel]\nexternal_tick = true\ntick_hz = 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runConfig(t, path); err == nil {
		t.Fatalf("config accepted external_tick with tick_hz 100")
	}
}
