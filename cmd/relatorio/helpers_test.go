package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// writeTestConfig writes a configuration file and returns its path.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".relatorio")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// runRoot executes the CLI with args and returns its standard output.
// An empty configuration file is used unless args name one.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	hasConfig := false
	for _, a := range args {
		if a == "-c" || a == "--config" {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append(args, "-c", writeTestConfig(t, "{}\n"))
	}

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writePNG writes a minimal PNG signature file and returns its path.
func writePNG(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	data := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}
