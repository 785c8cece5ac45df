package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	writeScript(t, dir, name, fmt.Sprintf("exit %d\n", exitCode))
}

// WriteStubWithOutput writes a stub that prints stdout and stderr, then exits with exitCode.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithOutput(t *testing.T, dir string, name string, stdout string, stderr string, exitCode int) {
	t.Helper()
	body := fmt.Sprintf("printf '%%s' %s\nprintf '%%s' %s >&2\nexit %d\n", shellQuote(stdout), shellQuote(stderr), exitCode)
	writeScript(t, dir, name, body)
}

// WriteRecordingStub writes a stub that appends its arguments, one invocation per line,
// to logPath and prints stdout. Returns the path of the stub.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteRecordingStub(t *testing.T, dir string, name string, logPath string, stdout string) string {
	t.Helper()
	body := fmt.Sprintf("echo \"$*\" >> %s\nprintf '%%s' %s\n", shellQuote(logPath), shellQuote(stdout))
	return writeScript(t, dir, name, body)
}

// ReadLines returns the non-empty lines of path, or nil when the file does not exist.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read %s: %v", path, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
// t is the active test; dir is the temporary working directory for fn.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}

// WriteFile writes content to root/rel, creating parent directories.
func WriteFile(t *testing.T, root string, rel string, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// writeScript writes an executable shell script into dir, creating dir when missing.
func writeScript(t *testing.T, dir string, name string, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	content := []byte("#!/bin/sh\n" + body)
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
