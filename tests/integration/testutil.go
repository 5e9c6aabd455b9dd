// Package integration runs the built puzzler binary end to end.
package integration

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// puzzlerBin is the path to the built puzzler binary.
	puzzlerBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetPuzzlerBin sets the path to the puzzler binary (called from TestMain).
func SetPuzzlerBin(path string) {
	puzzlerBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated environment with its own config directory,
// data directory, and word list.
type TestEnv struct {
	t         *testing.T
	TempDir   string
	Config    string
	DataDir   string
	WordsPath string
}

// NewTestEnv creates a new isolated test environment whose config.yaml
// points at a word list written from words.
func NewTestEnv(t *testing.T, words []string) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build puzzler: %v", buildErr)
	}
	if puzzlerBin == "" {
		t.Fatal("puzzler binary not built (puzzlerBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")
	wordsPath := filepath.Join(tempDir, "words.txt")

	var buf bytes.Buffer
	for _, w := range words {
		buf.WriteString(w)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(wordsPath, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write word list: %v", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "dictionary: " + wordsPath + "\ndata_dir: " + dataDir + "\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:         t,
		TempDir:   tempDir,
		Config:    configDir,
		DataDir:   dataDir,
		WordsPath: wordsPath,
	}
}

// CmdResult holds the result of a puzzler command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunPuzzler executes the puzzler CLI with the given arguments.
func (e *TestEnv) RunPuzzler(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config}, args...)
	cmd := exec.Command(puzzlerBin, allArgs...)
	cmd.Env = append(os.Environ(), "PUZZLER_DATA_DIR=", "PUZZLER_CONFIG_DIR=")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run puzzler: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunPuzzler executes the puzzler CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRunPuzzler(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunPuzzler(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("puzzler %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// Run represents a run record for JSON parsing.
type Run struct {
	RunID     string   `json:"run_id"`
	Seed      uint64   `json:"seed"`
	Words     []string `json:"words"`
	Attempts  int      `json:"attempts"`
	State     string   `json:"state"`
	Board     string   `json:"board"`
	ElapsedMS int64    `json:"elapsed_ms"`
}

// ReadJSONLines parses output holding one JSON object per line.
func ReadJSONLines[T any](t *testing.T, out string) []T {
	t.Helper()

	var results []T
	scanner := bufio.NewScanner(bytes.NewBufferString(out))
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record T
		if err := json.Unmarshal(line, &record); err != nil {
			t.Fatalf("failed to parse JSON line %q: %v", line, err)
		}
		results = append(results, record)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to scan output: %v", err)
	}
	return results
}

// ReadJSONLFile reads a JSONL file (one JSON object per line) and returns a slice.
func ReadJSONLFile[T any](t *testing.T, path string) []T {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read JSONL file %s: %v", path, err)
	}
	return ReadJSONLines[T](t, string(data))
}
