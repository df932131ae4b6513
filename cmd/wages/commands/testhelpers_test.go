// ABOUTME: Shared helpers for command tests
// ABOUTME: Runs the root command against a temp dataset with a clean environment

package commands

import (
	"bytes"
	"testing"

	"github.com/harper/wage-explorer/internal/dataset/datasettest"
)

// isolateEnv clears wage settings so tests never read a real dataset or config
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WAGES_CONFIG", "WAGES_DATA", "WAGES_DATA_FORMAT", "WAGES_SQL_TABLE",
		"WAGES_LOAD_TIMEOUT", "WAGES_SNAPSHOT_DB", "WAGES_LISTEN_ADDR", "WAGES_LIST_LIMIT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

// runCLI executes the root command with args and returns stdout
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--quiet"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// withDataset returns args prefixed with --data pointing at a fresh CSV
func withDataset(t *testing.T, args ...string) []string {
	t.Helper()
	return append([]string{"--data", datasettest.WriteCSV(t)}, args...)
}
