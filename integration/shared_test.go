//go:build basic || database

// Package integration runs the athome binary end to end.
// These tests are excluded from normal test runs due to build tags.
// To run them: go test -tags basic ./integration (add -tags database for MySQL and PostgreSQL)
package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedAthomePath holds the path to a shared athome binary built once for all tests.
	sharedAthomePath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getAthomeBinary returns the path to the athome binary, building it once if needed.
func getAthomeBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "athome-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		athomePath := filepath.Join(tempDir, "athome")
		buildCmd := exec.Command("go", "build", "-o", athomePath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build athome binary: %v\n%s", err, out))
		}

		sharedAthomePath = athomePath
	})

	return sharedAthomePath
}

// runAthome runs the binary in dir with extra environment entries and returns stdout.
func runAthome(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getAthomeBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.Output()
	if err != nil {
		var stderr []byte
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = exitErr.Stderr
		}
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), output, stderr)
	}
	return string(output), err
}

// mustRunAthome is runAthome for steps that must succeed.
func mustRunAthome(t *testing.T, dir string, env []string, args ...string) string {
	t.Helper()
	out, err := runAthome(t, dir, env, args...)
	require.NoError(t, err)
	return out
}

// decode unmarshals JSON command output into T.
func decode[T any](t *testing.T, raw string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(raw), &v), raw)
	return v
}

// scoreOutput is the part of the score report the workflows check.
type scoreOutput struct {
	ClientID string `json:"client_id"`
	Score    int    `json:"score"`
	Category struct {
		Key string `json:"key"`
	} `json:"category"`
	Stats struct {
		TotalVisits int `json:"total_visits"`
	} `json:"stats"`
}

// rankedOutput is one row of the rank output.
type rankedOutput struct {
	Rank     int    `json:"rank"`
	ClientID string `json:"client_id"`
	Score    int    `json:"score"`
}

// storeWorkflow saves two templates, records a visit and ranks the store.
// env must select the backend under test.
func storeWorkflow(t *testing.T, env []string) {
	t.Helper()
	dir := t.TempDir()

	mustRunAthome(t, dir, env, "store", "migrate")

	fullDay := filepath.Join(dir, "full-day.json")
	weekends := filepath.Join(dir, "weekends.json")
	mustRunAthome(t, dir, env, "template", "full-day", "--output-file", fullDay)
	mustRunAthome(t, dir, env, "template", "weekends", "--output-file", weekends)

	saved := decode[scoreOutput](t, mustRunAthome(t, dir, env, "profiles", "save", fullDay, "--client", "c-1", "-o", "json"))
	require.Equal(t, "c-1", saved.ClientID)
	require.Equal(t, 100, saved.Score)
	mustRunAthome(t, dir, env, "profiles", "save", weekends, "--client", "c-2", "-o", "json")

	recorded := decode[scoreOutput](t, mustRunAthome(t, dir, env,
		"record", "--client", "c-2", "--home", "--on-time", "--visit-date", "2024-05-18", "--scheduled", "10:00", "-o", "json"))
	require.Equal(t, 1, recorded.Stats.TotalVisits)

	ranked := decode[[]rankedOutput](t, mustRunAthome(t, dir, env, "rank", "-o", "json"))
	require.Len(t, ranked, 2)
	require.Equal(t, "c-1", ranked[0].ClientID)
	require.Equal(t, 1, ranked[0].Rank)

	mustRunAthome(t, dir, env, "store", "status")
	mustRunAthome(t, dir, env, "profiles", "delete", "c-2")

	ranked = decode[[]rankedOutput](t, mustRunAthome(t, dir, env, "rank", "-o", "json"))
	require.Len(t, ranked, 1)

	mustRunAthome(t, dir, env, "store", "clear")
}
