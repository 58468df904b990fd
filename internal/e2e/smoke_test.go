package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runDeepOne(t, binaryPath, home, "track", "https://x.io/a?utm_source=email")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "first session")

	stdout, stderr, err = runDeepOne(t, binaryPath, home, "track", "https://x.io/a")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "returning")

	stdout, stderr, err = runDeepOne(t, binaryPath, home, "history")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "records: 2")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "deepone-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/deepone")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build deepone binary: %s", string(output))
	return binaryPath
}

func runDeepOne(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
