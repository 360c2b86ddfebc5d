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
	root := writeInstanceFixture(t)
	binaryPath := buildBinary(t)

	_, stderr, err := runYamcl(t, binaryPath, home, "settings", "set-root", root)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runYamcl(t, binaryPath, home, "instances", "list", "--json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, `"name": "Smoke Test"`)
	assert.Contains(t, stdout, `"mc_version": "1.20.4"`)

	_, err = os.Stat(filepath.Join(root, "smoke", "yamcl-data.json"))
	assert.NoError(t, err, "instance metadata should be created on first gather")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "yamcl-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/yamcl")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build yamcl binary: %s", string(output))
	return binaryPath
}

func runYamcl(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
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

func writeInstanceFixture(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "smoke")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "instance.cfg"), []byte("name=Smoke Test\niconKey=default\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mmc-pack.json"), []byte(`{"components":[{"uid":"net.minecraft","version":"1.20.4"}]}`), 0o644))

	return root
}
