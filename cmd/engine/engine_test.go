package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownHandlerGuards(t *testing.T) {
	srv := &http.Server{}
	h := shutdownHandler("secret", srv)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/shutdown", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/shutdown", nil)
	req.RemoteAddr = "192.168.1.5:1234"
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/shutdown", nil)
	req.RemoteAddr = "127.0.0.1:1234"
	req.Header.Set("X-Shutdown-Token", "wrong")
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req.Header.Set("X-Shutdown-Token", "secret")
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestShutdownTokenFromEnv(t *testing.T) {
	t.Setenv("JOBTRACKER_SHUTDOWN_TOKEN", "fixed")
	path := filepath.Join(t.TempDir(), shutdownTokenFile)

	tok, err := shutdownToken(path)
	require.NoError(t, err)
	assert.Equal(t, "fixed", tok)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fixed\n", string(b))
}

func TestLoadConfigBootstrapsDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOBTRACKER_REMOTE_KIND", "")

	cfg, path, err := loadConfig(&rootOptions{dataDir: dir, logLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)
	assert.FileExists(t, path)
	assert.Equal(t, dir, cfg.App.DataDir)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestSeedThenExport(t *testing.T) {
	dir := t.TempDir()
	run := func(args ...string) string {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(append([]string{"--data-dir", dir, "--log-level", "error"}, args...))
		require.NoError(t, cmd.Execute(), out.String())
		return out.String()
	}

	out := run("seed")
	assert.Contains(t, out, "seeded 4 applications (remote_failed_local_ok)")
	assert.FileExists(t, filepath.Join(dir, "job_applications.csv"))

	out = run("export", "--status", "Interviewing", "-o", "-")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Data Analyst")

	out = run("export", "-o", dir)
	assert.Contains(t, out, "exported 4 rows to "+dir)
}
