package bootstrap

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
server:
  port: "9090"
  mode: test
database:
  host: localhost
  dbname: contestguard_test
jwt:
  secret: bootstrap-secret
metrics:
  enabled: %s
`

func writeConfig(t *testing.T, metricsEnabled string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte(fmt.Sprintf(testConfig, metricsEnabled))
	require.NoError(t, os.WriteFile(path, body, 0o600))
	return path
}

func TestConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/etc/contestguard.yaml")
	assert.Equal(t, "/etc/contestguard.yaml", ConfigPath())
}

func TestLoadConfigAndSetupLogger(t *testing.T) {
	cfg, _, err := LoadConfigAndSetupLogger(writeConfig(t, "true"))
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "contestguard_test", cfg.Database.DBName)

	// A missing file falls back to defaults
	cfg, _, err = LoadConfigAndSetupLogger(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("analysis:\n  team_mia_threshold: 3\n"), 0o600))
	_, _, err = LoadConfigAndSetupLogger(bad)
	assert.Error(t, err)
}

func TestSetupRouter(t *testing.T) {
	for _, enabled := range []string{"true", "false"} {
		t.Run("metrics "+enabled, func(t *testing.T) {
			cfg, _, err := LoadConfigAndSetupLogger(writeConfig(t, enabled))
			require.NoError(t, err)

			deps := BuildDependencies(cfg, nil, zerolog.Nop())
			router := SetupRouter(cfg, deps, zerolog.Nop())

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

			w = httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, cfg.Metrics.Path, nil))
			if enabled == "true" {
				assert.Equal(t, http.StatusOK, w.Code)
			} else {
				assert.Equal(t, http.StatusNotFound, w.Code)
			}

			w = httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tests/1/cheat-metrics", nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
