package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirWithDotEnv runs the test from a directory holding the given .env
// content and cleans up the keys godotenv exported into the process.
func chdirWithDotEnv(t *testing.T, content string, keys ...string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
		for _, key := range keys {
			os.Unsetenv(key)
		}
	})
}

func TestLoadReadsDotEnv(t *testing.T) {
	chdirWithDotEnv(t, "POSTGRES_CONN_STR=host=db\nJWT_SECRET=from-dotenv\n",
		"POSTGRES_CONN_STR", "JWT_SECRET")

	cfg := Load()

	assert.Equal(t, "host=db", cfg.PostgresConnStr, ".env values must survive into Config")
	assert.Equal(t, "from-dotenv", cfg.JWTSecret)
}

func TestLoadRealEnvWinsOverDotEnv(t *testing.T) {
	chdirWithDotEnv(t, "JWT_SECRET=from-dotenv\n", "JWT_SECRET")
	t.Setenv("JWT_SECRET", "from-env")

	cfg := Load()

	assert.Equal(t, "from-env", cfg.JWTSecret)
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "memoryhub", cfg.MongoDatabase)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, 10*time.Minute, cfg.StorySweepInterval)
}
