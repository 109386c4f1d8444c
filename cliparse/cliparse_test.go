// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable ParseFlags reads for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STORE_BACKEND", "DATABASE_URL", "FIREBASE_CREDENTIALS_FILE",
		"FIREBASE_PROJECT_ID", "APP_ID", "SESSION_SECRET", "ALLOWED_ORIGIN", "DEBUG",
	} {
		t.Setenv(key, "")
	}
	// Run from an empty dir so a developer .env is never picked up
	t.Chdir(t.TempDir())
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("APP_ID", "club")
	t.Setenv("DEBUG", "true")

	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, BackendPostgres, cfg.Backend)
	assert.Equal(t, "postgres://test", cfg.DatabaseURL)
	assert.Equal(t, "test-secret", cfg.SessionSecret)
	assert.Equal(t, "club", cfg.AppID)
	assert.True(t, cfg.Debug)
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("SESSION_SECRET", "s")

	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)

	assert.Equal(t, 3318, cfg.Port)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "default-app-id", cfg.AppID)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.False(t, cfg.Debug)
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-session-secret", "s1"})
	require.NoError(t, err)

	// CLI should override env
	assert.Equal(t, 8080, cfg.Port, "CLI should override env")
	assert.Equal(t, "file:test.db", cfg.DatabaseURL)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{
			name: "missing session secret",
			env:  map[string]string{"DATABASE_URL": "file:x.db"},
		},
		{
			name: "missing database url",
			env:  map[string]string{"SESSION_SECRET": "s"},
		},
		{
			name: "unknown backend",
			env:  map[string]string{"SESSION_SECRET": "s"},
			args: []string{"-b", "redis"},
		},
		{
			name: "invalid port",
			env:  map[string]string{"PORT": "abc", "DATABASE_URL": "file:x.db", "SESSION_SECRET": "s"},
		},
		{
			name: "missing env file",
			env:  map[string]string{"SESSION_SECRET": "s"},
			args: []string{"-env-file", "does-not-exist.env"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := ParseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestParseFlags_FirestoreSkipsDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("FIREBASE_PROJECT_ID", "club-project")

	cfg, err := ParseFlags([]string{"-b", "firestore"})
	require.NoError(t, err)

	assert.Equal(t, BackendFirestore, cfg.Backend)
	assert.Equal(t, "club-project", cfg.FirebaseProjectID)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestParseFlags_EnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "corner.env")
	content := "SESSION_SECRET=from-file\nDATABASE_URL=file:corner.db\nPORT=7000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// godotenv skips keys that are present, even when empty.
	// The t.Setenv cleanups from clearEnv restore them afterwards.
	for _, key := range []string{"PORT", "SESSION_SECRET", "DATABASE_URL"} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := ParseFlags([]string{"-env-file", path})
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "from-file", cfg.SessionSecret)
	assert.Equal(t, "file:corner.db", cfg.DatabaseURL)
}
