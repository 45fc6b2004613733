package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "APP_PORT",
		"SANITY_PROJECT_ID", "SANITY_DATASET", "SANITY_API_VERSION", "SANITY_API_TOKEN", "SANITY_API_HOST",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadEnvReadsDotenvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SANITY_PROJECT_ID=abc123\nSANITY_DATASET=production\nAPP_ENV=production\n"), 0o600))

	cfg, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.CMS.ProjectID)
	assert.Equal(t, "production", cfg.CMS.Dataset)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "3306", cfg.DB.Port)
}

func TestLoadEnvIgnoresMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
}

func TestCMSRequireListsEveryMissingVariable(t *testing.T) {
	cfg := CMSConfig{ProjectID: "abc123"}

	err := cfg.Require(true)
	var missing *MissingEnvError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"SANITY_DATASET", "SANITY_API_VERSION", "SANITY_API_TOKEN"}, missing.Vars)
	assert.Contains(t, err.Error(), "[ ] SANITY_API_TOKEN")

	cfg.Dataset = "production"
	cfg.APIVersion = "2024-01-01"
	assert.NoError(t, cfg.Require(false))
	assert.Error(t, cfg.Require(true))
}

func TestDBConfigDSN(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: "3306", User: "shop", Password: "secret", Name: "furniture"}
	assert.Equal(t, "shop:secret@tcp(db:3306)/furniture?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN())
	assert.NoError(t, cfg.Require())
	assert.Error(t, DBConfig{}.Require())
}

func TestRequireFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: []\n"), 0o600))

	assert.NoError(t, RequireFile(path))
	assert.Error(t, RequireFile(dir))

	err := RequireFile(filepath.Join(dir, "missing.yaml"))
	var missing *MissingFileError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, err.Error(), "[ ] "+filepath.Join(dir, "missing.yaml"))
}
