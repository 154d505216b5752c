package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv снимает переменные на время теста; t.Setenv восстановит их после.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

var allKeys = []string{
	ConfigPathEnv, DataDirEnv, FullchainPathEnv, PrivkeyPathEnv,
	"SYNTH_MOD_BACKEND_OPS_ADDR", "SYNTH_MOD_BACKEND_LOG_LEVEL", "SYNTH_MOD_BACKEND_UNIQUE_FILENAMES",
}

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	return path
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv(DataDirEnv, "/srv/data")
	t.Setenv(FullchainPathEnv, "/etc/tls/fullchain.pem")
	t.Setenv(PrivkeyPathEnv, "/etc/tls/privkey.pem")
	t.Setenv("SYNTH_MOD_BACKEND_UNIQUE_FILENAMES", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", cfg.DataDir)
	assert.Equal(t, "/etc/tls/fullchain.pem", cfg.FullchainPath)
	assert.Equal(t, "/etc/tls/privkey.pem", cfg.PrivkeyPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.UniqueFilenames)
	assert.Empty(t, cfg.OpsAddr)
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	clearEnv(t, allKeys...)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /from/yaml
fullchain_path: /yaml/fullchain.pem
privkey_path: /yaml/privkey.pem
ops_addr: ":9100"
log_level: debug
`), 0o600))

	t.Setenv(ConfigPathEnv, path)
	t.Setenv(DataDirEnv, "/from/env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.DataDir)
	assert.Equal(t, "/yaml/fullchain.pem", cfg.FullchainPath)
	assert.Equal(t, ":9100", cfg.OpsAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t, allKeys...)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unterminated"), 0o600))
	t.Setenv(ConfigPathEnv, path)

	_, err := Load()
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	cert := touch(t, filepath.Join(dir, "fullchain.pem"))
	key := touch(t, filepath.Join(dir, "privkey.pem"))
	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.Mkdir(dataDir, 0o755))

	valid := Config{DataDir: dataDir, FullchainPath: cert, PrivkeyPath: key}

	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no data dir env", mutate: func(c *Config) { c.DataDir = "" }, wantMsg: "SYNTH_MOD_BACKEND_DATA environment variable not set"},
		{name: "no cert env", mutate: func(c *Config) { c.FullchainPath = "" }, wantMsg: "SYNTH_MOD_BACKEND_FULLCHAIN environment variable not set"},
		{name: "no key env", mutate: func(c *Config) { c.PrivkeyPath = "" }, wantMsg: "SYNTH_MOD_BACKEND_PRIVKEY environment variable not set"},
		{name: "missing data dir", mutate: func(c *Config) { c.DataDir = filepath.Join(dir, "nope") }, wantMsg: "does not exist"},
		{name: "data dir is file", mutate: func(c *Config) { c.DataDir = cert }, wantMsg: "is not a directory"},
		{name: "missing cert", mutate: func(c *Config) { c.FullchainPath = filepath.Join(dir, "nope.pem") }, wantMsg: "Fullchain path"},
		{name: "missing key", mutate: func(c *Config) { c.PrivkeyPath = filepath.Join(dir, "nope.pem") }, wantMsg: "Privkey path"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}
