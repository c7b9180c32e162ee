package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.Server)
	assert.Empty(t, c.Token)
	assert.Equal(t, 30*time.Second, c.Timeout.Duration)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", c.Server)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	in := &Config{}
	in.LoadDefaults()
	in.Server = "https://admin.example"
	in.Token = "tok"

	require.NoError(t, in.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":"http://file","token":"file","timeout":"5s"}`), 0o600))
	t.Setenv("PMD_TOKEN", "env")
	t.Setenv("PMD_TIMEOUT", "1m")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://file", c.Server)
	assert.Equal(t, "env", c.Token)
	assert.Equal(t, time.Minute, c.Timeout.Duration)
}

func TestLoad_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))
	_, err := Load(path)
	assert.Error(t, err)

	t.Setenv("PMD_TIMEOUT", "later")
	_, err = Load(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv("PMDADMIN_CONFIG", "/tmp/x.json")
	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.json", p)

	t.Setenv("PMDADMIN_CONFIG", "")
	old := userHomeDir
	t.Cleanup(func() { userHomeDir = old })
	userHomeDir = func() (string, error) { return "/home/admin", nil }

	p, err = Path()
	require.NoError(t, err)
	assert.Equal(t, "/home/admin/.pmdadmin/config.json", p)
}
