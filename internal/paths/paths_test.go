package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLocalWalksUp(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	conf := filepath.Join(root, "a", ConfigFileName)
	require.NoError(t, os.WriteFile(conf, []byte("menu root {}"), 0o600))

	got, err := FindLocal(deep)
	require.NoError(t, err)
	assert.Equal(t, conf, got)
}

func TestFindLocalIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "x", ConfigFileName), 0o755))
	conf := filepath.Join(root, ConfigFileName)
	require.NoError(t, os.WriteFile(conf, nil, 0o600))

	got, err := FindLocal(filepath.Join(root, "x"))
	require.NoError(t, err)
	assert.Equal(t, conf, got)
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	conf := filepath.Join(root, ConfigFileName)
	require.NoError(t, os.WriteFile(conf, nil, 0o600))
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	loc, err := Resolve(Options{Conf: "/etc/explicit.dt", Local: true, Cwd: sub})
	require.NoError(t, err)
	assert.Equal(t, Location{Path: "/etc/explicit.dt"}, loc)

	loc, err = Resolve(Options{Local: true, Cwd: sub})
	require.NoError(t, err)
	assert.Equal(t, Location{Path: conf, Dir: root}, loc)

	loc, err = Resolve(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loc.Path)
	assert.Empty(t, loc.Dir)
}

func TestDefaultLocations(t *testing.T) {
	assert.Equal(t, filepath.Join(ConfigDir(), "dotree.dt"), DefaultConfig())
	assert.Equal(t, filepath.Join(StateDir(), "history"), HistoryFile())
	assert.Equal(t, AppName, filepath.Base(ConfigDir()))
	assert.Equal(t, "settings.yaml", filepath.Base(SettingsFile()))
}
