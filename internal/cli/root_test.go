package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "dqlkit", cmd.Use)
	assert.Contains(t, cmd.Long, "DQL")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"classify"},
		{"paginate"},
		{"format"},
		{"generate"},
		{"schema"},
		{"history", "add"},
		{"history", "list"},
		{"history", "delete"},
		{"history", "clear"},
		{"favorite", "add"},
		{"favorite", "list"},
		{"favorite", "delete"},
		{"favorite", "clear"},
	}

	for _, path := range commands {
		t.Run(filepath.Join(path...), func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	dbFlag := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("no-color"))
}

func TestGenerateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	genCmd, _, err := cmd.Find([]string{"generate"})
	require.NoError(t, err)

	fieldFlag := genCmd.Flags().Lookup("field")
	require.NotNil(t, fieldFlag)
	assert.Equal(t, "f", fieldFlag.Shorthand)

	require.NotNil(t, genCmd.Flags().Lookup("schema"))
	require.NotNil(t, genCmd.Flags().Lookup("sample"))
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, err := execute(t, "", "--format", "invalid", "classify", "SELECT * FROM cars")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestResolveDBPath(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvDBPath, "/from/env.db")
		opts := &RootOptions{DBPath: "/from/flag.db"}
		path, err := opts.resolveDBPath()
		require.NoError(t, err)
		assert.Equal(t, "/from/flag.db", path)
	})

	t.Run("env overrides default", func(t *testing.T) {
		t.Setenv(EnvDBPath, "/from/env.db")
		path, err := (&RootOptions{}).resolveDBPath()
		require.NoError(t, err)
		assert.Equal(t, "/from/env.db", path)
	})

	t.Run("default under config dir", func(t *testing.T) {
		t.Setenv(EnvDBPath, "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())
		path, err := (&RootOptions{}).resolveDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("dqlkit", "history.db"), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
	})
}

func TestOpenStore_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	opts := &RootOptions{DBPath: path}

	st, err := opts.openStore()
	require.NoError(t, err)
	closeStore(st)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
