package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	require.NoError(t, Init("debug", true))
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	require.NoError(t, Init("", false))
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	require.Error(t, Init("loud", false))
}

func TestInitLogsClearsJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0o644))

	require.NoError(t, InitLogs(dir))
	require.NoFileExists(t, filepath.Join(dir, "old.json"))
	require.FileExists(t, filepath.Join(dir, "keep.txt"))
}

func TestLogJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, LogJSON(dir, "../report", map[string]int{"documents": 2}))

	b, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)

	var got map[string]int
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, 2, got["documents"])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
