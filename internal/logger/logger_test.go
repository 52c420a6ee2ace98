package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New("release", path)
	require.NoError(t, err)
	log.Info("scan finished")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "scan finished")
}

func TestNew_Debug(t *testing.T) {
	log, err := New("debug", "")
	require.NoError(t, err)
	require.NotNil(t, log)
}
