package container

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"acnemap/config"
)

func TestNew_WithoutDetector(t *testing.T) {
	cfg := &config.Config{
		Detector:        "none",
		AdviceThreshold: 0.08,
		SnapshotDir:     t.TempDir(),
	}

	c, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, c.UserService)
	require.NotNil(t, c.ScanService)
	require.NotEmpty(t, c.ScanService.Remedies().Universal())
	require.NoError(t, c.Close())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&config.Config{Detector: "magic"}, zap.NewNop())
	require.Error(t, err)

	_, err = New(&config.Config{Detector: "pigo", PigoCascadeDir: t.TempDir()}, zap.NewNop())
	require.ErrorContains(t, err, "PIGO_CASCADE_DIR")
	require.ErrorContains(t, err, "esimov/pigo/cascade")

	_, err = New(&config.Config{Detector: "none", RemediesPath: "/nonexistent/remedies.yaml"}, zap.NewNop())
	require.Error(t, err)
}
