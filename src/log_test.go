package stxc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerFormats(t *testing.T) {
	var buf bytes.Buffer

	var logger, err = NewLogger(&buf, "st_xc_sim", LogOptions{Format: "json"}) //nolint:exhaustruct
	require.NoError(t, err)

	logger.Info("Simulation complete", "triggers", 3)
	assert.Contains(t, buf.String(), `"triggers":3`)
	assert.Contains(t, buf.String(), `"msg":"Simulation complete"`)

	buf.Reset()
	logger, err = NewLogger(&buf, "st_xc_sim", LogOptions{}) //nolint:exhaustruct
	require.NoError(t, err)

	logger.Info("Auto baseline", "baseline", 4000)
	assert.Contains(t, buf.String(), "baseline=4000", "a buffer is not a terminal, so logfmt")
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	var logger, err = NewLogger(&buf, "x", LogOptions{Quiet: true, Format: "logfmt"}) //nolint:exhaustruct
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	logger, err = NewLogger(&buf, "x", LogOptions{Verbose: true, Format: "text"}) //nolint:exhaustruct
	require.NoError(t, err)
	logger.Debug("details")
	assert.Contains(t, buf.String(), "details")
}

func TestNewLoggerBadFormat(t *testing.T) {
	var _, err = NewLogger(&bytes.Buffer{}, "x", LogOptions{Format: "xml"}) //nolint:exhaustruct
	require.ErrorIs(t, err, ErrInvalidConfig)
}
