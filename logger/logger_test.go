package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, log.InfoLevel, ParseLevel("info"))
	assert.Equal(t, log.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, log.WarnLevel, ParseLevel("bogus"))
	assert.Equal(t, log.WarnLevel, ParseLevel(""))
}

func TestSetOutputKeepsLevel(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	var buf bytes.Buffer
	Logger.SetLevel(log.WarnLevel)
	SetOutput(&buf)
	Info("hidden")
	Warn("deprecated geometry file", "file", "head.geom")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "deprecated geometry file")
	assert.Contains(t, buf.String(), "head.geom")
}

func TestConfigureClosesReplacedLogFile(t *testing.T) {
	saved := Logger
	defer func() {
		SetOutput(os.Stderr)
		Logger = saved
	}()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	require.NoError(t, Configure("info", first))
	Info("to the first file")
	firstFile := logFile
	require.NotNil(t, firstFile)

	require.NoError(t, Configure("info", filepath.Join(dir, "second.log")))
	_, err := firstFile.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
	secondFile := logFile
	require.NotNil(t, secondFile)
	assert.NotSame(t, firstFile, secondFile)

	var buf bytes.Buffer
	SetOutput(&buf)
	assert.Nil(t, logFile)
	_, err = secondFile.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to the first file")
}
