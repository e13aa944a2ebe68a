package hooks

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRotationLogHook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kotlinlex.log")

	hook := NewFileRotationLogHook(logrus.InfoLevel, path, WithMaxSize(1), WithMaxBackups(2))
	assert.Contains(t, hook.Levels(), logrus.ErrorLevel)
	assert.Contains(t, hook.Levels(), logrus.InfoLevel)
	assert.NotContains(t, hook.Levels(), logrus.DebugLevel)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)
	logger.AddHook(hook)

	logger.WithField("file", "Main.kt").Info("Tokenized file")
	logger.Debug("not written")
	require.NoError(t, hook.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `msg="Tokenized file"`)
	assert.Contains(t, string(content), "file=Main.kt")
	assert.NotContains(t, string(content), "not written")
}

func TestFileRotationOptions(t *testing.T) {
	hook := NewFileRotationLogHook(logrus.WarnLevel, "x.log", EnableCompression())
	assert.True(t, hook.logger.Compress)
	assert.Equal(t, 100, hook.logger.MaxSize)
	assert.Len(t, hook.Levels(), 4)
}
