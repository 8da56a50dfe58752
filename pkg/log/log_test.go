package log

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	l := New(logrus.DebugLevel)
	require.Equal(t, logrus.DebugLevel, l.GetLevel())
	require.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestNewFileLogger_WritesToFile(t *testing.T) {
	path := t.TempDir() + "/gopherboy.log"
	l, f, err := NewFileLogger(path, logrus.InfoLevel)
	require.NoError(t, err)
	defer f.Close()

	l.Info("boot complete")
	require.NoError(t, f.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "boot complete")
}

func TestNewNullLogger_Discards(t *testing.T) {
	l := NewNullLogger()
	require.NotPanics(t, func() { l.Info("should not appear anywhere") })
}
