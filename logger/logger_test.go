package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	var buf bytes.Buffer
	log := New(Options{Level: "debug", Format: "json", Output: &buf})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("enemy", 3).Debug("spawned")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "spawned", entry["msg"])
	assert.EqualValues(t, 3, entry["enemy"])
}

func TestEnvOverridesOptions(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "text")

	var buf bytes.Buffer
	log := New(Options{Level: "debug", Format: "json", Output: &buf})
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	log.Warn("careful")
	assert.Contains(t, buf.String(), "msg=careful")
}

func TestBadLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	log := New(Options{Level: "loud", Output: &bytes.Buffer{}})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))
	l := Discard()
	assert.Same(t, l, OrDiscard(l))
}
