package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info("CheckAvailability: item=%d", 7)
	log.Warn("CheckAvailability: item id=%d not found", 7)
	log.Error("CheckAvailability: failed: %v", "db down")

	out := buf.String()
	assert.NotContains(t, out, "CheckAvailability: item=7")
	assert.Contains(t, out, "item id=7 not found")
	assert.Contains(t, out, "level=ERROR")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("WARNING").String())
	assert.Equal(t, "INFO", parseLevel("").String())
}

func TestNew_FileWithoutPath(t *testing.T) {
	log, err := New("", "info")
	assert.NoError(t, err)
	assert.NoError(t, log.Close())
}
