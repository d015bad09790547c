package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_JSONDefault(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf})
	log.Debug("hidden")
	log.Info("faq reply matched", "id", 7)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "faq reply matched", record["msg"])
	require.Equal(t, "faq-autoreply", record["service"])
	require.EqualValues(t, 7, record["id"])
}

func TestNew_TextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Format: "text", Output: &buf})
	log.Info("skipped")
	require.Zero(t, buf.Len())

	log.Warn("faq snapshot save failed")
	require.Contains(t, buf.String(), "msg=\"faq snapshot save failed\"")
}
