package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWithCore_CarriesAttributes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewWithCore(core).With("run_id", "abc")

	logger.Warn("cpu usage exceeded limit", "stage", "align", "peak_percent", 512.5)

	entries := logs.FilterMessage("cpu usage exceeded limit").All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	require.Equal(t, "abc", fields["run_id"])
	require.Equal(t, "align", fields["stage"])
	require.Equal(t, 512.5, fields["peak_percent"])
}

func TestNewWithCore_RespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewWithCore(core)

	logger.Debug("hidden")
	logger.Info("shown")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "shown", logs.All()[0].Message)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: FormatJSON, Writer: &buf})
	require.NoError(t, err)

	logger.Debug("stage completed", "stage", "sort")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "stage completed", rec["msg"])
	require.Equal(t, "debug", rec["level"])
	require.Equal(t, "sort", rec["stage"])
}

func TestNew_AutoIsJSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf})
	require.NoError(t, err)

	logger.Info("hello")
	require.True(t, strings.HasPrefix(buf.String(), "{"), buf.String())
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: FormatConsole, Writer: &buf})
	require.NoError(t, err)

	logger.Info("hello", "stage", "index")
	require.Contains(t, buf.String(), "hello")
	require.Contains(t, buf.String(), `"stage": "index"`)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.ErrorContains(t, err, `invalid log level "loud"`)

	_, err = New(Options{Format: "xml"})
	require.ErrorContains(t, err, `invalid log format "xml"`)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}
