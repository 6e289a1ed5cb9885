// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZap(t *testing.T) {
	t.Run("With an unknown level falls back to debug", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(42, buffer)
		require.True(t, logger.Enabled(DebugLevel))

		logger.Debug("test debug")
		entry := decodeEntry(t, buffer)
		assert.Equal(t, "test debug", entry["msg"])
		assert.Equal(t, "debug", entry["level"])
	})
	t.Run("With level filtering", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)
		require.False(t, logger.Enabled(InfoLevel))
		require.True(t, logger.Enabled(ErrorLevel))

		logger.Info("dropped")
		require.Zero(t, buffer.Len())

		logger.Warnf("kept %d", 1)
		entry := decodeEntry(t, buffer)
		assert.Equal(t, "kept 1", entry["msg"])
		assert.Equal(t, "warn", entry["level"])
	})
	t.Run("With structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("actor", "/counter", "cause", errors.New("boom"), "orphan").Info("started")

		entry := decodeEntry(t, buffer)
		assert.Equal(t, "/counter", entry["actor"])
		assert.Equal(t, "boom", entry["cause"])
		assert.Equal(t, "orphan", entry["_"])
	})
	t.Run("With no fields returns the same logger", func(t *testing.T) {
		logger := NewZap(InfoLevel, io.Discard)
		assert.Same(t, logger, logger.With())
		assert.Same(t, logger, logger.With(42, "ignored"))
	})
	t.Run("With error level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)
		logger.Debug("dropped")
		logger.Warnf("dropped %d", 1)
		require.Zero(t, buffer.Len())

		logger.Errorf("failed %s", "now")
		entry := decodeEntry(t, buffer)
		assert.Equal(t, "failed now", entry["msg"])
		assert.Equal(t, "error", entry["level"])
		assert.NotEmpty(t, entry["stacktrace"])
	})
	t.Run("With flush", func(t *testing.T) {
		assert.NoError(t, NewZap(InfoLevel, new(bytes.Buffer)).Flush())
	})
}

func TestDiscardLogger(t *testing.T) {
	assert.Equal(t, DiscardLogger, DiscardLogger.With("actor", "/x"))
	assert.False(t, DiscardLogger.Enabled(DebugLevel))
	assert.False(t, DiscardLogger.Enabled(ErrorLevel))
	assert.NoError(t, DiscardLogger.Flush())
	assert.NotPanics(t, func() {
		DiscardLogger.Info("ignored")
		DiscardLogger.Errorf("ignored %d", 1)
	})
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "WARNING", WarningLevel.String())
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "INVALID", InvalidLevel.String())
}

func decodeEntry(t *testing.T, buffer *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	return entry
}
