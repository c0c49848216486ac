package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_ContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, true, slog.LevelDebug)

	ctx := AppendCtx(context.Background(), slog.String("file", "a.jpg"))
	ctx = AppendCtx(ctx, slog.Group("app", slog.String("name", "ctl")))
	log.DebugContext(ctx, "segment", slog.Int("offset", 42))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "segment", rec["msg"])
	assert.Equal(t, "a.jpg", rec["file"])
	assert.Equal(t, float64(42), rec["offset"])
	assert.Equal(t, map[string]any{"name": "ctl"}, rec["app"])
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, false, slog.LevelWarn)

	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.With("k", "v").Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=v")
}

func TestAppendCtx_DoesNotLeakIntoParent(t *testing.T) {
	parent := AppendCtx(context.Background(), slog.String("a", "1"))
	_ = AppendCtx(parent, slog.String("b", "2"))

	var buf bytes.Buffer
	Logger(&buf, false, slog.LevelInfo).InfoContext(parent, "x")
	assert.Contains(t, buf.String(), "a=1")
	assert.NotContains(t, buf.String(), "b=2")
}

func TestRotatingWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jpegctl.log")
	w := RotatingWriter(path, 1, 2, 1)

	log := Logger(w, false, slog.LevelInfo)
	log.Info("rotating", slog.String("k", "v"))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=rotating")
}
