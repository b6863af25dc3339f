package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/core/port"
)

type fakeFluent struct {
	mu     sync.Mutex
	tags   []string
	posts  []map[string]interface{}
	closed bool
}

func (f *fakeFluent) Post(tag string, message interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags = append(f.tags, tag)
	f.posts = append(f.posts, map[string]interface{}(message.(port.Fields)))
	return errors.New("collector unreachable")
}

func (f *fakeFluent) Close() error {
	f.closed = true
	return nil
}

func TestSlogAdapterJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug, IsJSON: true})

	logger.WithFields(port.Fields{"component": "rest"}).
		Error("Catalog query failed", errors.New("boom"), port.Fields{"status_code": 503})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "Catalog query failed", line["msg"])
	assert.Equal(t, "rest", line["component"])
	assert.Equal(t, "boom", line["error"])
	assert.EqualValues(t, 503, line["status_code"])
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	logger.Warn("shown", port.Fields{"b": 2, "a": 1})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Less(t, strings.Index(out, "a=1"), strings.Index(out, "b=2"))
}

func TestFluentAdapter(t *testing.T) {
	t.Parallel()

	client := &fakeFluent{}
	adapter, err := NewFluentLoggerAdapter(client, "storefront", slog.LevelInfo)
	require.NoError(t, err)
	adapter.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	scoped := adapter.WithFields(port.Fields{"service_name": "storefront-service"})
	scoped.Debug("dropped", nil)
	scoped.Info("Request finished", port.Fields{"status_code": 200})
	scoped.Error("Flush failed", errors.New("redis down"), nil)

	require.Len(t, client.posts, 2)
	assert.Equal(t, []string{"storefront.info", "storefront.error"}, client.tags)
	assert.Equal(t, "Request finished", client.posts[0]["message"])
	assert.Equal(t, "storefront-service", client.posts[0]["service_name"])
	assert.Equal(t, "2026-01-02T03:04:05Z", client.posts[0]["timestamp"])
	assert.Equal(t, "redis down", client.posts[1]["error"])

	require.NoError(t, adapter.Close())
	assert.True(t, client.closed)

	_, err = NewFluentLoggerAdapter(nil, "", nil)
	assert.Error(t, err)
}

func TestMultiLogger(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	first := NewSlogAdapter(SlogConfig{Writer: &a})
	second := NewSlogAdapter(SlogConfig{Writer: &b})

	multi, err := NewMultiLoggerAdapter(first, nil, second)
	require.NoError(t, err)
	multi.WithFields(port.Fields{"trace_id": "t-1"}).Info("hello", nil)

	assert.Contains(t, a.String(), "trace_id=t-1")
	assert.Contains(t, b.String(), "trace_id=t-1")

	single, err := NewMultiLoggerAdapter(first)
	require.NoError(t, err)
	assert.Same(t, first, single)

	_, err = NewMultiLoggerAdapter()
	assert.Error(t, err)
}
