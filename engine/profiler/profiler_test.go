package profiler

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestTick_WaitsForInterval(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(WithLogger(zerolog.New(&buf)), WithInterval(time.Hour))

	assert.False(t, p.Tick())
	assert.False(t, p.Tick())
	assert.Empty(t, buf.String())
	assert.Equal(t, 2, p.frameCount)
}

func TestTick_LogsAndResets(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(WithLogger(zerolog.New(&buf)), WithInterval(time.Millisecond))

	time.Sleep(2 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.Contains(t, buf.String(), `"message":"profiler"`)
	assert.Contains(t, buf.String(), `"fps":`)
	assert.Contains(t, buf.String(), `"heapMB":`)
	assert.Zero(t, p.frameCount)
}
