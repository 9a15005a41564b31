package localsurface

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	config := testConfig("metrics", 3)
	sink := NewSink(config)
	src := NewSource(config)
	require.NoError(t, sink.Start())
	require.NoError(t, src.Start())
	for i := 0; i < 5; i++ {
		sink.Render(NewBuffer(nil, nil))
	}

	c := NewCollector(config.Registry)
	assert.Equal(t, 8, testutil.CollectAndCount(c))

	expected := `
# HELP localsurface_buffers_overflowed_total Pushes rejected because the jitter buffer was full.
# TYPE localsurface_buffers_overflowed_total counter
localsurface_buffers_overflowed_total{channel="metrics"} 2
# HELP localsurface_queue_level Buffers waiting in the jitter buffer.
# TYPE localsurface_queue_level gauge
localsurface_queue_level{channel="metrics"} 3
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"localsurface_buffers_overflowed_total", "localsurface_queue_level")
	assert.NoError(t, err)
}
