package webapi

import (
	"testing"
	"time"

	"github.com/greenhaven-store/greenhaven/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaugeHistory(t *testing.T) {
	// Without initialized storage the history is empty, not nil.
	history := gaugeHistory("system_cpuuse", time.Hour)
	assert.NotNil(t, history)
	assert.Empty(t, history)

	require.NoError(t, metrics.InitMetrics(t.TempDir()))
	t.Cleanup(func() { _ = metrics.Close() })

	metrics.SetGauge("system_cpuuse", 1500)
	history = gaugeHistory("system_cpuuse", time.Hour)
	require.NotEmpty(t, history)
	assert.Equal(t, 1500.0, history[len(history)-1].Value)
	assert.InDelta(t, time.Now().Unix(), history[len(history)-1].Timestamp, 5)
}
