package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaugeRecordAndSelect(t *testing.T) {
	require.NoError(t, InitMetrics(t.TempDir()))
	t.Cleanup(func() { _ = Close() })

	SetGauge("test_cpuuse", 4200)
	assert.Equal(t, 4200.0, LatestGauge("test_cpuuse"))

	end := time.Now().Unix()
	points, err := GaugeSeries("test_cpuuse", end-3600, end+1)
	require.NoError(t, err)
	require.NotEmpty(t, points)
	assert.Equal(t, 4200.0, points[len(points)-1].Value)
}

func TestGaugesWithoutStorage(t *testing.T) {
	require.NoError(t, Close())

	SetGauge("test_cpuuse", 1)
	assert.Zero(t, LatestGauge("test_cpuuse"))

	_, err := GaugeSeries("test_cpuuse", 0, time.Now().Unix())
	assert.Error(t, err)
}
