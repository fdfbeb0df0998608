package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfiler_WaitsForInterval(t *testing.T) {
	p := NewProfiler(WithInterval(time.Hour))
	for i := 0; i < 10; i++ {
		assert.False(t, p.Tick(1))
	}
	assert.Equal(t, Stats{}, p.Last())
}

func TestProfiler_ReportsEveryTick(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	p.lastTime = time.Now().Add(-time.Second)

	assert.True(t, p.Tick(3))
	s := p.Last()
	assert.Greater(t, s.FPS, 0.0)
	assert.InDelta(t, 3*s.FPS, s.RedrawRate, 0.1*s.RedrawRate+1e-9)
	assert.Greater(t, s.SysMB, 0.0)

	assert.True(t, p.Tick(0))
	assert.Equal(t, 0.0, p.Last().RedrawRate)
}

func TestProfiler_NegativeIntervalIgnored(t *testing.T) {
	p := NewProfiler(WithInterval(-time.Second))
	assert.Equal(t, time.Second, p.updateInterval)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, round2(1.2345))
	assert.Equal(t, 0.0, round2(0))
}
