package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestNow_ReturnsCurrentTime(t *testing.T) {
	before := time.Now()
	got := Now()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestMockClock(t *testing.T) {
	c := NewMockClock(epoch)
	assert.Equal(t, epoch, c.Now())

	c.Advance(90 * time.Second)
	assert.Equal(t, epoch.Add(90*time.Second), c.Now())
	assert.Equal(t, 90*time.Second, c.Since(epoch))

	c.Set(epoch)
	assert.Equal(t, time.Duration(0), c.Since(epoch))
}

func TestMockClock_AutoStep(t *testing.T) {
	c := NewMockClock(epoch)
	c.AutoStep(time.Second)

	first := c.Now()
	second := c.Now()
	assert.Equal(t, time.Second, second.Sub(first))
	assert.Equal(t, 2*time.Second, c.Since(epoch))
}

func TestClockInterface(t *testing.T) {
	var _ Clock = &RealClock{}
	var _ Clock = &MockClock{}
}

func TestRealClock(t *testing.T) {
	c := &RealClock{}
	start := c.Now()
	assert.GreaterOrEqual(t, c.Since(start), time.Duration(0))
	assert.GreaterOrEqual(t, Since(start), time.Duration(0))
}
