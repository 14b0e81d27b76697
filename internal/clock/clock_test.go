package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	before := time.Now()
	got := RealClock{}.Now()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestStubClock_Now(t *testing.T) {
	start := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	clk := NewStubClock(start, time.Second)

	assert.Equal(t, start, clk.Now())
	assert.Equal(t, start.Add(time.Second), clk.Now())
	assert.Equal(t, start.Add(2*time.Second), clk.Now())
}
