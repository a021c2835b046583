package datagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressReporter(t *testing.T) {
	p := NewProgressReporter("investments_fake", 300, 100)

	assert.False(t, p.Update(50))
	assert.True(t, p.Update(50))
	assert.False(t, p.Update(99))
	assert.True(t, p.Update(1))
	assert.Equal(t, int64(200), p.Rows())
	assert.InDelta(t, 66.67, p.Percent(), 0.01)

	p.Done()
}

func TestProgressReporterDefaultInterval(t *testing.T) {
	p := NewProgressReporter("investments_fake", 10, 0)

	assert.False(t, p.Update(DefaultProgressInterval-1))
	assert.True(t, p.Update(1))
}

func TestProgressReporterZeroTotal(t *testing.T) {
	p := NewProgressReporter("investments_fake", 0, 10)
	p.Update(5)

	assert.Zero(t, p.Percent())
}
