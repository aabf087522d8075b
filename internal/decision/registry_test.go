package decision

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestRegistry() (*Registry, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry()
	r.now = clock.now
	return r, clock
}

func TestRegistryOpenGetDrop(t *testing.T) {
	r, _ := newTestRegistry()

	d := r.Open()
	assert.Equal(t, 1, r.Len())

	got, ok := r.Get(d.ID())
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = r.Get(uuid.New())
	assert.False(t, ok)

	r.Drop(d.ID())
	_, ok = r.Get(d.ID())
	assert.False(t, ok)
	assert.Zero(t, r.Len())
}

func TestRegistrySweep(t *testing.T) {
	r, clock := newTestRegistry()

	stale := r.Open()
	busy := r.Open()
	_, ok := busy.Begin("Pizza or Sushi?")
	require.True(t, ok)

	clock.advance(20 * time.Minute)
	fresh := r.Open()

	clock.advance(15 * time.Minute)
	_, _ = r.Get(fresh.ID())

	dropped := r.Sweep(30 * time.Minute)
	assert.Equal(t, 1, dropped)

	_, ok = r.Get(stale.ID())
	assert.False(t, ok, "stale desk should be swept")
	_, ok = r.Get(busy.ID())
	assert.True(t, ok, "in-flight desk should survive")
	_, ok = r.Get(fresh.ID())
	assert.True(t, ok)
}

func TestRegistryCounts(t *testing.T) {
	r, _ := newTestRegistry()

	r.Open()
	busy := r.Open()
	busy.Begin("A or B")
	decided := r.Open()
	decided.Begin("A or B")
	decided.Complete("A", nil)

	counts := r.Counts()
	assert.Equal(t, map[Status]int{
		StatusIdle:       1,
		StatusProcessing: 1,
		StatusDecided:    1,
		StatusError:      0,
	}, counts)
}
