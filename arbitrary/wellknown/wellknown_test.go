package wellknown

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/arbgen/arbitrary"
)

func TestTimeAtBudgetZero(t *testing.T) {
	ts, err := Time(arbitrary.NewByteSource(nil, 0))
	require.NoError(t, err)
	assert.Equal(t, epoch, ts)
}

func TestTimeWithinBudgetDays(t *testing.T) {
	src := arbitrary.NewSource(rand.New(rand.NewSource(3)), 10)
	for i := 0; i < 100; i++ {
		ts, err := arbitrary.Of[time.Time](src)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, ts.Location())
		assert.True(t, ts.After(epoch.AddDate(0, 0, -11)), ts)
		assert.True(t, ts.Before(epoch.AddDate(0, 0, 11)), ts)
	}
}

func TestDurationWithinBudget(t *testing.T) {
	src := arbitrary.NewSource(rand.New(rand.NewSource(4)), 3)
	for i := 0; i < 100; i++ {
		d, err := arbitrary.Of[time.Duration](src)
		require.NoError(t, err)
		assert.LessOrEqual(t, d, 3*time.Second)
		assert.GreaterOrEqual(t, d, -3*time.Second)
		assert.Zero(t, d%time.Millisecond)
	}
}

func TestUUIDIsVersion4(t *testing.T) {
	src := arbitrary.NewSource(rand.New(rand.NewSource(5)), 0)
	seen := map[uuid.UUID]bool{}
	for i := 0; i < 50; i++ {
		id, err := arbitrary.Of[uuid.UUID](src)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), id.Version())
		assert.Equal(t, uuid.RFC4122, id.Variant())
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestRegistered(t *testing.T) {
	assert.True(t, arbitrary.Registered[time.Time]())
	assert.True(t, arbitrary.Registered[time.Duration]())
	assert.True(t, arbitrary.Registered[uuid.UUID]())
}
