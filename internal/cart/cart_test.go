package cart

import (
	"path/filepath"
	"testing"

	"github.com/greenhaven-store/greenhaven/internal/clientstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxBytes int) *Store {
	t.Helper()
	cs, err := clientstore.Open(clientstore.Options{
		Path:          filepath.Join(t.TempDir(), "client.db"),
		MaxValueBytes: maxBytes,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return NewStore(cs)
}

func monstera() Item {
	return Item{ID: 1, Name: "Monstera Deliciosa", Price: 145, Category: "indoor-plants", Image: "/monstera.png"}
}

func snakePlant() Item {
	return Item{ID: 2, Name: "Snake Plant", Price: 105, Category: "indoor-plants", Image: "/snake.png"}
}

func TestAddSameProductIncrementsQuantity(t *testing.T) {
	s := newTestStore(t, 0)
	s.Add(monstera())
	s.Add(monstera())

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddDistinctProducts(t *testing.T) {
	s := newTestStore(t, 0)
	s.Add(monstera())
	s.Add(snakePlant())

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 2, s.ItemCount())
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	s := newTestStore(t, 0)
	s.Add(monstera())
	s.UpdateQuantity(1, 0)

	assert.Empty(t, s.Items())
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	s := newTestStore(t, 0)
	s.Add(monstera())
	s.UpdateQuantity(1, 7)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)

	// Unknown ids are a no-op.
	s.UpdateQuantity(99, 3)
	assert.Equal(t, items, s.Items())
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	s := newTestStore(t, 0)
	s.Add(monstera())
	s.Remove(42)

	require.Len(t, s.Items(), 1)
	s.Remove(1)
	assert.Empty(t, s.Items())
}

func TestClear(t *testing.T) {
	s := newTestStore(t, 0)
	s.Add(monstera())
	s.Add(snakePlant())
	s.Clear()

	assert.Empty(t, s.Items())
	totals := s.Totals()
	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 8.0, totals.Total)
}

func TestSubscribeNotifiedOnChange(t *testing.T) {
	s := newTestStore(t, 0)
	changes := 0
	require.NoError(t, s.Subscribe(func() { changes++ }))

	s.Add(monstera())
	s.UpdateQuantity(1, 3)
	s.Remove(1)

	// EventBus delivers synchronously for plain subscribers.
	assert.Equal(t, 3, changes)
}

func TestPersistEvictsOldestWhenFull(t *testing.T) {
	// Quota fits roughly two serialized items but not three.
	s := newTestStore(t, 260)
	warned := 0
	s.SetWarnHandler(func(string) { warned++ })

	s.Add(monstera())
	s.Add(snakePlant())
	s.Add(Item{ID: 3, Name: "Olive Tree", Price: 250, Category: "outdoor-plants", Image: "/olive.png"})

	items := s.Items()
	require.NotEmpty(t, items)
	assert.Less(t, len(items), 3)
	// The newest item survives eviction.
	assert.Equal(t, int64(3), items[len(items)-1].ID)
	assert.Zero(t, warned)
}

func TestPersistFallsBackToVolatileTier(t *testing.T) {
	// Quota too small for even a single item: eviction cannot help and the
	// cart must land in the non-durable tier with a warning.
	s := newTestStore(t, 10)
	warnings := []string{}
	s.SetWarnHandler(func(msg string) { warnings = append(warnings, msg) })

	s.Add(monstera())

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	assert.NotEmpty(t, warnings)
}

func TestItemsOnFreshStoreIsEmpty(t *testing.T) {
	s := newTestStore(t, 0)
	items := s.Items()
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
