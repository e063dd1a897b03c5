package clientstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newStore(t *testing.T, maxBytes int) *Store {
	t.Helper()
	s, err := Open(Options{
		Path:          filepath.Join(t.TempDir(), "client.db"),
		MaxValueBytes: maxBytes,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestPutGetRoundtrip(t *testing.T) {
	s := newStore(t, 0)

	require.NoError(t, s.Put("k", payload{Name: "fern", Count: 3}))

	var got payload
	require.NoError(t, s.Get("k", &got))
	assert.Equal(t, payload{Name: "fern", Count: 3}, got)
}

func TestGetMissingKeyLeavesDestUntouched(t *testing.T) {
	s := newStore(t, 0)

	got := payload{Name: "unchanged"}
	require.NoError(t, s.Get("absent", &got))
	assert.Equal(t, "unchanged", got.Name)
}

func TestCorruptPayloadResetsToAbsent(t *testing.T) {
	s := newStore(t, 0)
	require.NoError(t, s.Put("k", payload{Name: "fern"}))

	// Corrupt the stored bytes directly.
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte("k"), []byte("{not json"))
	})
	require.NoError(t, err)

	var got payload
	require.NoError(t, s.Get("k", &got))
	assert.Equal(t, payload{}, got)

	// The corrupt value is gone; a second read behaves like a missing key.
	got = payload{Name: "unchanged"}
	require.NoError(t, s.Get("k", &got))
	assert.Equal(t, "unchanged", got.Name)
}

func TestQuotaExceeded(t *testing.T) {
	s := newStore(t, 8)
	err := s.Put("k", payload{Name: "a rather long value"})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestVolatileTierShadowsAndClears(t *testing.T) {
	s := newStore(t, 0)
	require.NoError(t, s.Put("k", payload{Name: "durable"}))
	require.NoError(t, s.PutVolatile("k", payload{Name: "volatile"}))

	var got payload
	require.NoError(t, s.Get("k", &got))
	assert.Equal(t, "volatile", got.Name)

	// A durable write supersedes the fallback copy.
	require.NoError(t, s.Put("k", payload{Name: "durable2"}))
	require.NoError(t, s.Get("k", &got))
	assert.Equal(t, "durable2", got.Name)
}

func TestDeleteRemovesBothTiers(t *testing.T) {
	s := newStore(t, 0)
	require.NoError(t, s.Put("k", payload{Name: "durable"}))
	require.NoError(t, s.PutVolatile("k", payload{Name: "volatile"}))
	require.NoError(t, s.Delete("k"))

	got := payload{Name: "unchanged"}
	require.NoError(t, s.Get("k", &got))
	assert.Equal(t, "unchanged", got.Name)

	// Deleting an absent key is a no-op.
	require.NoError(t, s.Delete("k"))
}

func TestSubscribeNotifiesPerKey(t *testing.T) {
	s := newStore(t, 0)
	kChanges, otherChanges := 0, 0
	require.NoError(t, s.Subscribe("k", func() { kChanges++ }))
	require.NoError(t, s.Subscribe("other", func() { otherChanges++ }))

	require.NoError(t, s.Put("k", payload{Name: "one"}))
	require.NoError(t, s.PutVolatile("k", payload{Name: "two"}))
	require.NoError(t, s.Delete("k"))

	assert.Equal(t, 3, kChanges)
	assert.Zero(t, otherChanges)
}
