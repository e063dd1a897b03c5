package clientstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageStore(t *testing.T) *MessageStore {
	t.Helper()
	s, err := Open(Options{Path: filepath.Join(t.TempDir(), "client.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewMessageStore(s)
}

func TestMessagesNewestFirst(t *testing.T) {
	m := newMessageStore(t)

	first, err := m.Add("Amel", "amel@example.com", "Livraison", "Quand arrive ma commande ?")
	require.NoError(t, err)
	second, err := m.Add("Karim", "karim@example.com", "Produit", "Avez-vous des cactus ?")
	require.NoError(t, err)

	messages := m.List()
	require.Len(t, messages, 2)
	assert.Equal(t, second.ID, messages[0].ID)
	assert.Equal(t, first.ID, messages[1].ID)
	assert.False(t, messages[0].Read)
	assert.Equal(t, 2, m.UnreadCount())
}

func TestMarkReadAndDelete(t *testing.T) {
	m := newMessageStore(t)
	msg, err := m.Add("Amel", "amel@example.com", "Livraison", "Bonjour")
	require.NoError(t, err)

	require.NoError(t, m.MarkRead(msg.ID))
	assert.Zero(t, m.UnreadCount())
	assert.True(t, m.List()[0].Read)

	// Unknown ids are no-ops.
	require.NoError(t, m.MarkRead(9999))
	require.NoError(t, m.Delete(9999))
	require.Len(t, m.List(), 1)

	require.NoError(t, m.Delete(msg.ID))
	assert.Empty(t, m.List())
}
