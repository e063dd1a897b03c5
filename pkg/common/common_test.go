package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSha256HashWithSalt(t *testing.T) {
	a := Sha256HashWithSalt("admin123", "salt-a")
	b := Sha256HashWithSalt("admin123", "salt-a")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	assert.NotEqual(t, a, Sha256HashWithSalt("admin123", "salt-b"))
	assert.NotEqual(t, a, Sha256HashWithSalt("admin124", "salt-a"))
}

func TestUUIDint64(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		assert.Greater(t, id, int64(0))
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestUUID(t *testing.T) {
	assert.NotEmpty(t, UUID())
	assert.NotEqual(t, UUID(), UUID())
}
