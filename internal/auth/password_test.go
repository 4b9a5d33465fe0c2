package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasher_HashAndVerify(t *testing.T) {
	hasher := NewHasher("test-pepper")

	hash, err := hasher.Hash("password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotContains(t, hash, "password123")

	assert.True(t, hasher.Verify(hash, "password123"))
	assert.False(t, hasher.Verify(hash, "password124"))
	assert.False(t, hasher.Verify(hash, ""))
}

func TestHasher_PepperChangesHashInput(t *testing.T) {
	first := NewHasher("pepper-a")
	second := NewHasher("pepper-b")

	hash, err := first.Hash("password123")
	assert.NoError(t, err)

	// the same password under a different pepper must not verify
	assert.False(t, second.Verify(hash, "password123"))
	assert.True(t, first.Verify(hash, "password123"))
}

func TestNewToken(t *testing.T) {
	a, err := NewToken()
	assert.NoError(t, err)
	b, err := NewToken()
	assert.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
