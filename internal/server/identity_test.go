package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityGetOrCreate(t *testing.T) {
	assert := assert.New(t)
	store := NewIdentityStore()

	id := store.GetOrCreate("Alice")

	assert.NotEmpty(id)
	assert.Equal(1, store.Count())

	// Same name always maps to the same id.
	assert.Equal(id, store.GetOrCreate("Alice"))
	assert.Equal(1, store.Count())

	// Different names get distinct ids.
	other := store.GetOrCreate("Bob")
	assert.NotEqual(id, other)
	assert.Equal(2, store.Count())
}

func TestIdentityLookup(t *testing.T) {
	assert := assert.New(t)
	store := NewIdentityStore()

	_, exists := store.Lookup("Alice")
	assert.False(exists)

	id := store.GetOrCreate("Alice")

	found, exists := store.Lookup("Alice")
	assert.True(exists)
	assert.Equal(id, found)
}
