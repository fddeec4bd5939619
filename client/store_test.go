package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get(KeyToken)
	assert.False(t, ok)

	store.Set(KeyToken, "abc")
	v, ok := store.Get(KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	store.Delete(KeyToken)
	_, ok = store.Get(KeyToken)
	assert.False(t, ok)
}

func TestMemoryStore_ReadAndClear(t *testing.T) {
	store := NewMemoryStore()
	store.Set(KeyLoginCallback, "membership")

	v, ok := store.ReadAndClear(KeyLoginCallback)
	assert.True(t, ok)
	assert.Equal(t, "membership", v)

	// A second read sees nothing.
	v, ok = store.ReadAndClear(KeyLoginCallback)
	assert.False(t, ok)
	assert.Empty(t, v)

	_, ok = store.Get(KeyLoginCallback)
	assert.False(t, ok)
}

func TestMemoryStore_ReadAndClearMissingKey(t *testing.T) {
	store := NewMemoryStore()

	v, ok := store.ReadAndClear(KeyRedirectPath)
	assert.False(t, ok)
	assert.Empty(t, v)
}
