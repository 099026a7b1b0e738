package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionStore(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore()
	store.now = func() time.Time { return now }

	a := store.Get("a")
	assert.Same(t, a, store.Get("a"))
	store.Get("b")
	assert.Equal(t, 2, store.Len())

	now = now.Add(20 * time.Minute)
	store.Get("b")

	assert.Equal(t, 1, store.Sweep(15*time.Minute))
	assert.Equal(t, 1, store.Len())
	assert.NotSame(t, a, store.Get("a"))

	store.Delete("a")
	store.Delete("b")
	assert.Zero(t, store.Len())
}
