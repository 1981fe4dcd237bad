package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntityPoolGenerations(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	require.False(t, a.IsZero())
	require.True(t, p.Alive(a))

	require.True(t, p.Destroy(a))
	require.False(t, p.Alive(a))
	require.False(t, p.Destroy(a), "stale id must not destroy twice")

	b := p.Create()
	require.Equal(t, a.Index(), b.Index(), "slot is recycled")
	require.NotEqual(t, a, b)
	require.True(t, p.Alive(b))
	require.False(t, p.Alive(a))
	require.Equal(t, 1, p.Count())
}

func TestZeroIDNeverAlive(t *testing.T) {
	p := NewEntityPool()
	p.Create()
	require.False(t, p.Alive(0))
}

func TestWorldDeferredDestroyClearsStores(t *testing.T) {
	w := NewWorld()
	store := NewPtrComponentStore[int]()
	w.Registry().Register(store)

	id := w.CreateEntity()
	v := 7
	store.Set(id, &v)

	w.MarkForDestruction(id)
	require.True(t, w.Alive(id), "destruction is deferred until flush")
	require.True(t, store.Has(id))

	destroyed := w.FlushDestroyQueue()
	require.Equal(t, []EntityID{id}, destroyed)
	require.False(t, w.Alive(id))
	require.False(t, store.Has(id))
	require.Nil(t, w.FlushDestroyQueue())
}

func TestDestroyNowIsIdempotent(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	require.True(t, w.DestroyNow(id))
	require.False(t, w.DestroyNow(id))
}
