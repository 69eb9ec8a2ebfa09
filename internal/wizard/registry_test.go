package wizard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbousquet-onestock/exchange/internal/catalog"
)

func TestRegistryGetOrCreate(t *testing.T) {
	r, err := NewRegistry(8, catalog.New(catalog.DefaultArticles()))
	require.NoError(t, err)

	s1 := r.GetOrCreate("customer-1")
	s2 := r.GetOrCreate("customer-1")
	assert.Same(t, s1, s2, "same id must resolve to the same session")

	s3 := r.GetOrCreate("customer-2")
	assert.NotSame(t, s1, s3)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryDrop(t *testing.T) {
	r, err := NewRegistry(8, catalog.New(catalog.DefaultArticles()))
	require.NoError(t, err)

	s := r.GetOrCreate("customer-1")
	s.ToggleSelection(blackTee)
	r.Drop("customer-1")

	fresh := r.GetOrCreate("customer-1")
	assert.NotSame(t, s, fresh)
	assert.Equal(t, 0, fresh.SelectionCount())
}

func TestRegistryEvictsOldest(t *testing.T) {
	r, err := NewRegistry(2, catalog.New(catalog.DefaultArticles()))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		r.GetOrCreate(fmt.Sprintf("customer-%d", i))
	}

	assert.Equal(t, 2, r.Len())
	_, ok := r.Get("customer-0")
	assert.False(t, ok, "oldest session evicted at capacity")
}
