package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounded_GetPut(t *testing.T) {
	c := NewBounded[int64, string](3)

	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Put(1, "one")
	v, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "one", v)

	// Put on an existing key replaces the value.
	c.Put(1, "uno")
	v, _ = c.Get(1)
	assert.Equal(t, "uno", v)
	assert.Equal(t, 1, c.Len())
}

func TestBounded_CapacityInvariant(t *testing.T) {
	const capacity = 5
	c := NewBounded[int64, string](capacity)

	// Insert capacity+3 distinct keys; the cache must hold exactly
	// `capacity` entries and the three oldest must be gone.
	for i := int64(1); i <= capacity+3; i++ {
		c.Put(i, fmt.Sprintf("value-%d", i))
	}

	assert.Equal(t, capacity, c.Len())
	for i := int64(1); i <= 3; i++ {
		assert.False(t, c.ContainsKey(i), "key %d should have been evicted", i)
	}
	for i := int64(4); i <= capacity+3; i++ {
		assert.True(t, c.ContainsKey(i), "key %d should be present", i)
	}
}

func TestBounded_RecencyOnAccess(t *testing.T) {
	c := NewBounded[string, int](2)

	c.Put("A", 1)
	c.Put("B", 2)

	// Accessing A refreshes it, so inserting C must evict B.
	_, ok := c.Get("A")
	require.True(t, ok)

	c.Put("C", 3)

	assert.True(t, c.ContainsKey("A"))
	assert.False(t, c.ContainsKey("B"))
	assert.True(t, c.ContainsKey("C"))
}

func TestBounded_ContainsKeyDoesNotRefresh(t *testing.T) {
	c := NewBounded[string, int](2)

	c.Put("A", 1)
	c.Put("B", 2)

	// ContainsKey is a pure lookup; A stays least-recent and is evicted.
	require.True(t, c.ContainsKey("A"))

	c.Put("C", 3)

	assert.False(t, c.ContainsKey("A"))
	assert.True(t, c.ContainsKey("B"))
}

func TestBounded_Remove(t *testing.T) {
	c := NewBounded[int64, string](2)

	c.Put(1, "one")
	c.Remove(1)
	assert.False(t, c.ContainsKey(1))
	assert.Equal(t, 0, c.Len())

	// Removing an absent key is a no-op.
	c.Remove(42)
	assert.Equal(t, 0, c.Len())
}

func TestBounded_Clear(t *testing.T) {
	c := NewBounded[int64, string](4)

	for i := int64(1); i <= 4; i++ {
		c.Put(i, "v")
	}
	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Entries())

	// The cache stays usable after a clear.
	c.Put(9, "nine")
	assert.True(t, c.ContainsKey(9))
}

func TestBounded_EntriesLeastRecentFirst(t *testing.T) {
	c := NewBounded[string, int](3)

	c.Put("A", 1)
	c.Put("B", 2)
	c.Put("C", 3)

	// Touch A so the order becomes B, C, A (least-recent first).
	_, _ = c.Get("A")

	entries := c.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "B", entries[0].Key)
	assert.Equal(t, "C", entries[1].Key)
	assert.Equal(t, "A", entries[2].Key)
}

func TestBounded_ReplaceKeepsRecency(t *testing.T) {
	c := NewBounded[string, int](2)

	c.Put("A", 1)
	c.Put("B", 2)

	// Replace updates A's value without promoting it, so the next insert
	// still evicts A.
	require.True(t, c.Replace("A", 10))
	v, _ := c.Get("B")
	assert.Equal(t, 2, v)

	c.Put("C", 3)
	assert.False(t, c.ContainsKey("A"))

	assert.False(t, c.Replace("missing", 0))
}

func TestBounded_Patch(t *testing.T) {
	c := NewBounded[int64, string](3)

	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(3, "c")

	c.Patch(func(key int64, value string) (string, bool) {
		if key == 2 {
			return "patched", true
		}
		return "", false
	})

	v, _ := c.Get(2)
	assert.Equal(t, "patched", v)
	v, _ = c.Get(1)
	assert.Equal(t, "a", v)

	// Patch does not change recency: 1 was refreshed above, so inserting
	// two fresh keys evicts 2 and 3, not 1.
	c.Put(4, "d")
	c.Put(5, "e")
	assert.True(t, c.ContainsKey(1))
}

func TestBounded_ConcurrentAccess(t *testing.T) {
	c := NewBounded[int64, int](16)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := int64((seed + i) % 32)
				c.Put(key, i)
				c.Get(key)
				c.Patch(func(k int64, v int) (int, bool) {
					return v + 1, k == key
				})
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 16)
}
