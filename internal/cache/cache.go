// Package cache provides the in-memory caches behind the caching adapter.
package cache

import lru "github.com/hashicorp/golang-lru/v2"

// Cache maps keys to values.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Add(key K, value V)
	Has(key K) bool
	Remove(key K)
	Clear()
	Len() int
}

// New returns an LRU cache holding at most maxSize entries, or an
// unbounded map when maxSize is not positive.
func New[K comparable, V any](maxSize int) Cache[K, V] {
	if maxSize <= 0 {
		return &MapCache[K, V]{items: map[K]V{}}
	}
	c, err := lru.New[K, V](maxSize)
	if err != nil {
		// only fails on a non-positive size
		panic(err)
	}
	return &LRUCache[K, V]{lru: c}
}

// MapCache is an unbounded cache.
type MapCache[K comparable, V any] struct {
	items map[K]V
}

func (c *MapCache[K, V]) Get(key K) (V, bool) {
	v, ok := c.items[key]
	return v, ok
}

func (c *MapCache[K, V]) Add(key K, value V) { c.items[key] = value }

func (c *MapCache[K, V]) Has(key K) bool {
	_, ok := c.items[key]
	return ok
}

func (c *MapCache[K, V]) Remove(key K) { delete(c.items, key) }
func (c *MapCache[K, V]) Clear()       { clear(c.items) }
func (c *MapCache[K, V]) Len() int     { return len(c.items) }

// LRUCache evicts the least recently used entry once full.
type LRUCache[K comparable, V any] struct {
	lru *lru.Cache[K, V]
}

func (c *LRUCache[K, V]) Get(key K) (V, bool) { return c.lru.Get(key) }
func (c *LRUCache[K, V]) Add(key K, value V)  { c.lru.Add(key, value) }
func (c *LRUCache[K, V]) Has(key K) bool      { return c.lru.Contains(key) }
func (c *LRUCache[K, V]) Remove(key K)        { c.lru.Remove(key) }
func (c *LRUCache[K, V]) Clear()              { c.lru.Purge() }
func (c *LRUCache[K, V]) Len() int            { return c.lru.Len() }
