package treefs

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hashed shards leaf files into a wrapped adapter under
// <h[0:2]>/<h[2:4]>/<h[4:]><ext>, where h is the hex digest of the name.
// Directories cannot be added.
//
// All returns the shard directories of the wrapped adapter: original
// names are not recoverable from their digests.
type Hashed struct {
	inner Adapter
	hash  func(string) string
}

// NewHashed shards into inner using SHA-1 unless configured otherwise.
func NewHashed(inner Adapter, opts ...HashedOption) *Hashed {
	h := &Hashed{inner: inner, hash: hasher(HashSHA1)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func hasher(alg HashAlgorithm) func(string) string {
	if alg == HashBLAKE3 {
		return func(s string) string {
			sum := blake3.Sum256([]byte(s))
			return hex.EncodeToString(sum[:])
		}
	}
	return func(s string) string {
		sum := sha1.Sum([]byte(s))
		return hex.EncodeToString(sum[:])
	}
}

// ShardPath returns the three path segments name is stored under. Names
// whose extension makes the last segment too long yield an ErrInvalidName.
func (h *Hashed) ShardPath(name Name) ([3]Name, error) {
	sum := h.hash(name.String())
	leaf, err := NewName(sum[4:] + name.Ext())
	if err != nil {
		return [3]Name{}, fmt.Errorf("shard %s: %w", name, err)
	}
	return [3]Name{{value: sum[0:2]}, {value: sum[2:4]}, leaf}, nil
}

func (h *Hashed) Add(f File) error {
	if _, ok := f.(*Directory); ok {
		return fmt.Errorf("add %s: %w", f.Name(), ErrDirectoryNotSupported)
	}
	shard, err := h.ShardPath(f.Name())
	if err != nil {
		return err
	}
	top, mid := h.shards(shard)
	mid = mid.Add(Rename(f, shard[2]))
	return h.inner.Add(top.Add(mid))
}

func (h *Hashed) Get(name Name) (File, bool) {
	shard, err := h.ShardPath(name)
	if err != nil {
		return nil, false
	}
	_, mid := h.shards(shard)
	f, ok := mid.Get(shard[2])
	if !ok {
		return nil, false
	}
	return Rename(f, name), true
}

func (h *Hashed) Contains(name Name) bool {
	shard, err := h.ShardPath(name)
	if err != nil {
		return false
	}
	_, mid := h.shards(shard)
	return mid.Contains(shard[2])
}

// Remove of a name that cannot be sharded is a no-op: it was never stored.
func (h *Hashed) Remove(name Name) error {
	shard, err := h.ShardPath(name)
	if err != nil {
		return nil
	}
	top, mid := h.shards(shard)
	if !mid.Contains(shard[2]) {
		return nil
	}
	return h.inner.Add(top.Add(mid.Remove(shard[2])))
}

func (h *Hashed) All() ([]File, error) { return h.inner.All() }

// shards returns the two directory levels for shard, empty when absent.
func (h *Hashed) shards(shard [3]Name) (top, mid *Directory) {
	top = EmptyDirectory(shard[0])
	if f, ok := h.inner.Get(shard[0]); ok {
		if d, ok := f.(*Directory); ok && d.Err() == nil {
			top = d
		}
	}
	mid = EmptyDirectory(shard[1])
	if f, ok := top.Get(shard[1]); ok {
		if d, ok := f.(*Directory); ok && d.Err() == nil {
			mid = d
		}
	}
	return top, mid
}
