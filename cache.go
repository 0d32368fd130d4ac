package treefs

import "github.com/aweris/treefs/internal/cache"

// Cache remembers files passed to Add and returned by Get, so repeated
// reads do not rebuild them from the wrapped adapter. Remove forgets a
// name and All reloads the whole cache.
type Cache struct {
	inner Adapter
	files cache.Cache[Name, File]
}

func NewCache(inner Adapter, opts ...CacheOption) *Cache {
	o := &cacheOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return &Cache{inner: inner, files: cache.New[Name, File](o.size)}
}

func (c *Cache) Add(f File) error {
	if err := c.inner.Add(f); err != nil {
		c.files.Remove(f.Name())
		return err
	}
	c.files.Add(f.Name(), f)
	return nil
}

func (c *Cache) Get(name Name) (File, bool) {
	if f, ok := c.files.Get(name); ok {
		return f, true
	}
	f, ok := c.inner.Get(name)
	if ok {
		c.files.Add(name, f)
	}
	return f, ok
}

func (c *Cache) Contains(name Name) bool {
	return c.files.Has(name) || c.inner.Contains(name)
}

func (c *Cache) Remove(name Name) error {
	c.files.Remove(name)
	return c.inner.Remove(name)
}

func (c *Cache) All() ([]File, error) {
	files, err := c.inner.All()
	if err != nil {
		return nil, err
	}
	c.files.Clear()
	for _, f := range files {
		c.files.Add(f.Name(), f)
	}
	return files, nil
}

func (c *Cache) Persist() error { return Persist(c.inner) }
