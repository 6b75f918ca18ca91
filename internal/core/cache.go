package core

// Cache remembers the URL each local file resolved to during one run. It is
// owned by a single run and is not safe for concurrent use.
type Cache struct {
	entries map[string]string
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

func (c *Cache) Get(path string) (string, bool) {
	url, ok := c.entries[path]
	return url, ok
}

// Put stores url for path unless path already has an entry; entries are
// never overwritten. It reports whether the entry was added.
func (c *Cache) Put(path, url string) bool {
	if _, exists := c.entries[path]; exists {
		return false
	}
	c.entries[path] = url
	return true
}

func (c *Cache) Len() int {
	return len(c.entries)
}
