package regex

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 128

// Cache memoizes compiled patterns by their source text. Only successful
// compilations are kept.
type Cache struct {
	entries *lru.Cache[string, *Regex]
}

func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	entries, err := lru.New[string, *Regex](size)
	if err != nil {
		return nil, err
	}

	return &Cache{entries: entries}, nil
}

func (c *Cache) Compile(pattern string) (*Regex, error) {
	if re, ok := c.entries.Get(pattern); ok {
		return re, nil
	}

	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	c.entries.Add(pattern, re)

	return re, nil
}

func (c *Cache) Len() int {
	return c.entries.Len()
}
