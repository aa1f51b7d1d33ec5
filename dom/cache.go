package dom

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// 页面类型的选择器集合是固定的，缓存上限足够容纳全部选择器
const selectorCacheSize = 512

var selectors = newSelectorCache(selectorCacheSize)

// lru.Cache不是并发安全的，外层加锁
type selectorCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

func newSelectorCache(size int) *selectorCache {
	return &selectorCache{cache: lru.New(size)}
}

func (c *selectorCache) get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Get(key)
}

func (c *selectorCache) add(key string, v interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(key, v)
}

func (c *selectorCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}
