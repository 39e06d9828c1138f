// Package cache provides a small generic LRU cache with hit statistics,
// built on hashicorp/golang-lru's simplelru.
//
//	c := cache.New[string, edgelight.Resolution](256)
//	c.Set("com.whatsapp", res)
//	res, ok := c.Get("com.whatsapp")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
