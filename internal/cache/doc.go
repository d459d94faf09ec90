// Package cache provides a generic LRU cache with hit and eviction counters.
//
//	c := cache.New[string, int](64)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// The gpu package keys it by WGSL source to skip the naga front end when
// the same program text is loaded again, as happens on shader hot reload
// and when one source file holds both stages.
package cache
