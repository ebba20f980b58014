// Package cache provides the key/value collaborator used by server-side
// session storage, and an in-process implementation of it.
//
// Store is the contract a backing cache satisfies: byte values addressed by
// string keys, written with a time-to-live. The Redis implementation lives in
// integration/database/redis; MemoryStore keeps entries in process:
//
//	store := cache.NewMemoryStore(10000)
//	err := store.Set(ctx, "session$abc", blob, 30*time.Minute)
//	blob, found, err := store.Get(ctx, "session$abc")
//
// MemoryStore is built on LRUCache, a generic thread-safe cache with
// least-recently-used eviction:
//
//	c := cache.NewLRUCache[string, *User](100)
//	c.Put("user:123", u)
//	u, found := c.Get("user:123")
//	c.SetEvictCallback(func(key string, u *User) { ... })
//
// All operations are O(1) and safe for concurrent use.
package cache
