// Package sessionstore persists authentication state across requests.
//
// A Store keeps a Record (key/value bag holding the profile map and auxiliary
// attributes such as the originally requested URL) for the client that made
// the request. Two backends share the same contract:
//
//   - CacheStore keeps the record in a cache.Store (memory, Redis). Only a
//     random session identifier travels in a cookie.
//   - CookieStore keeps everything in the client's cookies, one cookie per
//     key, encrypted and compressed. The server is stateless.
//
// # Usage
//
//	codec := serializer.NewCodec(serializer.New(), zstd, enc)
//	store, err := sessionstore.NewCacheStore(redis.NewStore(client), codec,
//		sessionstore.WithTTL(30*time.Minute),
//		sessionstore.WithLogger(log),
//	)
//
//	if err := store.Set(ctx, sessionstore.RequestedURLKey, ctx.FullURL()); err != nil { ... }
//	url, ok := store.Get(ctx, sessionstore.RequestedURLKey)
//	renewed, err := store.Renew(ctx)   // after login: new identifier, same data
//	destroyed, err := store.Destroy(ctx) // logout
//
// # Identifier Consistency
//
// The session identifier is cached in a request attribute, so every Get and
// Set within one request sees the same identifier even before the response
// cookie reaches the client. Values written earlier in the same request are
// carried over by Renew.
//
// # Sensitive Data
//
// Profiles and profile maps are stripped of their Sensitive subset before they
// are persisted. The caller's in-memory profile keeps its secrets.
//
// # Corruption
//
// A record that fails to decrypt, decompress or decode is treated as absent.
// Losing authentication state is acceptable; failing the request is not.
//
// # Consistency
//
// CacheStore.Set is a read-modify-write of the whole record against the
// backing cache with no cross-request locking. Concurrent requests for the same
// session writing at the same time may lose one of the updates.
//
// # Size
//
// CookieStore refuses to write a cookie whose Set-Cookie header would exceed
// the configured size (4KB by default) and returns an error wrapping
// ErrTransportLimitExceeded. The value is dropped rather than truncated.
package sessionstore
