// Package redis provides Redis client initialization, health checking and a
// Redis-backed cache.Store for server-side session storage.
//
// Connect parses the URL, retries the initial ping with exponential backoff and
// returns a ready client:
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  time.Second,
//		ConnectTimeout: 30 * time.Second,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Healthcheck returns a ping function for readiness probes:
//
//	check := redis.Healthcheck(client)
//	if err := check(ctx); err != nil { ... }
//
// NewStore adapts any go-redis client to cache.Store:
//
//	store := redis.NewStore(client)
//	sessions := sessionstore.NewCacheStore(store, codec)
//
// Both redis:// and rediss:// (TLS) URL schemes are supported.
//
// # Errors
//
//   - ErrParseURL: the connection URL is malformed
//   - ErrNotReady: Redis did not answer a ping within the retry budget
//   - ErrMissingURL: no connection URL was provided
//   - ErrUnhealthy: the health check ping failed
//   - ErrCommand: a Store command failed; the go-redis error is wrapped
package redis
