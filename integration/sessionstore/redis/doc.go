// Package redis persists the client session in Redis, for headless SDK
// deployments (bots, daemons, shared workers) where local disk is not an
// option or several processes share one login.
//
// Connect validates the connection URL and verifies connectivity with a
// ping before returning, retrying with a fixed interval so transient
// startup races with the Redis container resolve themselves:
//
//	rdb, err := redis.Connect(ctx, redis.Config{ConnectionURL: url})
//	if err != nil { ... }
//
//	store := redis.NewStore(rdb)
//	sessions, err := session.NewManager(ctx, store)
//
// Session state lives in a single hash so load and clear stay atomic.
package redis
