// Package cache holds caching settings and the Redis adapter.
//
// The catalog snapshot itself lives in core/reconcile; this package only
// provides its TTL and, when a Redis URL is configured, a fiber.Storage
// implementation backing the request limiter.
package cache
