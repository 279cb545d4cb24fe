// Package redis provides Redis-backed workflow collaborators: an append-only
// audit log, an event stream and a distributed subject lock.
package redis
