// Package storage persists scrape results on disk: timestamped run dumps, a
// snapshot of the last run for detecting newly listed events, and the
// enrichment cache.
package storage
