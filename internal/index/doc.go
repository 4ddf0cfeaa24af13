// Package index stores scraped events in a local sqlite database keyed by
// their deterministic IDs. It realizes the search-index boundary for local
// operation: upserts converge across repeated scrapes and never lose
// enrichment data to an un-enriched run.
package index
