// Package enrich looks up a band's members and genres on MusicBrainz.
// Lookups are cached with a TTL and retried with exponential backoff; any
// failure degrades to empty lists so enrichment can never break a scrape run.
package enrich
