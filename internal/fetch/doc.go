// Package fetch turns a listing page into the ordered plain-text lines the
// parser consumes. It offers a plain HTTP fetcher, a headless-browser fetcher
// for script-rendered pages, and a local-file fetcher for offline runs and
// tests.
package fetch
