// Package event defines the structured concert record produced by the parser.
//
// Field names on the JSON encoding are part of the contract with downstream
// consumers (search index, message bus) and must not change. Each event gets a
// deterministic UUIDv5 identifier derived from its date, band, and location so
// repeated scrapes of the same listing converge on the same IDs.
package event
