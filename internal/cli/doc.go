// Package cli wires the scrape pipeline into the command-line interface.
package cli
