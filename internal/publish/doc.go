// Package publish hands finished event records to downstream transports.
package publish
