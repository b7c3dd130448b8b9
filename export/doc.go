// Package export persists extraction results: JSON documents written
// atomically, plain-text reports and an SQLite database.
package export
