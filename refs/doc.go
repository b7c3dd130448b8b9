// Package refs holds the processors that run over reconstructed records
// after extraction: repairing rows whose trailing cells ran together,
// filtering by headword length, merging with a word list, enriching with
// Scrabble data and grouping for publication.
//
// Processors never modify their input slices. JSON inputs are validated
// against embedded JSON Schemas before decoding; a document that does not
// match yields an error wrapping [ErrSchema].
package refs
