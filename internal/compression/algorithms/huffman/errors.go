package huffman

import "errors"

var (
	// ErrFormat reports a malformed container: a bad header, a missing
	// delimiter or a payload that does not decode cleanly.
	ErrFormat = errors.New("huffman: malformed container")

	// ErrEncoding reports an input byte that has no code in the code table.
	ErrEncoding = errors.New("huffman: symbol has no code")

	// ErrEmptyTable is returned when a tree is requested for a frequency
	// table without symbols.
	ErrEmptyTable = errors.New("huffman: empty frequency table")
)
