package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/icza/bitio"
)

// Container layout:
//
//	<symbol_count>\n
//	<symbol> <frequency>\n        symbol_count lines, ascending symbol order
//	====\n                        text payload follows
//	==== <bit_count>\n            packed payload follows
//	<payload>
//
// A text payload holds one '0' or '1' character per bit. A packed payload
// holds bit_count bits, most significant bit first, zero padded to a byte.
const delimiter = "===="

const maxSymbols = 256

// PayloadFormat selects how the encoded bits are stored after the header.
type PayloadFormat int

const (
	PayloadText PayloadFormat = iota
	PayloadPacked
)

func (pf PayloadFormat) String() string {
	switch pf {
	case PayloadText:
		return "text"
	case PayloadPacked:
		return "packed"
	}
	return "PayloadFormat(" + strconv.Itoa(int(pf)) + ")"
}

// ParsePayloadFormat maps "text" and "packed" to a PayloadFormat.
func ParsePayloadFormat(name string) (PayloadFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return PayloadText, nil
	case "packed":
		return PayloadPacked, nil
	}
	return PayloadText, fmt.Errorf("unknown payload format %q", name)
}

func writeContainer(w io.Writer, table FrequencyTable, bits bitString, format PayloadFormat) error {
	var out bytes.Buffer
	fmt.Fprintf(&out, "%d\n", table.Len())
	for _, symbol := range table.Symbols() {
		fmt.Fprintf(&out, "%d %d\n", symbol, table.Count(symbol))
	}
	switch format {
	case PayloadText:
		out.WriteString(delimiter + "\n")
		out.WriteString(string(bits))
	case PayloadPacked:
		fmt.Fprintf(&out, "%s %d\n", delimiter, len(bits))
		if err := packBits(&out, bits); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown payload format %v", format)
	}
	_, err := out.WriteTo(w)
	return err
}

func packBits(w io.Writer, bits bitString) error {
	bw := bitio.NewWriter(w)
	for i := 0; i < len(bits); i++ {
		if err := bw.WriteBool(bits[i] == '1'); err != nil {
			return err
		}
	}
	return bw.Close()
}

func unpackBits(payload []byte, bitCount uint64) (bitString, error) {
	want := bitCount / 8
	if bitCount%8 != 0 {
		want++
	}
	if uint64(len(payload)) != want {
		return "", fmt.Errorf("%w: packed payload is %d bytes, expected %d for %d bits", ErrFormat, len(payload), want, bitCount)
	}
	br := bitio.NewReader(bytes.NewReader(payload))
	var sb strings.Builder
	sb.Grow(int(bitCount))
	for i := uint64(0); i < bitCount; i++ {
		bit, err := br.ReadBool()
		if err != nil {
			return "", fmt.Errorf("%w: packed payload: %v", ErrFormat, err)
		}
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return bitString(sb.String()), nil
}

// readContainer parses a container into its frequency table and payload
// bits. All bytes after the delimiter line belong to the payload.
func readContainer(data []byte) (FrequencyTable, bitString, PayloadFormat, error) {
	var table FrequencyTable
	pos := 0

	line, pos, ok := nextLine(data, pos)
	if !ok {
		return table, "", PayloadText, fmt.Errorf("%w: missing symbol count", ErrFormat)
	}
	declared, err := strconv.Atoi(line)
	if err != nil || declared < 0 || declared > maxSymbols {
		return table, "", PayloadText, fmt.Errorf("%w: invalid symbol count %q", ErrFormat, line)
	}

	for i := 0; i < declared; i++ {
		line, pos, ok = nextLine(data, pos)
		if !ok {
			return table, "", PayloadText, fmt.Errorf("%w: header truncated after %d of %d symbols", ErrFormat, i, declared)
		}
		if strings.HasPrefix(line, delimiter) {
			return table, "", PayloadText, fmt.Errorf("%w: declared %d symbols, found %d", ErrFormat, declared, i)
		}
		symbol, freq, err := parsePair(line)
		if err != nil {
			return table, "", PayloadText, err
		}
		if table.Count(symbol) != 0 {
			return table, "", PayloadText, fmt.Errorf("%w: duplicate symbol %d", ErrFormat, symbol)
		}
		if table.Total()+freq < table.Total() {
			return table, "", PayloadText, fmt.Errorf("%w: frequencies overflow", ErrFormat)
		}
		table.Set(symbol, freq)
	}

	line, pos, ok = nextLine(data, pos)
	if !ok {
		return table, "", PayloadText, fmt.Errorf("%w: missing %q delimiter", ErrFormat, delimiter)
	}
	payload := data[pos:]
	switch {
	case line == delimiter:
		return table, bitString(payload), PayloadText, nil
	case strings.HasPrefix(line, delimiter+" "):
		bitCount, err := strconv.ParseUint(line[len(delimiter)+1:], 10, 64)
		if err != nil {
			return table, "", PayloadPacked, fmt.Errorf("%w: invalid bit count in %q", ErrFormat, line)
		}
		bits, err := unpackBits(payload, bitCount)
		return table, bits, PayloadPacked, err
	}
	if _, _, err := parsePair(line); err == nil {
		return table, "", PayloadText, fmt.Errorf("%w: declared %d symbols but more entries follow", ErrFormat, declared)
	}
	return table, "", PayloadText, fmt.Errorf("%w: malformed delimiter %q", ErrFormat, line)
}

func parsePair(line string) (Symbol, uint64, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: malformed symbol entry %q", ErrFormat, line)
	}
	symbol, err := strconv.ParseUint(fields[0], 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid symbol %q", ErrFormat, fields[0])
	}
	freq, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil || freq == 0 {
		return 0, 0, fmt.Errorf("%w: invalid frequency %q for symbol %d", ErrFormat, fields[1], symbol)
	}
	return Symbol(symbol), freq, nil
}

// nextLine returns the line starting at pos without its '\n' and the
// position just past it. Header lines must be newline terminated.
func nextLine(data []byte, pos int) (string, int, bool) {
	idx := bytes.IndexByte(data[pos:], '\n')
	if idx < 0 {
		return "", pos, false
	}
	return string(data[pos : pos+idx]), pos + idx + 1, true
}
