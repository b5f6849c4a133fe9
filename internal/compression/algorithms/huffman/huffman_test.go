package huffman

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
)

const abracadabraContainer = "5\n97 5\n98 2\n99 1\n100 1\n114 2\n====\n01101110100010101101110"

func roundTripInputs() map[string][]byte {
	rng := rand.New(rand.NewSource(1))
	random := make([]byte, 10000)
	rng.Read(random)
	skewed := make([]byte, 5000)
	for i := range skewed {
		skewed[i] = byte(int(rng.ExpFloat64()*4) % 256)
	}
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	return map[string][]byte{
		"empty":       {},
		"one byte":    {'x'},
		"repeated":    []byte("AAAA"),
		"zero bytes":  make([]byte, 17),
		"two symbols": []byte("ababababbbba"),
		"abracadabra": []byte("abracadabra"),
		"text":        []byte("the quick brown fox jumps over the lazy dog\nTHE END\r\n"),
		"all bytes":   all,
		"random":      random,
		"skewed":      skewed,
	}
}

func TestCountFrequencies(t *testing.T) {
	table := CountFrequencies([]byte("abracadabra"))
	expect := map[Symbol]uint64{'a': 5, 'b': 2, 'r': 2, 'c': 1, 'd': 1}
	if table.Len() != len(expect) {
		t.Errorf("expected %d symbols, got %d", len(expect), table.Len())
	}
	for symbol, count := range expect {
		if actual := table.Count(symbol); actual != count {
			t.Errorf("symbol %q: expected %d, got %d", symbol, count, actual)
		}
	}
	if table.Count('z') != 0 {
		t.Errorf("absent symbol has count %d", table.Count('z'))
	}
	expectSymbols := []Symbol{'a', 'b', 'c', 'd', 'r'}
	if actual := table.Symbols(); !bytes.Equal(actual, expectSymbols) {
		t.Errorf("wrong symbol order:\n\texpect: %v\n\tactual: %v", expectSymbols, actual)
	}
}

func TestCountFrequencies_Conservation(t *testing.T) {
	for name, input := range roundTripInputs() {
		t.Run(name, func(t *testing.T) {
			table := CountFrequencies(input)
			var sum uint64
			for _, symbol := range table.Symbols() {
				if table.Count(symbol) == 0 {
					t.Errorf("symbol %d listed with zero count", symbol)
				}
				sum += table.Count(symbol)
			}
			if sum != uint64(len(input)) || table.Total() != sum {
				t.Errorf("sum %d, total %d, input length %d", sum, table.Total(), len(input))
			}
		})
	}
}

func TestFrequencyTable_Set(t *testing.T) {
	var table FrequencyTable
	table.Set('a', 3)
	table.Set('b', 2)
	table.Set('a', 1)
	if table.Len() != 2 || table.Total() != 3 {
		t.Errorf("expected 2 symbols totalling 3, got %d totalling %d", table.Len(), table.Total())
	}
	table.Set('b', 0)
	if table.Len() != 1 || table.Total() != 1 {
		t.Errorf("expected 1 symbol totalling 1, got %d totalling %d", table.Len(), table.Total())
	}
}

func TestBuildTree(t *testing.T) {
	if _, err := buildTree(FrequencyTable{}); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}

	for name, input := range roundTripInputs() {
		if len(input) == 0 {
			continue
		}
		t.Run(name, func(t *testing.T) {
			table := CountFrequencies(input)
			tree, err := buildTree(table)
			if err != nil {
				t.Fatalf("buildTree failed: %v", err)
			}
			if leaves := countLeaves(tree); leaves != table.Len() {
				t.Errorf("expected %d leaves, got %d", table.Len(), leaves)
			}
			if tree.getFrequency() != uint64(len(input)) {
				t.Errorf("root frequency %d, input length %d", tree.getFrequency(), len(input))
			}
		})
	}
}

func TestBuildTree_SingleSymbol(t *testing.T) {
	tree, err := buildTree(CountFrequencies([]byte("AAAA")))
	if err != nil {
		t.Fatalf("buildTree failed: %v", err)
	}
	leaf, ok := tree.(huffmanLeaf)
	if !ok {
		t.Fatalf("expected a leaf root, got %T", tree)
	}
	if leaf.symbol != 'A' || leaf.freq != 4 {
		t.Errorf("wrong leaf: %+v", leaf)
	}
	codes := buildCodeTable(tree)
	if len(codes) != 1 || codes['A'] != "0" {
		t.Errorf("expected {A: 0}, got %v", codes)
	}
}

func TestBuildCodeTable_Abracadabra(t *testing.T) {
	tree, err := buildTree(CountFrequencies([]byte("abracadabra")))
	if err != nil {
		t.Fatalf("buildTree failed: %v", err)
	}
	expect := CodeTable{'a': "0", 'c': "100", 'd': "101", 'b': "110", 'r': "111"}
	actual := buildCodeTable(tree)
	if len(actual) != len(expect) {
		t.Fatalf("expected %d codes, got %d", len(expect), len(actual))
	}
	for symbol, code := range expect {
		if actual[symbol] != code {
			t.Errorf("symbol %q: expected %s, got %s", symbol, code, actual[symbol])
		}
	}
}

func TestBuildCodeTable_PrefixFree(t *testing.T) {
	for name, input := range roundTripInputs() {
		if len(input) == 0 {
			continue
		}
		t.Run(name, func(t *testing.T) {
			tree, err := buildTree(CountFrequencies(input))
			if err != nil {
				t.Fatalf("buildTree failed: %v", err)
			}
			codes := buildCodeTable(tree)
			for a, codeA := range codes {
				if len(codeA) == 0 {
					t.Errorf("symbol %d has an empty code", a)
				}
				for b, codeB := range codes {
					if a != b && strings.HasPrefix(string(codeB), string(codeA)) {
						t.Errorf("code %s of %d is a prefix of %s of %d", codeA, a, codeB, b)
					}
				}
			}
		})
	}
}

func TestEncode_MissingSymbol(t *testing.T) {
	codes := CodeTable{'a': "0", 'b': "1"}
	_, err := encode([]byte("abc"), codes, nil)
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("expected ErrEncoding, got %v", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tree, err := buildTree(CountFrequencies([]byte("abracadabra")))
	if err != nil {
		t.Fatalf("buildTree failed: %v", err)
	}
	for _, bits := range []bitString{"1", "11", "01101", "01x", "0 1"} {
		if _, err := decode(bits, tree); !errors.Is(err, ErrFormat) {
			t.Errorf("decode(%q): expected ErrFormat, got %v", bits, err)
		}
	}

	single, _ := buildTree(CountFrequencies([]byte("zz")))
	if _, err := decode("01", single); !errors.Is(err, ErrFormat) {
		t.Errorf("single symbol decode: expected ErrFormat, got %v", err)
	}
}

func TestCompress_Abracadabra(t *testing.T) {
	input := []byte("abracadabra")
	out, err := Compress(input, Options{})
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if string(out) != abracadabraContainer {
		t.Errorf("wrong container:\n\texpect: %q\n\tactual: %q", abracadabraContainer, out)
	}
	payload := out[strings.Index(string(out), "====\n")+5:]
	if len(payload) > 8*len(input) {
		t.Errorf("payload of %d bits is larger than the input", len(payload))
	}

	packed, err := Compress(input, Options{Format: PayloadPacked})
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	expectPacked := "5\n97 5\n98 2\n99 1\n100 1\n114 2\n==== 23\n\x6e\x8a\xdc"
	if string(packed) != expectPacked {
		t.Errorf("wrong packed container:\n\texpect: %q\n\tactual: %q", expectPacked, packed)
	}
}

func TestCompress_Empty(t *testing.T) {
	for _, format := range []PayloadFormat{PayloadText, PayloadPacked} {
		t.Run(format.String(), func(t *testing.T) {
			out, err := Compress(nil, Options{Format: format})
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			expect := "0\n====\n"
			if format == PayloadPacked {
				expect = "0\n==== 0\n"
			}
			if string(out) != expect {
				t.Errorf("expected %q, got %q", expect, out)
			}
			decoded, err := Decompress(out)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if len(decoded) != 0 {
				t.Errorf("expected empty output, got %q", decoded)
			}
		})
	}
}

func TestCompress_SingleSymbol(t *testing.T) {
	out, err := Compress([]byte("AAAA"), Options{})
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if expect := "1\n65 4\n====\n0000"; string(out) != expect {
		t.Errorf("expected %q, got %q", expect, out)
	}
	decoded, err := Decompress(out)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if string(decoded) != "AAAA" {
		t.Errorf("expected AAAA, got %q", decoded)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []PayloadFormat{PayloadText, PayloadPacked} {
		for name, input := range roundTripInputs() {
			t.Run(format.String()+"/"+name, func(t *testing.T) {
				out, err := Compress(input, Options{Format: format})
				if err != nil {
					t.Fatalf("Compress failed: %v", err)
				}
				decoded, err := Decompress(out)
				if err != nil {
					t.Fatalf("Decompress failed: %v", err)
				}
				if !bytes.Equal(decoded, input) {
					t.Errorf("round trip mismatch: %d bytes in, %d bytes out", len(input), len(decoded))
				}
			})
		}
	}
}

func TestCompress_Deterministic(t *testing.T) {
	for name, input := range roundTripInputs() {
		t.Run(name, func(t *testing.T) {
			first, err := Compress(input, Options{})
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			second, err := Compress(append([]byte(nil), input...), Options{})
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			if !bytes.Equal(first, second) {
				t.Errorf("two compressions of the same input differ")
			}
		})
	}
}

func TestCompress_Progress(t *testing.T) {
	input := bytes.Repeat([]byte("mississippi "), 20000)
	var progress bytes.Buffer
	out, err := Compress(input, Options{Progress: true, ProgressOut: &progress})
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if progress.Len() == 0 {
		t.Errorf("progress bar wrote nothing")
	}
	decoded, err := Decompress(out)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(decoded, input) {
		t.Errorf("round trip mismatch")
	}
}

func TestDecompress_Malformed(t *testing.T) {
	testData := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad count", "abc\n====\n"},
		{"negative count", "-1\n====\n"},
		{"count too large", "257\n====\n"},
		{"missing delimiter", "1\n97 1\n0"},
		{"missing delimiter line", "5\n97 5\n98 2\n99 1\n100 1\n114 2\n01101110100010101101110"},
		{"malformed delimiter", "1\n97 1\n===\n0"},
		{"too few pairs", "2\n97 1\n====\n0"},
		{"too many pairs", "1\n97 1\n98 1\n====\n0"},
		{"truncated header", "2\n97 1\n"},
		{"symbol out of range", "1\n300 1\n====\n0"},
		{"zero frequency", "1\n97 0\n====\n"},
		{"pair with extra field", "1\n97 1 2\n====\n0"},
		{"duplicate symbol", "2\n97 1\n97 2\n====\n01"},
		{"short payload", "1\n97 2\n====\n0"},
		{"long payload", "1\n97 1\n====\n00"},
		{"stray character", "2\n97 1\n98 1\n====\n01x"},
		{"trailing newline", "2\n97 1\n98 1\n====\n01\n"},
		{"truncated code", abracadabraContainer[:len(abracadabraContainer)-2]},
		{"payload without symbols", "0\n====\n01"},
		{"bad bit count", "1\n97 3\n==== x\n\x00"},
		{"packed length mismatch", "1\n97 3\n==== 3\n\x00\x00"},
		{"bit count overflow", "0\n==== 18446744073709551615\n"},
		{"bit count near overflow", "1\n97 3\n==== 18446744073709551609\n"},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			out, err := Decompress([]byte(row.input))
			if !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
			if out != nil {
				t.Errorf("expected no output, got %q", out)
			}
		})
	}
}

func TestParsePayloadFormat(t *testing.T) {
	for name, expect := range map[string]PayloadFormat{"": PayloadText, "text": PayloadText, "Packed": PayloadPacked} {
		actual, err := ParsePayloadFormat(name)
		if err != nil || actual != expect {
			t.Errorf("ParsePayloadFormat(%q) = %v, %v", name, actual, err)
		}
	}
	if _, err := ParsePayloadFormat("zip"); err == nil {
		t.Errorf("expected an error for an unknown format")
	}
}

func TestReaderAndWriter(t *testing.T) {
	input := []byte("she sells sea shells by the sea shore")

	cr, cw := NewCompressionReaderAndWriter(Options{Format: PayloadPacked})
	if _, err := cr.Read(make([]byte, 1)); err == nil {
		t.Errorf("expected an error reading before close")
	}
	if _, err := cw.Write(input); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := cw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	compressed, err := io.ReadAll(cr)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	_ = cr.Close()

	dr, dw := NewDecompressionReaderAndWriter()
	if _, err := dw.Write(compressed); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := dw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	decompressed, err := io.ReadAll(dr)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !bytes.Equal(decompressed, input) {
		t.Errorf("expected %q, got %q", input, decompressed)
	}

	_, dw = NewDecompressionReaderAndWriter()
	_, _ = dw.Write([]byte("no header"))
	if err := dw.Close(); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}
