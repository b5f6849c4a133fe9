package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	pb "github.com/cheggaaa/pb/v3"
)

// progressChunk is how many input bytes are encoded between progress bar
// updates.
const progressChunk = 64 * 1024

// Options configures compression.
type Options struct {
	Format PayloadFormat
	// Progress draws a byte progress bar on ProgressOut (os.Stderr when
	// nil) while the payload is encoded.
	Progress    bool
	ProgressOut io.Writer
}

type CompressionWriter struct {
	core *compressionCore
}
type CompressionReader struct {
	core *compressionCore
}

type compressionCore struct {
	options             Options
	isInputBufferClosed bool
	inputBuffer         *bytes.Buffer
	outputBuffer        *bytes.Buffer
}

// Read returns the container once the writer side has been closed.
func (cr *CompressionReader) Read(data []byte) (int, error) {
	if !cr.core.isInputBufferClosed {
		return 0, errors.New("input buffer not closed")
	}
	return cr.core.outputBuffer.Read(data)
}

func (cr *CompressionReader) Close() error {
	cr.core.inputBuffer.Reset()
	cr.core.outputBuffer.Reset()
	return nil
}

func (cw *CompressionWriter) Write(data []byte) (int, error) {
	if cw.core.isInputBufferClosed {
		return 0, errors.New("write after close")
	}
	return cw.core.inputBuffer.Write(data)
}

// Close compresses everything written so far into the output buffer.
func (cw *CompressionWriter) Close() error {
	if cw.core.isInputBufferClosed {
		return nil
	}
	cw.core.isInputBufferClosed = true
	originalData := cw.core.inputBuffer.Bytes()
	compressedData, err := Compress(originalData, cw.core.options)
	if err != nil {
		return err
	}
	_, err = cw.core.outputBuffer.Write(compressedData)
	return err
}

// NewCompressionReaderAndWriter returns a connected pair: bytes written to
// the writer are compressed when it is closed and can then be read back
// from the reader.
func NewCompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser) {
	newCompressionCore := &compressionCore{
		options:      options,
		inputBuffer:  new(bytes.Buffer),
		outputBuffer: new(bytes.Buffer),
	}
	return &CompressionReader{core: newCompressionCore}, &CompressionWriter{core: newCompressionCore}
}

// Compress encodes content into a self-describing container. Empty content
// produces a container with no symbols and an empty payload.
func Compress(content []byte, options Options) ([]byte, error) {
	table := CountFrequencies(content)
	var bits bitString
	if table.Len() > 0 {
		tree, err := buildTree(table)
		if err != nil {
			return nil, err
		}
		codes := buildCodeTable(tree)
		var bar *pb.ProgressBar
		if options.Progress {
			bar = newProgressBar(len(content), options.ProgressOut)
		}
		bits, err = encode(content, codes, bar)
		if bar != nil {
			bar.Finish()
		}
		if err != nil {
			return nil, err
		}
	}
	var out bytes.Buffer
	if err := writeContainer(&out, table, bits, options.Format); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func newProgressBar(total int, w io.Writer) *pb.ProgressBar {
	if w == nil {
		w = os.Stderr
	}
	bar := pb.New(total)
	bar.Set(pb.Bytes, true)
	bar.SetWriter(w)
	return bar.Start()
}

// encode concatenates the code of every byte of input, in order.
func encode(input []byte, codes CodeTable, bar *pb.ProgressBar) (bitString, error) {
	var size int
	for _, symbol := range input {
		encoding, ok := codes[symbol]
		if !ok {
			return "", fmt.Errorf("%w: byte %d", ErrEncoding, symbol)
		}
		size += len(encoding)
	}
	var output strings.Builder
	output.Grow(size)
	for i, symbol := range input {
		output.WriteString(string(codes[symbol]))
		if bar != nil && (i+1)%progressChunk == 0 {
			bar.Add(progressChunk)
		}
	}
	if bar != nil {
		bar.SetCurrent(int64(len(input)))
	}
	return bitString(output.String()), nil
}
