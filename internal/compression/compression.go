package compression

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/adilg123/huffman-compression-tool/internal/compression/algorithms/huffman"
)

const (
	AlgorithmHuffman       = "huffman"
	AlgorithmHuffmanPacked = "huffman-packed"
)

// ErrUnsupportedAlgorithm is returned for an algorithm name that has no
// registered factory.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

// Options contains compression/decompression options
type Options struct {
	Algorithm string
	// Progress shows a progress bar on stderr while compressing.
	Progress bool
}

// Stats contains compression statistics
type Stats struct {
	OriginalSize     int
	ProcessedSize    int
	CompressionRatio float64
	Algorithm        string
}

// AlgorithmFactory defines the interface for compression algorithms
type AlgorithmFactory interface {
	NewCompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser)
	NewDecompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser)
	Description() string
	Extension() string
}

// factoryMap maps algorithm names to their factories
var factoryMap = map[string]AlgorithmFactory{
	AlgorithmHuffman:       &HuffmanFactory{Format: huffman.PayloadText},
	AlgorithmHuffmanPacked: &HuffmanFactory{Format: huffman.PayloadPacked},
}

// HuffmanFactory produces Huffman containers with the given payload format.
// Decompression accepts both formats.
type HuffmanFactory struct {
	Format huffman.PayloadFormat
}

func (f *HuffmanFactory) NewCompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser) {
	return huffman.NewCompressionReaderAndWriter(huffman.Options{
		Format:   f.Format,
		Progress: options.Progress,
	})
}

func (f *HuffmanFactory) NewDecompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser) {
	return huffman.NewDecompressionReaderAndWriter()
}

func (f *HuffmanFactory) Description() string {
	if f.Format == huffman.PayloadPacked {
		return "Huffman coding - frequency header followed by bit-packed codes"
	}
	return "Huffman coding - frequency header followed by codes written as '0'/'1' text"
}

func (f *HuffmanFactory) Extension() string {
	if f.Format == huffman.PayloadPacked {
		return "hufp"
	}
	return "huff"
}

// IsValidAlgorithm checks if the provided algorithm is supported
func IsValidAlgorithm(algorithm string) bool {
	_, exists := factoryMap[algorithm]
	return exists
}

// GetSupportedAlgorithms returns a sorted list of supported algorithms
func GetSupportedAlgorithms() []string {
	names := make([]string, 0, len(factoryMap))
	for name := range factoryMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetDescriptions maps every supported algorithm to a short description
func GetDescriptions() map[string]string {
	out := make(map[string]string, len(factoryMap))
	for name, factory := range factoryMap {
		out[name] = factory.Description()
	}
	return out
}

// GetExtension returns the file extension used for the algorithm's output
func GetExtension(algorithm string) string {
	if factory, ok := factoryMap[algorithm]; ok {
		return factory.Extension()
	}
	return "compressed"
}

// Compress compresses data using the specified algorithm
func Compress(data []byte, options Options) ([]byte, *Stats, error) {
	factory, ok := factoryMap[options.Algorithm]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, options.Algorithm)
	}
	reader, writer := factory.NewCompressionReaderAndWriter(options)

	compressedData, err := processData(data, reader, writer)
	if err != nil {
		return nil, nil, fmt.Errorf("compression failed: %w", err)
	}

	stats := &Stats{
		OriginalSize:  len(data),
		ProcessedSize: len(compressedData),
		Algorithm:     options.Algorithm,
	}
	if len(data) > 0 {
		stats.CompressionRatio = float64(len(compressedData)) / float64(len(data)) * 100
	}
	return compressedData, stats, nil
}

// Decompress decompresses data using the specified algorithm
func Decompress(data []byte, options Options) ([]byte, *Stats, error) {
	factory, ok := factoryMap[options.Algorithm]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, options.Algorithm)
	}
	reader, writer := factory.NewDecompressionReaderAndWriter(options)

	decompressedData, err := processData(data, reader, writer)
	if err != nil {
		return nil, nil, fmt.Errorf("decompression failed: %w", err)
	}

	stats := &Stats{
		OriginalSize:  len(data),
		ProcessedSize: len(decompressedData),
		Algorithm:     options.Algorithm,
	}
	if len(decompressedData) > 0 {
		stats.CompressionRatio = float64(len(data)) / float64(len(decompressedData)) * 100
	}
	return decompressedData, stats, nil
}

// processData writes the whole input, closes the writer to run the
// transform, then drains the reader.
func processData(inputData []byte, reader io.ReadCloser, writer io.WriteCloser) ([]byte, error) {
	defer reader.Close()

	if _, err := writer.Write(inputData); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return io.ReadAll(reader)
}
