package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

type DecompressionWriter struct {
	core *decompressionCore
}
type DecompressionReader struct {
	core *decompressionCore
}

type decompressionCore struct {
	isInputBufferClosed bool
	inputBuffer         *bytes.Buffer
	outputBuffer        *bytes.Buffer
}

// Read returns the decoded bytes once the writer side has been closed.
func (dr *DecompressionReader) Read(data []byte) (int, error) {
	if !dr.core.isInputBufferClosed {
		return 0, errors.New("input buffer not closed")
	}
	return dr.core.outputBuffer.Read(data)
}

func (dr *DecompressionReader) Close() error {
	dr.core.inputBuffer.Reset()
	dr.core.outputBuffer.Reset()
	return nil
}

func (dw *DecompressionWriter) Write(data []byte) (int, error) {
	if dw.core.isInputBufferClosed {
		return 0, errors.New("write after close")
	}
	return dw.core.inputBuffer.Write(data)
}

// Close decodes the container written so far. Nothing is made available to
// the reader when the container is malformed.
func (dw *DecompressionWriter) Close() error {
	if dw.core.isInputBufferClosed {
		return nil
	}
	dw.core.isInputBufferClosed = true
	decompressedData, err := Decompress(dw.core.inputBuffer.Bytes())
	if err != nil {
		return err
	}
	_, err = dw.core.outputBuffer.Write(decompressedData)
	return err
}

// NewDecompressionReaderAndWriter is the decompressing counterpart of
// NewCompressionReaderAndWriter.
func NewDecompressionReaderAndWriter() (io.ReadCloser, io.WriteCloser) {
	newDecompressionCore := &decompressionCore{
		inputBuffer:  new(bytes.Buffer),
		outputBuffer: new(bytes.Buffer),
	}
	return &DecompressionReader{core: newDecompressionCore}, &DecompressionWriter{core: newDecompressionCore}
}

// Decompress rebuilds the tree from the container's frequency table and
// decodes its payload. Either payload format is accepted.
func Decompress(content []byte) ([]byte, error) {
	table, bits, _, err := readContainer(content)
	if err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		if len(bits) != 0 {
			return nil, fmt.Errorf("%w: payload present without symbols", ErrFormat)
		}
		return []byte{}, nil
	}
	tree, err := buildTree(table)
	if err != nil {
		return nil, err
	}
	decoded, err := decode(bits, tree)
	if err != nil {
		return nil, err
	}
	if uint64(len(decoded)) != table.Total() {
		return nil, fmt.Errorf("%w: decoded %d bytes, header declares %d", ErrFormat, len(decoded), table.Total())
	}
	return decoded, nil
}

// decode walks tree from the root, taking the left child on '0' and the
// right child on '1'. Reaching a leaf emits its symbol and restarts at the
// root. The input must end exactly on a symbol boundary.
func decode(bits bitString, tree huffmanTree) ([]byte, error) {
	if leaf, ok := tree.(huffmanLeaf); ok {
		return decodeSingle(bits, leaf)
	}
	data := make([]byte, 0, len(bits)/2)
	current := tree
	for i := 0; i < len(bits); i++ {
		node := current.(huffmanNode)
		switch bits[i] {
		case '0':
			current = node.left
		case '1':
			current = node.right
		default:
			return nil, fmt.Errorf("%w: invalid payload character %q at bit %d", ErrFormat, bits[i], i)
		}
		if leaf, ok := current.(huffmanLeaf); ok {
			data = append(data, leaf.symbol)
			current = tree
		}
	}
	if current.getId() != tree.getId() {
		return nil, fmt.Errorf("%w: payload ends inside a code", ErrFormat)
	}
	return data, nil
}

// decodeSingle handles a tree that is one leaf: every occurrence was
// encoded as the single bit '0'.
func decodeSingle(bits bitString, leaf huffmanLeaf) ([]byte, error) {
	data := make([]byte, len(bits))
	for i := 0; i < len(bits); i++ {
		if bits[i] != '0' {
			return nil, fmt.Errorf("%w: invalid payload character %q at bit %d", ErrFormat, bits[i], i)
		}
		data[i] = leaf.symbol
	}
	return data, nil
}
