package compression

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrIO wraps failures reading the source or writing the destination.
var ErrIO = errors.New("i/o error")

// CompressFile reads inputPath whole, compresses it and writes the
// container to outputPath.
func CompressFile(inputPath, outputPath string, options Options) (*Stats, error) {
	data, err := readWholeFile(inputPath)
	if err != nil {
		return nil, err
	}
	out, stats, err := Compress(data, options)
	if err != nil {
		return nil, err
	}
	if err := writeWholeFile(outputPath, out); err != nil {
		return nil, err
	}
	return stats, nil
}

// DecompressFile reads the container at inputPath and writes the original
// bytes to outputPath. Nothing is written when the container is malformed.
func DecompressFile(inputPath, outputPath string, options Options) (*Stats, error) {
	data, err := readWholeFile(inputPath)
	if err != nil {
		return nil, err
	}
	out, stats, err := Decompress(data, options)
	if err != nil {
		return nil, err
	}
	if err := writeWholeFile(outputPath, out); err != nil {
		return nil, err
	}
	return stats, nil
}

func readWholeFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return data, nil
}

// writeWholeFile writes to a temporary file next to path and renames it
// into place, so a failed write never leaves a partial file at path.
func writeWholeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	tmpName := tmp.Name()
	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, 0o644)
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
