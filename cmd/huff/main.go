package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/adilg123/huffman-compression-tool/internal/compression"
	"github.com/adilg123/huffman-compression-tool/internal/config"
)

const usage = `usage:
  huff compress [-packed] [-progress] <input> <output>
  huff decompress <input> <output>
  huff menu
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cfg := config.Load()

	switch args[0] {
	case "compress":
		fs := flag.NewFlagSet("compress", flag.ContinueOnError)
		fs.SetOutput(stderr)
		packed := fs.Bool("packed", cfg.DefaultAlgorithm == compression.AlgorithmHuffmanPacked, "store the payload as packed bits instead of '0'/'1' text")
		progress := fs.Bool("progress", false, "show a progress bar while encoding")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() != 2 {
			fmt.Fprint(stderr, usage)
			return 2
		}
		algorithm := compression.AlgorithmHuffman
		if *packed {
			algorithm = compression.AlgorithmHuffmanPacked
		}
		return report(stdout, stderr, "compressed", fs.Arg(1), func() (*compression.Stats, error) {
			return compression.CompressFile(fs.Arg(0), fs.Arg(1), compression.Options{Algorithm: algorithm, Progress: *progress})
		})
	case "decompress":
		if len(args) != 3 {
			fmt.Fprint(stderr, usage)
			return 2
		}
		return report(stdout, stderr, "decompressed", args[2], func() (*compression.Stats, error) {
			return compression.DecompressFile(args[1], args[2], compression.Options{Algorithm: compression.AlgorithmHuffman})
		})
	case "menu":
		return menu(cfg, stdin, stdout, stderr)
	}
	fmt.Fprint(stderr, usage)
	return 2
}

func report(stdout, stderr io.Writer, verb, output string, op func() (*compression.Stats, error)) int {
	stats, err := op()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "File %s successfully -> %s (%d -> %d bytes)\n", verb, output, stats.OriginalSize, stats.ProcessedSize)
	return 0
}

// menu runs the interactive loop until the user picks exit or input ends.
func menu(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) int {
	scanner := bufio.NewScanner(stdin)
	prompt := func(text string) (string, bool) {
		fmt.Fprint(stdout, text)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	for {
		fmt.Fprint(stdout, "\n======= FILE COMPRESSION TOOL =======\n1. Compress File\n2. Decompress File\n3. Exit\n")
		choice, ok := prompt("Enter your choice: ")
		if !ok {
			return 0
		}
		switch choice {
		case "1":
			input, ok1 := prompt("Enter input file path: ")
			output, ok2 := prompt("Enter output compressed file path: ")
			if !ok1 || !ok2 {
				return 0
			}
			report(stdout, stderr, "compressed", output, func() (*compression.Stats, error) {
				return compression.CompressFile(input, output, compression.Options{Algorithm: cfg.DefaultAlgorithm})
			})
		case "2":
			input, ok1 := prompt("Enter compressed file path: ")
			output, ok2 := prompt("Enter output decompressed file path: ")
			if !ok1 || !ok2 {
				return 0
			}
			report(stdout, stderr, "decompressed", output, func() (*compression.Stats, error) {
				return compression.DecompressFile(input, output, compression.Options{Algorithm: cfg.DefaultAlgorithm})
			})
		case "3":
			fmt.Fprintln(stdout, "Exiting program.")
			return 0
		default:
			fmt.Fprintln(stdout, "Invalid choice! Try again.")
		}
	}
}
