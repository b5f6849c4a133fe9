package huffman

// Symbol is one byte value of the input alphabet.
type Symbol = byte

// FrequencyTable holds the number of occurrences of every byte value.
// Symbols with a zero count are treated as absent.
type FrequencyTable struct {
	counts   [256]uint64
	distinct int
	total    uint64
}

// CountFrequencies builds the frequency table of data. An empty input
// produces an empty table.
func CountFrequencies(data []byte) FrequencyTable {
	var table FrequencyTable
	for _, b := range data {
		if table.counts[b] == 0 {
			table.distinct++
		}
		table.counts[b]++
	}
	table.total = uint64(len(data))
	return table
}

// Count returns the frequency of symbol, or 0 if it is absent.
func (ft *FrequencyTable) Count(symbol Symbol) uint64 {
	return ft.counts[symbol]
}

// Set stores the frequency of symbol. A zero count removes it.
func (ft *FrequencyTable) Set(symbol Symbol, count uint64) {
	old := ft.counts[symbol]
	switch {
	case old == 0 && count != 0:
		ft.distinct++
	case old != 0 && count == 0:
		ft.distinct--
	}
	ft.total = ft.total - old + count
	ft.counts[symbol] = count
}

// Len is the number of distinct symbols present.
func (ft *FrequencyTable) Len() int {
	return ft.distinct
}

// Total is the sum of all frequencies.
func (ft *FrequencyTable) Total() uint64 {
	return ft.total
}

// Symbols lists the present symbols in ascending order.
func (ft *FrequencyTable) Symbols() []Symbol {
	symbols := make([]Symbol, 0, ft.distinct)
	for s := 0; s < len(ft.counts); s++ {
		if ft.counts[s] != 0 {
			symbols = append(symbols, Symbol(s))
		}
	}
	return symbols
}
