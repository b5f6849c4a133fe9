package huffman

import (
	"github.com/chronos-tachyon/assert"
)

// bitString is a sequence of bits spelled as '0' and '1' characters.
type bitString string

// CodeTable maps each symbol of a tree to its code.
type CodeTable map[Symbol]bitString

// buildCodeTable walks tree depth first, appending '0' for a left edge and
// '1' for a right edge. A tree made of a single leaf has no edges, so that
// leaf is given the code "0".
func buildCodeTable(tree huffmanTree) CodeTable {
	codes := make(CodeTable)
	if leaf, ok := tree.(huffmanLeaf); ok {
		codes[leaf.symbol] = "0"
		return codes
	}
	getSymbolEncoding(tree, codes, []byte{})
	assert.Assertf(len(codes) == countLeaves(tree), "%d codes for %d leaves", len(codes), countLeaves(tree))
	return codes
}

func getSymbolEncoding(tree huffmanTree, symbolEnc CodeTable, currentPrefix []byte) {
	switch node := tree.(type) {
	case huffmanLeaf:
		symbolEnc[node.symbol] = bitString(currentPrefix)
	case huffmanNode:
		// Cap the prefix so the right branch does not share the left
		// branch's backing array.
		currentPrefix = currentPrefix[:len(currentPrefix):len(currentPrefix)]
		getSymbolEncoding(node.left, symbolEnc, append(currentPrefix, '0'))
		getSymbolEncoding(node.right, symbolEnc, append(currentPrefix, '1'))
	}
}
