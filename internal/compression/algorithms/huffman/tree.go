package huffman

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// huffmanTree is either a huffmanLeaf or a huffmanNode.
type huffmanTree interface {
	getFrequency() uint64
	getId() int
}

type huffmanLeaf struct {
	freq   uint64
	id     int
	symbol Symbol
}

type huffmanNode struct {
	freq        uint64
	id          int
	left, right huffmanTree
}

func (leaf huffmanLeaf) getFrequency() uint64 {
	return leaf.freq
}

func (leaf huffmanLeaf) getId() int {
	return leaf.id
}

func (node huffmanNode) getFrequency() uint64 {
	return node.freq
}

func (node huffmanNode) getId() int {
	return node.id
}

// huffmanHeap is a min-heap ordered by (frequency, id).
type huffmanHeap []huffmanTree

func (hub *huffmanHeap) Push(item any) {
	*hub = append(*hub, item.(huffmanTree))
}

func (hub *huffmanHeap) Pop() any {
	popped := (*hub)[len(*hub)-1]
	(*hub)[len(*hub)-1] = nil
	*hub = (*hub)[:len(*hub)-1]
	return popped
}

func (hub huffmanHeap) Len() int {
	return len(hub)
}

func (hub huffmanHeap) Less(i, j int) bool {
	if hub[i].getFrequency() != hub[j].getFrequency() {
		return hub[i].getFrequency() < hub[j].getFrequency()
	}
	return hub[i].getId() < hub[j].getId()
}

func (hub huffmanHeap) Swap(i, j int) {
	hub[i], hub[j] = hub[j], hub[i]
}

var _ heap.Interface = (*huffmanHeap)(nil)

// buildTree merges the two least frequent nodes until one root remains.
//
// Ties on frequency are broken by id. Leaves get ids 0..k-1 in ascending
// symbol order and merged nodes get ids k, k+1, ... in creation order, so a
// given table always produces the same tree. The first node popped becomes
// the left child.
func buildTree(table FrequencyTable) (huffmanTree, error) {
	symbols := table.Symbols()
	if len(symbols) == 0 {
		return nil, ErrEmptyTable
	}
	treehub := make(huffmanHeap, 0, len(symbols))
	monoId := 0
	for _, symbol := range symbols {
		treehub = append(treehub, huffmanLeaf{
			freq:   table.Count(symbol),
			symbol: symbol,
			id:     monoId,
		})
		monoId++
	}
	heap.Init(&treehub)
	for treehub.Len() > 1 {
		x := heap.Pop(&treehub).(huffmanTree)
		y := heap.Pop(&treehub).(huffmanTree)
		heap.Push(&treehub, huffmanNode{
			freq:  x.getFrequency() + y.getFrequency(),
			left:  x,
			right: y,
			id:    monoId,
		})
		monoId++
	}
	root := heap.Pop(&treehub).(huffmanTree)
	assert.Assertf(root.getFrequency() == table.Total(), "root frequency %d != table total %d", root.getFrequency(), table.Total())
	return root, nil
}

// countLeaves returns the number of leaves below tree.
func countLeaves(tree huffmanTree) int {
	switch node := tree.(type) {
	case huffmanLeaf:
		return 1
	case huffmanNode:
		return countLeaves(node.left) + countLeaves(node.right)
	}
	return 0
}
