// Package catalog keeps the clues a player has found as a binary search tree ordered by clue text.
package catalog

import (
	"iter"

	"github.com/zyedidia/generic/stack"
)

// Node is a clue in the tree. Texts in the left subtree sort before Text, texts in the right subtree after it.
type Node struct {
	Text  string
	Left  *Node
	Right *Node
}

// Insert adds text below root and returns the root of the resulting tree, which is a new node when root is nil.
// Inserting a text that is already present leaves the tree untouched.
func Insert(root *Node, text string) *Node {
	if root == nil {
		return &Node{Text: text}
	}
	switch {
	case text < root.Text:
		root.Left = Insert(root.Left, text)
	case text > root.Text:
		root.Right = Insert(root.Right, text)
	}
	return root
}

// Contains reports whether text is stored below root.
func Contains(root *Node, text string) bool {
	for root != nil {
		switch {
		case text < root.Text:
			root = root.Left
		case text > root.Text:
			root = root.Right
		default:
			return true
		}
	}
	return false
}

// InOrder yields the texts below root in ascending order. Each call to the returned sequence walks the tree again.
func InOrder(root *Node) iter.Seq[string] {
	return func(yield func(string) bool) {
		pending := stack.New[*Node]()
		current := root
		for current != nil || pending.Size() > 0 {
			for current != nil {
				pending.Push(current)
				current = current.Left
			}
			current = pending.Pop()
			if !yield(current.Text) {
				return
			}
			current = current.Right
		}
	}
}

// Catalog is the set of clues collected during one investigation. The zero value is empty and ready to use.
type Catalog struct {
	root *Node
	size int
}

// Add stores text and reports whether it was not yet in the catalog.
func (c *Catalog) Add(text string) bool {
	if Contains(c.root, text) {
		return false
	}
	c.root = Insert(c.root, text)
	c.size++
	return true
}

func (c *Catalog) Contains(text string) bool {
	return Contains(c.root, text)
}

func (c *Catalog) Len() int {
	return c.size
}

// All yields the clues in ascending order.
func (c *Catalog) All() iter.Seq[string] {
	return InOrder(c.root)
}

// Slice returns the clues in ascending order.
func (c *Catalog) Slice() []string {
	clues := make([]string, 0, c.size)
	for clue := range c.All() {
		clues = append(clues, clue)
	}
	return clues
}
