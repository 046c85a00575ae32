package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"sync"
)

// ErrCycle is returned if an operation would make a node its own ancestor.
var ErrCycle = errors.New("tree: node cannot become a descendent of itself")

// ErrHasParent is returned if a node to be attached is still attached elsewhere.
var ErrHasParent = errors.New("tree: node already has a parent; isolate it first")

// Node is the base type our tree is built of.
type Node[T comparable] struct {
	parent   *Node[T]         // parent node of this node
	children childrenSlice[T] // mutex-protected slice of children nodes
	Payload  T                // nodes may carry a payload of arbitrary type
}

// NewNode creates a new tree node with a given payload.
func NewNode[T comparable](payload T) *Node[T] {
	return &Node[T]{Payload: payload}
}

func (node *Node[T]) String() string {
	return fmt.Sprintf("(Node #ch=%d %v)", node.ChildCount(), node.Payload)
}

// AddChild appends a child node. The child is connected to this node as
// its parent.
//
// This operation is concurrency-safe.
func (node *Node[T]) AddChild(ch *Node[T]) error {
	if err := node.checkAttach(ch); err != nil {
		return err
	}
	node.children.insertChildAt(-1, ch, node)
	return nil
}

// InsertChildAt inserts a child node at position i, shifting children at
// later positions. Positions beyond the end append.
//
// This operation is concurrency-safe.
func (node *Node[T]) InsertChildAt(i int, ch *Node[T]) error {
	if err := node.checkAttach(ch); err != nil {
		return err
	}
	node.children.insertChildAt(i, ch, node)
	return nil
}

func (node *Node[T]) checkAttach(ch *Node[T]) error {
	assertThat(ch != nil, "cannot attach nil child")
	if ch.parent != nil {
		return ErrHasParent
	}
	for anc := node; anc != nil; anc = anc.parent {
		if anc == ch {
			return ErrCycle
		}
	}
	return nil
}

// Parent returns the parent node or nil (for the root of the tree).
func (node *Node[T]) Parent() *Node[T] {
	return node.parent
}

// Isolate removes a node from its parent.
// Isolate returns the isolated node.
func (node *Node[T]) Isolate() *Node[T] {
	if node != nil && node.parent != nil {
		node.parent.children.remove(node)
	}
	return node
}

// ChildCount returns the number of children-nodes for a node
// (concurrency-safe).
func (node *Node[T]) ChildCount() int {
	return node.children.length()
}

// Children returns a slice with all children of a node, in order.
func (node *Node[T]) Children() []*Node[T] {
	return node.children.asSlice()
}

// Depth returns the number of ancestors of a node. The root has depth 0.
func (node *Node[T]) Depth() int {
	d := 0
	for p := node.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Root returns the topmost ancestor of a node, or the node itself.
func (node *Node[T]) Root() *Node[T] {
	r := node
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// --- Traversal -------------------------------------------------------------

// Action is a function type to operate on tree nodes during traversal.
// Returning false skips the node's subtree.
type Action[T comparable] func(n *Node[T], depth int) bool

// TopDown traverses the subtree of node in pre-order, starting at (and
// including) node. Parents are always processed before their children.
func (node *Node[T]) TopDown(action Action[T]) {
	if node == nil {
		return
	}
	node.topDown(action, 0)
}

func (node *Node[T]) topDown(action Action[T], depth int) {
	if !action(node, depth) {
		return
	}
	for _, ch := range node.Children() {
		ch.topDown(action, depth+1)
	}
}

// --- Slices of concurrency-safe sets of children ----------------------

type childrenSlice[T comparable] struct {
	sync.RWMutex
	slice []*Node[T]
}

func (chs *childrenSlice[T]) length() int {
	chs.RLock()
	defer chs.RUnlock()
	return len(chs.slice)
}

// insertChildAt inserts at i; i < 0 or i >= len appends.
func (chs *childrenSlice[T]) insertChildAt(i int, child *Node[T], parent *Node[T]) {
	chs.Lock()
	defer chs.Unlock()
	if i < 0 || i >= len(chs.slice) {
		chs.slice = append(chs.slice, child)
	} else {
		chs.slice = append(chs.slice, nil)   // make room for one child
		copy(chs.slice[i+1:], chs.slice[i:]) // shift i+1..n
		chs.slice[i] = child
	}
	child.parent = parent
	tracer().Debugf("attached child %v at %d", child, i)
}

func (chs *childrenSlice[T]) remove(node *Node[T]) {
	chs.Lock()
	defer chs.Unlock()
	for i, ch := range chs.slice {
		if ch == node {
			chs.slice = append(chs.slice[:i], chs.slice[i+1:]...)
			node.parent = nil
			break
		}
	}
}

func (chs *childrenSlice[T]) asSlice() []*Node[T] {
	chs.RLock()
	defer chs.RUnlock()
	children := make([]*Node[T], len(chs.slice))
	copy(children, chs.slice)
	return children
}
