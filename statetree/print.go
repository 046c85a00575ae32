package statetree

import (
	"fmt"
	"strings"

	tp "github.com/xlab/treeprint"

	"github.com/npillmayer/uistate/tree"
)

// Print renders the tree below the root, together with the computed state
// of every node.
func (t *Tree) Print() string {
	p := tp.New()
	if t.root == nil {
		p.AddNode("<empty>")
		return p.String()
	}
	branches := map[*StyledNode]tp.Tree{}
	t.root.TopDown(func(node *tree.Node[*StyledNode], depth int) bool {
		n := node.Payload
		parent := p
		if depth > 0 {
			parent = branches[n.StyledParent()]
		}
		if node.ChildCount() == 0 {
			parent.AddNode(label(n))
		} else {
			branches[n] = parent.AddBranch(label(n))
		}
		return true
	})
	return p.String()
}

func label(n *StyledNode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v %s %s", n, n.Size(), n.Style())
	if text, ok := n.Text(); ok {
		fmt.Fprintf(&b, " %q", shorten(text, 20))
	}
	return b.String()
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
