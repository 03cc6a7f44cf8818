package atlas

import (
	"fmt"
	"strings"
)

// TreeDescriber is implemented by allocators that can expose their internal
// space partitioning as a tree. DumpAllocator uses it when available; the
// Allocator interface itself stays minimal.
type TreeDescriber interface {
	DescribeTree() *TreeNode
}

// TreeNode is one node of an allocator's space-partitioning snapshot.
type TreeNode struct {
	// Label names the node state, e.g. "full", "free" or "shelf".
	Label string
	// Region is the canvas area the node covers.
	Region Region
	// Children are the node's subdivisions, outermost first.
	Children []*TreeNode
}

// DumpAllocator renders the builder's allocator state as an indented tree,
// one node per line. Useful when debugging why placements fail or
// fragment. Allocators that do not implement TreeDescriber produce only
// the header line.
//
// Example output:
//
//	DynamicBuilder 8x8 padding=1
//	└── full [x: 0    y: 0    width: 4    height: 4   ]
//	    ├── free [x: 4    y: 0    width: 4    height: 4   ]
//	    └── free [x: 0    y: 4    width: 8    height: 4   ]
func (b *DynamicBuilder) DumpAllocator() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DynamicBuilder %dx%d padding=%d\n", b.width, b.height, b.padding)

	td, ok := b.allocator.(TreeDescriber)
	if !ok {
		return sb.String()
	}
	root := td.DescribeTree()
	if root == nil {
		return sb.String()
	}
	dumpNode(&sb, root, "", true)
	return sb.String()
}

// dumpNode writes one node line and recurses into its children, extending
// the line-drawing prefix so sibling branches stay connected.
func dumpNode(sb *strings.Builder, n *TreeNode, prefix string, last bool) {
	fork := "├── "
	if last {
		fork = "└── "
	}
	fmt.Fprintf(sb, "%s%s%s [x: %-4d y: %-4d width: %-4d height: %-4d]\n",
		prefix, fork, n.Label, n.Region.X, n.Region.Y, n.Region.Width, n.Region.Height)

	childPrefix := prefix + "│   "
	if last {
		childPrefix = prefix + "    "
	}
	for i, c := range n.Children {
		dumpNode(sb, c, childPrefix, i == len(n.Children)-1)
	}
}
