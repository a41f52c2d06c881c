// Package mutate derives variations of expression trees. Every mutation
// works on a copy and keeps the depth of the tree it was given.
package mutate

import (
	"math/rand"

	"github.com/wildfunctions/random_art/pkg/expr"
	"github.com/wildfunctions/random_art/pkg/pool"
)

// MutationType identifies a kind of mutation.
type MutationType int

const (
	MutPoint   MutationType = iota // swap one node for another of the same arity
	MutSubtree                     // regrow one subtree at its current depth
)

// Tree applies a random mutation to a copy of root.
func Tree(root expr.Node, p pool.Pool, rng *rand.Rand) expr.Node {
	switch MutationType(rng.Intn(2)) {
	case MutPoint:
		return Point(root, p, rng)
	default:
		return Subtree(root, p, rng)
	}
}

// Point replaces a random node's operation, keeping its children. Leaves
// are redrawn from the pool.
func Point(root expr.Node, p pool.Pool, rng *rand.Rand) expr.Node {
	root = root.Clone()
	nodes := collectNodes(&root)
	target := nodes[rng.Intn(len(nodes))]

	switch n := (*target).(type) {
	case *expr.VarNode:
		*target = p.RandomLeaf(rng)
	case *expr.UnaryNode:
		n.Op = p.RandomUnary(rng)
	case *expr.BinaryNode:
		n.Op = p.RandomBinary(rng)
	}
	return root
}

// Subtree replaces a random subtree with a freshly grown one of the same
// depth.
func Subtree(root expr.Node, p pool.Pool, rng *rand.Rand) expr.Node {
	root = root.Clone()
	nodes := collectNodes(&root)
	target := nodes[rng.Intn(len(nodes))]
	*target = pool.Grow(p, rng, (*target).Depth())
	return root
}

// collectNodes returns pointers to all node slots in the tree, root first.
func collectNodes(root *expr.Node) []*expr.Node {
	var result []*expr.Node
	collectNodesHelper(root, &result)
	return result
}

func collectNodesHelper(node *expr.Node, result *[]*expr.Node) {
	*result = append(*result, node)
	switch n := (*node).(type) {
	case *expr.UnaryNode:
		collectNodesHelper(&n.Child, result)
	case *expr.BinaryNode:
		collectNodesHelper(&n.Left, result)
		collectNodesHelper(&n.Right, result)
	}
}
