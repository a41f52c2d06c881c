package expr

func (v *VarNode) NodeCount() int   { return 1 }
func (u *UnaryNode) NodeCount() int { return 1 + u.Child.NodeCount() }
func (b *BinaryNode) NodeCount() int {
	return 1 + b.Left.NodeCount() + b.Right.NodeCount()
}

// Depth counts levels, so a lone terminal has depth 1 (zero edges).

func (v *VarNode) Depth() int   { return 1 }
func (u *UnaryNode) Depth() int { return 1 + u.Child.Depth() }
func (b *BinaryNode) Depth() int {
	ld := b.Left.Depth()
	rd := b.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}

// MinDepth returns the number of levels on the shortest root-to-leaf path.
func MinDepth(node Node) int {
	switch n := node.(type) {
	case *UnaryNode:
		return 1 + MinDepth(n.Child)
	case *BinaryNode:
		return 1 + min(MinDepth(n.Left), MinDepth(n.Right))
	default:
		return 1
	}
}

// Count returns how many nodes of each kind the tree holds.
func Count(node Node) (vars, unary, binary int) {
	switch n := node.(type) {
	case *VarNode:
		return 1, 0, 0
	case *UnaryNode:
		v, u, b := Count(n.Child)
		return v, u + 1, b
	case *BinaryNode:
		lv, lu, lb := Count(n.Left)
		rv, ru, rb := Count(n.Right)
		return lv + rv, lu + ru, lb + rb + 1
	default:
		return 0, 0, 0
	}
}
