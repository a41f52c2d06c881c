package expr

// Node is the interface for all expression tree nodes. The set of node
// types is closed: only *VarNode, *UnaryNode and *BinaryNode implement it.
//
// Trees are treated as immutable once built. They are safe to evaluate
// from many goroutines at the same time.
type Node interface {
	Eval(x, y float64) float64
	String() string
	Clone() Node
	NodeCount() int
	Depth() int

	node()
}

// Var identifies one of the two input coordinates.
type Var int

const (
	X Var = iota
	Y
)

// UnaryOp identifies a unary operation.
type UnaryOp int

const (
	OpCosPi   UnaryOp = iota // cos(pi*a)
	OpSinPi                  // sin(pi*a)
	OpSqrtAbs                // sqrt(|a|)
	OpCube                   // a^3
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpProduct BinaryOp = iota // a*b
	OpAverage                 // (a+b)/2
)

// UnaryOps lists every unary operation in declaration order.
var UnaryOps = []UnaryOp{OpCosPi, OpSinPi, OpSqrtAbs, OpCube}

// BinaryOps lists every binary operation in declaration order.
var BinaryOps = []BinaryOp{OpProduct, OpAverage}

// VarNode projects one input coordinate.
type VarNode struct {
	Var Var
}

// UnaryNode applies a unary operation to a child expression.
type UnaryNode struct {
	Op    UnaryOp
	Child Node
}

// BinaryNode applies a binary operation to two child expressions.
type BinaryNode struct {
	Op          BinaryOp
	Left, Right Node
}

func (*VarNode) node()    {}
func (*UnaryNode) node()  {}
func (*BinaryNode) node() {}
