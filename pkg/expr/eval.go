package expr

import (
	"fmt"
	"math"
)

// Evaluate reduces n at the point (x, y).
func Evaluate(n Node, x, y float64) float64 {
	return n.Eval(x, y)
}

// Eval for VarNode returns the projected coordinate.
func (v *VarNode) Eval(x, y float64) float64 {
	switch v.Var {
	case X:
		return x
	case Y:
		return y
	default:
		panic(fmt.Sprintf("expr: unknown variable %d", v.Var))
	}
}

// Eval for UnaryNode dispatches on op.
//
// For inputs in [-1, 1] every operation stays in [-1, 1]. Outside that
// domain results are not bounded, and infinities propagate as NaN through
// the trigonometric operations.
func (u *UnaryNode) Eval(x, y float64) float64 {
	a := u.Child.Eval(x, y)

	switch u.Op {
	case OpCosPi:
		return math.Cos(math.Pi * a)
	case OpSinPi:
		return math.Sin(math.Pi * a)
	case OpSqrtAbs:
		return math.Sqrt(math.Abs(a))
	case OpCube:
		return a * a * a
	default:
		panic(fmt.Sprintf("expr: unknown unary op %d", u.Op))
	}
}

// Eval for BinaryNode dispatches on op. The left child is evaluated first.
func (b *BinaryNode) Eval(x, y float64) float64 {
	left := b.Left.Eval(x, y)
	right := b.Right.Eval(x, y)

	switch b.Op {
	case OpProduct:
		return left * right
	case OpAverage:
		return 0.5 * (left + right)
	default:
		panic(fmt.Sprintf("expr: unknown binary op %d", b.Op))
	}
}
