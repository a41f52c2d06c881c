package expr

import "fmt"

var varNames = map[Var]string{
	X: "x",
	Y: "y",
}

var unaryOpNames = map[UnaryOp]string{
	OpCosPi:   "cos_pi",
	OpSinPi:   "sin_pi",
	OpSqrtAbs: "sqrt",
	OpCube:    "cubed",
}

var binaryOpNames = map[BinaryOp]string{
	OpProduct: "prod",
	OpAverage: "avg",
}

func (v Var) String() string {
	if name, ok := varNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Var(%d)", int(v))
}

func (op UnaryOp) String() string {
	if name, ok := unaryOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("UnaryOp(%d)", int(op))
}

func (op BinaryOp) String() string {
	if name, ok := binaryOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// String methods render the prefix form accepted by Parse.

func (v *VarNode) String() string {
	return v.Var.String()
}

func (u *UnaryNode) String() string {
	return fmt.Sprintf("%s(%s)", u.Op, u.Child.String())
}

func (b *BinaryNode) String() string {
	return fmt.Sprintf("%s(%s, %s)", b.Op, b.Left.String(), b.Right.String())
}
