package pool

import (
	"math/rand"

	"github.com/wildfunctions/random_art/pkg/expr"
)

func init() {
	Register("classic", func() Pool { return &ClassicPool{} })
}

// ClassicPool draws uniformly from the fixed palette: x and y as leaves,
// and prod, avg, cos_pi, sin_pi, sqrt, cubed as operators.
type ClassicPool struct{}

func (p *ClassicPool) Name() string { return "classic" }

var classicLeaves = []expr.Var{expr.X, expr.Y}

func (p *ClassicPool) RandomLeaf(rng *rand.Rand) expr.Node {
	return &expr.VarNode{Var: classicLeaves[rng.Intn(len(classicLeaves))]}
}

var classicUnary = []expr.UnaryOp{
	expr.OpCosPi,
	expr.OpSinPi,
	expr.OpSqrtAbs,
	expr.OpCube,
}

func (p *ClassicPool) RandomUnary(rng *rand.Rand) expr.UnaryOp {
	return classicUnary[rng.Intn(len(classicUnary))]
}

var classicBinary = []expr.BinaryOp{
	expr.OpProduct,
	expr.OpAverage,
}

func (p *ClassicPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return classicBinary[rng.Intn(len(classicBinary))]
}

// RandomNode picks one of the six operators with equal probability.
func (p *ClassicPool) RandomNode(rng *rand.Rand, child func() expr.Node) expr.Node {
	i := rng.Intn(len(classicBinary) + len(classicUnary))
	if i < len(classicBinary) {
		left := child()
		right := child()
		return &expr.BinaryNode{Op: classicBinary[i], Left: left, Right: right}
	}
	return &expr.UnaryNode{Op: classicUnary[i-len(classicBinary)], Child: child()}
}

func (p *ClassicPool) RandomTree(rng *rand.Rand, minDepth, maxDepth int) (expr.Node, error) {
	return randomTree(p, rng, minDepth, maxDepth)
}
