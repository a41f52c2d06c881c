package pool

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/wildfunctions/random_art/pkg/expr"
)

// ErrInvalidDepthRange is returned when a depth range is empty or starts
// below one level.
var ErrInvalidDepthRange = errors.New("invalid depth range")

// Pool provides random building blocks for constructing expression trees.
type Pool interface {
	Name() string
	RandomLeaf(rng *rand.Rand) expr.Node
	RandomUnary(rng *rand.Rand) expr.UnaryOp
	RandomBinary(rng *rand.Rand) expr.BinaryOp
	// RandomNode picks an operator and builds its children by calling
	// child once per operand, left to right.
	RandomNode(rng *rand.Rand, child func() expr.Node) expr.Node
	RandomTree(rng *rand.Rand, minDepth, maxDepth int) (expr.Node, error)
}

var registry = map[string]func() Pool{}

// Register adds a pool constructor to the registry.
func Register(name string, constructor func() Pool) {
	registry[name] = constructor
}

// Get returns a pool by name.
func Get(name string) (Pool, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown pool: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered pool names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// CheckDepthRange validates an inclusive depth range.
func CheckDepthRange(minDepth, maxDepth int) error {
	if minDepth < 1 || minDepth > maxDepth {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidDepthRange, minDepth, maxDepth)
	}
	return nil
}

// randomTree draws a depth from [minDepth, maxDepth] and builds a tree
// with exactly that many levels on every path.
func randomTree(p Pool, rng *rand.Rand, minDepth, maxDepth int) (expr.Node, error) {
	if err := CheckDepthRange(minDepth, maxDepth); err != nil {
		return nil, err
	}
	depth := minDepth + rng.Intn(maxDepth-minDepth+1)
	return Grow(p, rng, depth), nil
}

// Grow builds a tree with exactly levels levels. Operators fill every level
// but the last, which holds only leaves. levels below 1 are treated as 1.
func Grow(p Pool, rng *rand.Rand, levels int) expr.Node {
	if levels <= 1 {
		return p.RandomLeaf(rng)
	}
	return p.RandomNode(rng, func() expr.Node {
		return Grow(p, rng, levels-1)
	})
}
