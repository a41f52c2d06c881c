package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"

	"github.com/wildfunctions/random_art/pkg/expr"
	"github.com/wildfunctions/random_art/pkg/mutate"
	"github.com/wildfunctions/random_art/pkg/pool"
	"github.com/wildfunctions/random_art/pkg/remap"
)

// Trees holds one expression tree per color channel.
type Trees struct {
	Red, Green, Blue expr.Node
}

// Channels returns the trees in red, green, blue order.
func (t Trees) Channels() [3]expr.Node {
	return [3]expr.Node{t.Red, t.Green, t.Blue}
}

// ParseTrees reads the three channel trees from their String form.
func ParseTrees(red, green, blue string) (Trees, error) {
	var nodes [3]expr.Node
	for i, src := range [3]string{red, green, blue} {
		n, err := expr.Parse(src)
		if err != nil {
			return Trees{}, fmt.Errorf("%s channel: %w", channelNames[i], err)
		}
		nodes[i] = n
	}
	return Trees{Red: nodes[0], Green: nodes[1], Blue: nodes[2]}, nil
}

var channelNames = [3]string{"red", "green", "blue"}

// Engine generates and renders images.
type Engine struct {
	cfg  Config
	pool pool.Pool
	seed int64
	rng  *rand.Rand
}

// New creates a new engine from the given config.
func New(cfg Config) (*Engine, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: width=%d, height=%d (both must be > 0)", cfg.Width, cfg.Height)
	}
	if err := pool.CheckDepthRange(cfg.MinDepth, cfg.MaxDepth); err != nil {
		return nil, err
	}
	if cfg.Format == "" {
		cfg.Format = FormatPNG
	}
	if !validFormat(cfg.Format) {
		return nil, fmt.Errorf("unknown format: %s (available: %v)", cfg.Format, Formats())
	}
	p, err := pool.Get(cfg.Pool)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	return &Engine{
		cfg:  cfg,
		pool: p,
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

// Config returns the engine's config.
func (e *Engine) Config() Config { return e.cfg }

// Seed returns the effective random seed.
func (e *Engine) Seed() int64 { return e.seed }

// Generate builds the red, green and blue trees, in that order.
func (e *Engine) Generate() (Trees, error) {
	var nodes [3]expr.Node
	for i := range nodes {
		n, err := e.pool.RandomTree(e.rng, e.cfg.MinDepth, e.cfg.MaxDepth)
		if err != nil {
			return Trees{}, err
		}
		nodes[i] = n
	}
	t := Trees{Red: nodes[0], Green: nodes[1], Blue: nodes[2]}

	Logger().Info("generated trees",
		"seed", e.seed,
		"depths", fmt.Sprintf("%d/%d/%d", t.Red.Depth(), t.Green.Depth(), t.Blue.Depth()),
		"nodes", t.Red.NodeCount()+t.Green.NodeCount()+t.Blue.NodeCount())
	return t, nil
}

// Variation returns t with one channel's tree replaced by a mutated copy.
func (e *Engine) Variation(t Trees) Trees {
	switch e.rng.Intn(3) {
	case 0:
		t.Red = mutate.Tree(t.Red, e.pool, e.rng)
	case 1:
		t.Green = mutate.Tree(t.Green, e.pool, e.rng)
	default:
		t.Blue = mutate.Tree(t.Blue, e.pool, e.rng)
	}
	return t
}

// Noise fills a Width x Height image with uniformly random opaque pixels
// drawn from the engine's generator. It exercises the encoders without
// building any trees.
func (e *Engine) Noise() *gg.Pixmap {
	pm := gg.NewPixmap(e.cfg.Width, e.cfg.Height)
	data := pm.Data()
	for off := 0; off+4 <= len(data); off += 4 {
		data[off] = uint8(e.rng.Intn(256))
		data[off+1] = uint8(e.rng.Intn(256))
		data[off+2] = uint8(e.rng.Intn(256))
		data[off+3] = 255
	}
	return pm
}

// RenderStats summarizes one render.
type RenderStats struct {
	// OutOfGamut counts channel samples outside [-1, 1] that were clamped.
	OutOfGamut int64
	Elapsed    time.Duration
}

// Render evaluates the trees at every pixel. Pixel (i, j) samples the
// trees at x = remap(i, 0, width, -1, 1), y = remap(j, 0, height, -1, 1).
// Rows are split across Workers goroutines; the output does not depend on
// the worker count.
func (e *Engine) Render(t Trees) (*gg.Pixmap, RenderStats, error) {
	start := time.Now()
	w, h := e.cfg.Width, e.cfg.Height

	xs, err := domain(w)
	if err != nil {
		return nil, RenderStats{}, err
	}
	ys, err := domain(h)
	if err != nil {
		return nil, RenderStats{}, err
	}

	pm := gg.NewPixmap(w, h)
	data := pm.Data()
	trees := t.Channels()
	var outOfGamut atomic.Int64

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	rows := make(chan int, h)
	var wg sync.WaitGroup

	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var clamped int64
			for j := range rows {
				y := ys[j]
				row := data[j*w*4 : (j+1)*w*4]
				for i, x := range xs {
					px := row[i*4 : i*4+4]
					for c, tree := range trees {
						b, ok := remap.Byte(tree.Eval(x, y))
						if !ok {
							clamped++
						}
						px[c] = b
					}
					px[3] = 255
				}
			}
			outOfGamut.Add(clamped)
		}()
	}

	for j := 0; j < h; j++ {
		rows <- j
	}
	close(rows)
	wg.Wait()

	stats := RenderStats{
		OutOfGamut: outOfGamut.Load(),
		Elapsed:    time.Since(start),
	}
	Logger().Debug("rendered", "width", w, "height", h, "workers", workers, "elapsed", stats.Elapsed)
	if stats.OutOfGamut > 0 {
		Logger().Warn("clamped out of gamut samples", "count", stats.OutOfGamut)
	}
	return pm, stats, nil
}

// domain maps pixel indices [0, n) onto [-1, 1).
func domain(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := remap.Interval(float64(i), 0, float64(n), -1, 1)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Result is the outcome of Run.
type Result struct {
	Trees  Trees
	Pixmap *gg.Pixmap
	Report FinalReport
}

// Run generates three trees and renders them.
func (e *Engine) Run() (*Result, error) {
	t, err := e.Generate()
	if err != nil {
		return nil, err
	}
	return e.RenderTrees(t)
}

// RenderTrees renders t and builds its report.
func (e *Engine) RenderTrees(t Trees) (*Result, error) {
	pm, stats, err := e.Render(t)
	if err != nil {
		return nil, err
	}
	return &Result{
		Trees:  t,
		Pixmap: pm,
		Report: e.report(t, stats),
	}, nil
}

func (e *Engine) report(t Trees, stats RenderStats) FinalReport {
	r := FinalReport{
		Config:     e.cfg,
		Seed:       e.seed,
		OutOfGamut: stats.OutOfGamut,
		Elapsed:    stats.Elapsed,
	}
	for i, n := range t.Channels() {
		r.Channels = append(r.Channels, ChannelReport{
			Channel: channelNames[i],
			Tree:    n.String(),
			Depth:   n.Depth(),
			Nodes:   n.NodeCount(),
		})
	}
	return r
}
