package engine

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/wildfunctions/random_art/pkg/expr"
	"github.com/wildfunctions/random_art/pkg/pool"
	"github.com/wildfunctions/random_art/pkg/remap"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 48
	cfg.Height = 32
	cfg.MinDepth = 3
	cfg.MaxDepth = 6
	cfg.Seed = 42
	cfg.Workers = 4
	return cfg
}

func TestEngine_SmallRun(t *testing.T) {
	e, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}

	res, err := e.Run()
	if err != nil {
		t.Fatal(err)
	}

	if res.Pixmap.Width() != 48 || res.Pixmap.Height() != 32 {
		t.Errorf("pixmap is %dx%d, want 48x32", res.Pixmap.Width(), res.Pixmap.Height())
	}
	if len(res.Report.Channels) != 3 {
		t.Fatalf("got %d channel reports, want 3", len(res.Report.Channels))
	}
	for _, c := range res.Report.Channels {
		if c.Depth < 3 || c.Depth > 6 {
			t.Errorf("%s depth %d outside [3, 6]", c.Channel, c.Depth)
		}
		if c.Tree == "" {
			t.Errorf("%s has no tree", c.Channel)
		}
	}
	if res.Report.Seed != 42 {
		t.Errorf("Seed = %d, want 42", res.Report.Seed)
	}
	// Every sample stays in [-1, 1] when x and y do.
	if res.Report.OutOfGamut != 0 {
		t.Errorf("OutOfGamut = %d, want 0", res.Report.OutOfGamut)
	}

	t.Logf("red=%s", res.Report.Channels[0].Tree)
}

func TestEngine_PixelsMatchTrees(t *testing.T) {
	cfg := smallConfig()
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	res, err := e.Run()
	if err != nil {
		t.Fatal(err)
	}

	data := res.Pixmap.Data()
	trees := res.Trees.Channels()
	for _, pt := range [][2]int{{0, 0}, {47, 31}, {24, 16}, {5, 30}} {
		i, j := pt[0], pt[1]
		x, _ := remap.Interval(float64(i), 0, float64(cfg.Width), -1, 1)
		y, _ := remap.Interval(float64(j), 0, float64(cfg.Height), -1, 1)
		off := (j*cfg.Width + i) * 4
		for c, tree := range trees {
			want, _ := remap.Byte(tree.Eval(x, y))
			if got := data[off+c]; got != want {
				t.Errorf("pixel (%d, %d) channel %d = %d, want %d", i, j, c, got, want)
			}
		}
		if data[off+3] != 255 {
			t.Errorf("pixel (%d, %d) alpha = %d, want 255", i, j, data[off+3])
		}
	}
}

func TestEngine_Reproducible(t *testing.T) {
	var encoded [][]byte
	for _, workers := range []int{1, 3, 8} {
		cfg := smallConfig()
		cfg.Workers = workers
		e, err := New(cfg)
		if err != nil {
			t.Fatal(err)
		}
		res, err := e.Run()
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := Encode(&buf, res.Pixmap, FormatPNG, 0); err != nil {
			t.Fatal(err)
		}
		encoded = append(encoded, buf.Bytes())
	}
	for i := 1; i < len(encoded); i++ {
		if !bytes.Equal(encoded[0], encoded[i]) {
			t.Fatalf("run %d produced different PNG bytes than run 0", i)
		}
	}
}

func TestEngine_RandomSeed(t *testing.T) {
	cfg := smallConfig()
	cfg.Seed = 0
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if e.Seed() == 0 {
		t.Error("expected a non-zero effective seed")
	}

	// Replaying the effective seed reproduces the trees.
	a, err := e.Generate()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Seed = e.Seed()
	replay, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := replay.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if a.Red.String() != b.Red.String() || a.Blue.String() != b.Blue.String() {
		t.Error("replaying the effective seed gave different trees")
	}
}

func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		is     error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, nil},
		{"negative height", func(c *Config) { c.Height = -5 }, nil},
		{"inverted depth", func(c *Config) { c.MinDepth, c.MaxDepth = 3, 1 }, pool.ErrInvalidDepthRange},
		{"zero depth", func(c *Config) { c.MinDepth = 0 }, pool.ErrInvalidDepthRange},
		{"unknown pool", func(c *Config) { c.Pool = "nope" }, nil},
		{"unknown format", func(c *Config) { c.Format = "gif" }, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := smallConfig()
			tc.mutate(&cfg)
			_, err := New(cfg)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Errorf("err = %v, want %v", err, tc.is)
			}
		})
	}
}

func TestEngine_SingleLevelTrees(t *testing.T) {
	cfg := smallConfig()
	cfg.MinDepth, cfg.MaxDepth = 1, 1
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	res, err := e.Run()
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range res.Trees.Channels() {
		if _, ok := n.(*expr.VarNode); !ok {
			t.Errorf("depth 1 tree %s is not a terminal", n)
		}
	}
}

func TestEngine_RenderParsedTrees(t *testing.T) {
	e, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	trees, err := ParseTrees("x", "y", "prod(x, y)")
	if err != nil {
		t.Fatal(err)
	}
	res, err := e.RenderTrees(trees)
	if err != nil {
		t.Fatal(err)
	}
	if res.Report.Channels[2].Tree != "prod(x, y)" {
		t.Errorf("blue tree = %q", res.Report.Channels[2].Tree)
	}
	data := res.Pixmap.Data()
	// Pixel (0, 0) samples (-1, -1).
	if data[0] != 0 || data[1] != 0 || data[2] != 255 {
		t.Errorf("pixel (0, 0) = %v, want [0 0 255]", data[:3])
	}
	// Pixel (24, 16) samples (0, 0).
	off := (16*48 + 24) * 4
	if data[off] != 127 || data[off+1] != 127 || data[off+2] != 127 {
		t.Errorf("pixel (24, 16) = %v, want [127 127 127]", data[off:off+3])
	}
}

func TestEngine_Variation(t *testing.T) {
	e, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	base, err := e.Generate()
	if err != nil {
		t.Fatal(err)
	}
	baseStrs := [3]string{base.Red.String(), base.Green.String(), base.Blue.String()}

	changed := 0
	for i := 0; i < 20; i++ {
		v := e.Variation(base)
		diff := 0
		for c, n := range v.Channels() {
			if n.Depth() != base.Channels()[c].Depth() {
				t.Errorf("variation changed channel %d depth", c)
			}
			if n.String() != baseStrs[c] {
				diff++
			}
		}
		if diff > 1 {
			t.Errorf("variation changed %d channels, want at most 1", diff)
		}
		if diff == 1 {
			changed++
		}
	}
	if changed == 0 {
		t.Error("no variation changed anything")
	}
	if base.Red.String() != baseStrs[0] || base.Green.String() != baseStrs[1] || base.Blue.String() != baseStrs[2] {
		t.Error("Variation modified the base trees")
	}
}

func TestEngine_Noise(t *testing.T) {
	cfg := smallConfig()
	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	pa, pb := a.Noise(), b.Noise()
	if pa.Width() != cfg.Width || pa.Height() != cfg.Height {
		t.Fatalf("size = %dx%d, want %dx%d", pa.Width(), pa.Height(), cfg.Width, cfg.Height)
	}
	if !bytes.Equal(pa.Data(), pb.Data()) {
		t.Error("same seed gave different noise")
	}

	data := pa.Data()
	distinct := map[uint8]bool{}
	for off := 0; off < len(data); off += 4 {
		if data[off+3] != 255 {
			t.Fatalf("alpha at %d = %d, want 255", off, data[off+3])
		}
		distinct[data[off]] = true
	}
	if len(distinct) < 128 {
		t.Errorf("red channel has only %d distinct values", len(distinct))
	}

	var buf bytes.Buffer
	if err := Encode(&buf, pa, FormatPNG, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatal(err)
	}
}

func TestParseTrees_Error(t *testing.T) {
	_, err := ParseTrees("x", "bogus(y)", "y")
	var se *expr.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want a *expr.SyntaxError", err)
	}
}

func TestPNGDecodes(t *testing.T) {
	e, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	res, err := e.Run()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, res.Pixmap, FormatPNG, 0); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(10, 7).RGBA()
	off := (7*48 + 10) * 4
	data := res.Pixmap.Data()
	if uint8(r>>8) != data[off] || uint8(g>>8) != data[off+1] || uint8(b>>8) != data[off+2] {
		t.Errorf("decoded pixel (%d, %d, %d) != raster %v", r>>8, g>>8, b>>8, data[off:off+3])
	}
}
