package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"

	"github.com/wildfunctions/random_art/pkg/engine"
	"github.com/wildfunctions/random_art/pkg/gallery"
	"github.com/wildfunctions/random_art/pkg/pool"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg := engine.DefaultConfig()
	cfg.Format = ""
	out := "myart.png"
	report := "text"
	variations := 0
	galleryPath := ""
	name := ""
	from := ""
	list := false
	noise := false

	fs := flag.NewFlagSet("random_art", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.IntVar(&cfg.Width, "width", cfg.Width, "image width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "image height in pixels")
	fs.IntVar(&cfg.MinDepth, "mindepth", cfg.MinDepth, "min tree depth")
	fs.IntVar(&cfg.MaxDepth, "maxdepth", cfg.MaxDepth, "max tree depth")
	fs.StringVar(&cfg.Pool, "pool", cfg.Pool, "function pool ("+strings.Join(pool.Names(), ", ")+")")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "image format ("+strings.Join(engine.Formats(), ", ")+"; default from -out)")
	fs.IntVar(&cfg.Quality, "quality", cfg.Quality, "jpeg quality (1-100)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "debug logging")
	fs.StringVar(&out, "out", out, "output image file")
	fs.StringVar(&report, "report", report, "report format (text, json)")
	fs.IntVar(&variations, "variations", variations, "number of mutated variations to write alongside the image")
	fs.StringVar(&galleryPath, "gallery", galleryPath, "gallery database to record generated images in")
	fs.StringVar(&name, "name", name, "gallery name for this image (default: output file name)")
	fs.StringVar(&from, "from", from, "re-render the named gallery image instead of generating a new one")
	fs.BoolVar(&list, "list", list, "list gallery images and exit")
	fs.BoolVar(&noise, "noise", noise, "write a random noise image instead of art")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	engine.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	var g *gallery.Gallery
	if galleryPath != "" {
		var err error
		g, err = gallery.Open(galleryPath)
		if err != nil {
			return err
		}
		defer g.Close()
	} else if list || from != "" {
		return errors.New("-list and -from need -gallery")
	}

	if list {
		records, err := g.List()
		if err != nil {
			return err
		}
		for _, r := range records {
			fmt.Fprintf(stdout, "%-20s %dx%d seed %d depth %d..%d %s\n",
				r.Name, r.Width, r.Height, r.Seed, r.MinDepth, r.MaxDepth, r.Created.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	if cfg.Format == "" {
		f, ok := engine.FormatFromPath(out)
		if !ok {
			f = engine.FormatPNG
		}
		cfg.Format = f
	}

	var rec gallery.Record
	if from != "" {
		var err error
		rec, err = g.Get(from)
		if err != nil {
			return err
		}
		cfg.Width, cfg.Height = rec.Width, rec.Height
		cfg.MinDepth, cfg.MaxDepth = rec.MinDepth, rec.MaxDepth
		cfg.Pool = rec.Pool
		cfg.Seed = rec.Seed
	}

	e, err := engine.New(cfg)
	if err != nil {
		return err
	}

	if noise {
		if err := writeImage(out, e.Noise(), cfg); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Fprintf(stderr, "Wrote %s\n", out)
		return nil
	}

	var res *engine.Result
	if from != "" {
		trees, perr := engine.ParseTrees(rec.Red, rec.Green, rec.Blue)
		if perr != nil {
			return fmt.Errorf("gallery image %s: %w", from, perr)
		}
		res, err = e.RenderTrees(trees)
	} else {
		res, err = e.Run()
	}
	if err != nil {
		return err
	}

	if err := writeImage(out, res.Pixmap, cfg); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	res.Report.Output = out

	if g != nil && from == "" {
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(out), filepath.Ext(out))
		}
		if err := g.Put(recordOf(name, res.Report)); err != nil {
			return fmt.Errorf("saving %s to gallery: %w", name, err)
		}
		fmt.Fprintf(stderr, "Saved %s to %s\n", name, galleryPath)
	}

	base := strings.TrimSuffix(out, filepath.Ext(out))
	for i := 1; i <= variations; i++ {
		vres, err := e.RenderTrees(e.Variation(res.Trees))
		if err != nil {
			return err
		}
		vout := fmt.Sprintf("%s-v%d%s", base, i, engine.Ext(cfg.Format))
		if err := writeImage(vout, vres.Pixmap, cfg); err != nil {
			return fmt.Errorf("writing %s: %w", vout, err)
		}
		fmt.Fprintf(stderr, "Wrote %s\n", vout)
	}

	switch report {
	case "json":
		if err := engine.WriteJSONFinal(stdout, res.Report); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
	default:
		engine.WriteTextFinal(stdout, res.Report)
	}
	return nil
}

func writeImage(path string, pm *gg.Pixmap, cfg engine.Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := engine.Encode(f, pm, cfg.Format, cfg.Quality); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func recordOf(name string, r engine.FinalReport) gallery.Record {
	rec := gallery.Record{
		Name:     name,
		Seed:     r.Seed,
		Pool:     r.Config.Pool,
		MinDepth: r.Config.MinDepth,
		MaxDepth: r.Config.MaxDepth,
		Width:    r.Config.Width,
		Height:   r.Config.Height,
	}
	for _, c := range r.Channels {
		switch c.Channel {
		case "red":
			rec.Red = c.Tree
		case "green":
			rec.Green = c.Tree
		case "blue":
			rec.Blue = c.Tree
		}
	}
	return rec
}
