package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

var formatExts = map[string]string{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
}

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatPNG, FormatJPEG, FormatBMP, FormatTIFF}
}

func validFormat(f string) bool {
	for _, v := range Formats() {
		if f == v {
			return true
		}
	}
	return false
}

// FormatFromPath infers the output format from a file extension.
func FormatFromPath(path string) (string, bool) {
	f, ok := formatExts[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Ext returns the canonical file extension for a format, with the dot.
func Ext(format string) string {
	switch format {
	case FormatJPEG:
		return ".jpg"
	case FormatTIFF:
		return ".tif"
	default:
		return "." + format
	}
}

// Encode writes the pixmap to w in the given format. quality is only used
// for jpeg.
func Encode(w io.Writer, pm *gg.Pixmap, format string, quality int) error {
	switch format {
	case FormatPNG, "":
		dc := gg.NewContext(pm.Width(), pm.Height(), gg.WithPixmap(pm))
		defer dc.Close()
		return dc.EncodePNG(w)
	case FormatJPEG:
		dc := gg.NewContext(pm.Width(), pm.Height(), gg.WithPixmap(pm))
		defer dc.Close()
		return dc.EncodeJPEG(w, quality)
	case FormatBMP:
		return bmp.Encode(w, pm.ToImage())
	case FormatTIFF:
		return tiff.Encode(w, pm.ToImage(), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// ChannelReport summarizes one channel's tree.
type ChannelReport struct {
	Channel string `json:"channel"`
	Tree    string `json:"tree"`
	Depth   int    `json:"depth"`
	Nodes   int    `json:"nodes"`
}

// FinalReport summarizes one generated image.
type FinalReport struct {
	Config     Config          `json:"config"`
	Seed       int64           `json:"seed"`
	Channels   []ChannelReport `json:"channels"`
	OutOfGamut int64           `json:"out_of_gamut"`
	Elapsed    time.Duration   `json:"elapsed_ns"`
	Output     string          `json:"output,omitempty"`
}

// WriteTextFinal writes the final report in human-readable format.
func WriteTextFinal(w io.Writer, r FinalReport) {
	fmt.Fprintln(w, "========== RANDOM ART ==========")
	fmt.Fprintf(w, "Size:       %dx%d\n", r.Config.Width, r.Config.Height)
	fmt.Fprintf(w, "Depth:      %d..%d\n", r.Config.MinDepth, r.Config.MaxDepth)
	fmt.Fprintf(w, "Pool:       %s\n", r.Config.Pool)
	fmt.Fprintf(w, "Seed:       %d\n", r.Seed)
	for _, c := range r.Channels {
		fmt.Fprintf(w, "%-11s depth %d, %d nodes | %s\n", strings.ToUpper(c.Channel[:1])+c.Channel[1:]+":", c.Depth, c.Nodes, c.Tree)
	}
	fmt.Fprintf(w, "Clamped:    %d\n", r.OutOfGamut)
	fmt.Fprintf(w, "Elapsed:    %s\n", r.Elapsed.Round(time.Millisecond))
	if r.Output != "" {
		fmt.Fprintf(w, "Output:     %s\n", r.Output)
	}
	fmt.Fprintln(w, "================================")
}

// WriteJSONFinal writes the final report as JSON.
func WriteJSONFinal(w io.Writer, r FinalReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
