// Package render draws finished maps for previews: a PNG with one square
// per tile, or one glyph per tile for terminals. It only reads the grid.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/biome-map/internal/world"
)

// Background is drawn for tiles without a palette entry.
var Background = color.RGBA{A: 255}

// Palette is the static tile → color table.
var Palette = map[world.Tile]color.RGBA{
	world.Plains:     {R: 60, G: 255, B: 60, A: 255},
	world.Forest:     {R: 20, G: 120, B: 20, A: 255},
	world.Water:      {R: 0, G: 200, B: 255, A: 255},
	world.DesertSand: {R: 230, G: 230, B: 150, A: 255},
	world.Rock:       {R: 120, G: 120, B: 120, A: 255},
	world.Beach:      {R: 255, G: 240, B: 160, A: 255},
	world.Snow:       {R: 240, G: 240, B: 240, A: 255},
}

// Glyphs maps tiles to single characters for Text.
var Glyphs = map[world.Tile]byte{
	world.Plains:     '.',
	world.Forest:     'T',
	world.Water:      '~',
	world.DesertSand: ':',
	world.Rock:       '^',
	world.Beach:      ',',
	world.Snow:       '*',
}

// Color returns the palette color for t.
func Color(t world.Tile) color.RGBA {
	if c, ok := Palette[t]; ok {
		return c
	}
	return Background
}

// Options control PNG output.
type Options struct {
	TileSize int     // Pixels per tile edge
	Shading  float64 // Brightness jitter amplitude, 0 disables it
	Seed     int64   // Noise seed for shading
}

// Image draws g with one TileSize square per tile. With Shading set, each
// tile's brightness is nudged by simplex noise so flat regions show texture.
func Image(g *world.Grid, opts Options) *image.RGBA {
	size := opts.TileSize
	if size <= 0 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, g.Width()*size, g.Height()*size))

	var noise opensimplex.Noise
	if opts.Shading > 0 {
		noise = opensimplex.NewNormalized(opts.Seed)
	}

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := Color(g.TileAt(x, y))
			if noise != nil {
				// Normalized noise is in [0, 1]; center it on zero.
				c = shade(c, (noise.Eval2(float64(x)*0.15, float64(y)*0.15)-0.5)*2*opts.Shading)
			}
			for py := y * size; py < (y+1)*size; py++ {
				for px := x * size; px < (x+1)*size; px++ {
					img.SetRGBA(px, py, c)
				}
			}
		}
	}
	return img
}

// shade scales c's channels by (1 + f), clamped to the byte range.
func shade(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 {
		s := float64(v) * (1 + f)
		if s < 0 {
			return 0
		}
		if s > 255 {
			return 255
		}
		return uint8(s)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// WritePNG renders g and writes it to path, creating parent directories.
func WritePNG(path string, g *world.Grid, opts Options) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preview directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := png.Encode(f, Image(g, opts)); err != nil {
		f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	return f.Close()
}

// Text renders g as one line of glyphs per row.
func Text(g *world.Grid) string {
	var b strings.Builder
	b.Grow((g.Width() + 1) * g.Height())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			glyph, ok := Glyphs[g.TileAt(x, y)]
			if !ok {
				glyph = '?'
			}
			b.WriteByte(glyph)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
