// Package render paints a GridMap onto a terminal screen for the route preview.
package render

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/rovermap/gridmap"
)

// Palette assigns a style to each kind of cell.
type Palette struct {
	Obstacle tcell.Style
	Empty    tcell.Style
	Route    tcell.Style
	Other    tcell.Style
}

// DefaultPalette draws obstacles bright, empty cells dim and the route highlighted.
func DefaultPalette() Palette {
	return Palette{
		Obstacle: tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
		Empty:    tcell.StyleDefault.Foreground(tcell.ColorGray),
		Route:    tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		Other:    tcell.StyleDefault.Foreground(tcell.ColorAqua),
	}
}

// Options configures Draw.
type Options struct {
	OriginX, OriginY int // screen cell of the map's (1,1)
	RouteMark        byte
	Palette          Palette
	Glyphs           map[byte]rune // optional substitution, e.g. obstacle → '█'
}

// Option represents a functional option for configuring Draw.
type Option func(*Options)

// WithOrigin places the map's top-left cell at screen (x,y).
func WithOrigin(x, y int) Option {
	return func(o *Options) { o.OriginX, o.OriginY = x, y }
}

// WithRouteMark sets which cell value is styled as route.
func WithRouteMark(mark byte) Option {
	return func(o *Options) { o.RouteMark = mark }
}

// WithPalette replaces the default palette.
func WithPalette(p Palette) Option {
	return func(o *Options) { o.Palette = p }
}

// WithGlyph draws cells holding v as r.
func WithGlyph(v byte, r rune) Option {
	return func(o *Options) {
		if o.Glyphs == nil {
			o.Glyphs = make(map[byte]rune)
		}
		o.Glyphs[v] = r
	}
}

// DefaultOptions draws at the screen origin with '*' as route mark.
func DefaultOptions() Options {
	return Options{RouteMark: '*', Palette: DefaultPalette()}
}

// Draw paints g onto s, one screen cell per map cell, clipped to the screen
// size. It does not call s.Show.
func Draw(s tcell.Screen, g *gridmap.GridMap, opts ...Option) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	snap := g.Snapshot()
	sw, sh := s.Size()
	for y := 1; y <= snap.Height; y++ {
		sy := cfg.OriginY + y - 1
		if sy < 0 || sy >= sh {
			continue
		}
		for x := 1; x <= snap.Width; x++ {
			sx := cfg.OriginX + x - 1
			if sx < 0 || sx >= sw {
				continue
			}
			v := snap.At(x, y)
			s.SetContent(sx, sy, cfg.glyph(v), nil, cfg.style(v, snap))
		}
	}
}

func (o Options) glyph(v byte) rune {
	if r, ok := o.Glyphs[v]; ok {
		return r
	}

	return rune(v)
}

func (o Options) style(v byte, snap gridmap.Snapshot) tcell.Style {
	switch v {
	case snap.Obstacle:
		return o.Palette.Obstacle
	case snap.Empty:
		return o.Palette.Empty
	case o.RouteMark:
		return o.Palette.Route
	default:
		return o.Palette.Other
	}
}

// Show clears s, draws g, shows it and blocks until a key is pressed or
// ctx is done.
func Show(ctx context.Context, s tcell.Screen, g *gridmap.GridMap, opts ...Option) error {
	s.Clear()
	Draw(s, g, opts...)
	s.Show()

	keys := make(chan struct{})
	go func() {
		defer close(keys)
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			if _, ok := ev.(*tcell.EventKey); ok {
				return
			}
		}
	}()

	select {
	case <-keys:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
