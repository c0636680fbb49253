// Package cloud is the word-cloud layout boundary: it turns normalized
// text into a weighted word list and a rendered PNG. Layout and drawing
// are delegated to the wordclouds library; this package owns frequency
// counting, weight normalization, and the Engine seam that the HTTP layer
// and tests program against.
package cloud

import (
	"context"
	"errors"
)

// ErrEmptyContent means the input text holds no usable tokens. It is the
// precondition every Engine enforces before doing layout work.
var ErrEmptyContent = errors.New("no usable text content")

// WeightedWord is one word surfaced by the engine with its relative
// weight, a value in (0, 1] proportional to the word's frequency.
type WeightedWord struct {
	Word   string  `json:"word"`
	Weight float64 `json:"weight"`
}

// Cloud is the engine output: the weighted vocabulary in emission order
// (most frequent first, ties by first occurrence in the input text) and
// the rendered PNG image.
type Cloud struct {
	Words []WeightedWord `json:"words"`
	PNG   []byte         `json:"-"`
}

// Options configures one generation. Styling strings (colors, colormap)
// are passed through to the rendering backend unvalidated.
type Options struct {
	MaxWords     int    `json:"max_words"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Background   string `json:"background_color"`
	Colormap     string `json:"colormap"`
	ContourWidth int    `json:"contour_width"`
	ContourColor string `json:"contour_color"`
}

func (o *Options) defaults() {
	if o.MaxWords <= 0 {
		o.MaxWords = 200
	}
	if o.MaxWords > 1000 {
		o.MaxWords = 1000
	}
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 400
	}
	if o.Background == "" {
		o.Background = "#ffffff"
	}
	if o.Colormap == "" {
		o.Colormap = "viridis"
	}
	if o.ContourColor == "" {
		o.ContourColor = "#000000"
	}
}

// Engine generates a word cloud from normalized text. Implementations must
// return ErrEmptyContent when the text holds no tokens and must never
// reorder or recompute weights after emission.
type Engine interface {
	Generate(ctx context.Context, text string, opts Options) (*Cloud, error)
}
