package cloud

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"os"

	"github.com/psykhi/wordclouds"
)

// Config configures the rendering engine.
type Config struct {
	// FontFile is the TTF font used for drawing. Required for rendering.
	FontFile string `json:"font_file" yaml:"font_file"`

	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Generator is the production Engine: frequency counting plus layout and
// drawing via the wordclouds library.
type Generator struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Generator with the given configuration.
func New(cfg Config) *Generator {
	cfg.defaults()
	return &Generator{
		cfg:    cfg,
		logger: cfg.Logger,
	}
}

var _ Engine = (*Generator)(nil)

// Generate counts word frequencies in the normalized text, lays out the
// top MaxWords words, and renders them to a PNG. The returned word list is
// in emission order; weights are relative frequencies in (0, 1].
func (g *Generator) Generate(ctx context.Context, text string, opts Options) (*Cloud, error) {
	opts.defaults()

	counts := Frequencies(text, opts.MaxWords)
	if len(counts) == 0 {
		return nil, ErrEmptyContent
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.logger.Debug("generating cloud", "words", len(counts), "max_words", opts.MaxWords)

	img, err := g.render(counts, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return &Cloud{
		Words: Weights(counts),
		PNG:   buf.Bytes(),
	}, nil
}

func (g *Generator) render(counts []WordCount, opts Options) (image.Image, error) {
	if g.cfg.FontFile == "" {
		return nil, fmt.Errorf("render: font file not configured")
	}
	if _, err := os.Stat(g.cfg.FontFile); err != nil {
		return nil, fmt.Errorf("render: font file: %w", err)
	}

	wordList := make(map[string]int, len(counts))
	for _, c := range counts {
		wordList[c.Word] = c.Count
	}

	bg := parseColor(opts.Background, image.White.C)

	w := wordclouds.NewWordcloud(wordList,
		wordclouds.FontFile(g.cfg.FontFile),
		wordclouds.FontMaxSize(opts.Height/4),
		wordclouds.FontMinSize(10),
		wordclouds.Colors(palette(opts.Colormap)),
		wordclouds.BackgroundColor(bg),
		wordclouds.Width(opts.Width),
		wordclouds.Height(opts.Height),
		wordclouds.RandomPlacement(false),
	)
	img := w.Draw()

	if opts.ContourWidth > 0 {
		img = drawContour(img, opts.ContourWidth, parseColor(opts.ContourColor, image.Black.C))
	}
	return img, nil
}

// drawContour frames the rendered image with a border of the given width.
func drawContour(src image.Image, width int, c color.Color) image.Image {
	b := src.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, src, b.Min, draw.Src)

	for x := b.Min.X; x < b.Max.X; x++ {
		for i := 0; i < width; i++ {
			out.Set(x, b.Min.Y+i, c)
			out.Set(x, b.Max.Y-1-i, c)
		}
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for i := 0; i < width; i++ {
			out.Set(b.Min.X+i, y, c)
			out.Set(b.Max.X-1-i, y, c)
		}
	}
	return out
}
