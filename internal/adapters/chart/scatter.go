package chart

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format selects the image encoding.
type Format string

// Supported formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts "svg" or "png". Empty means SVG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatSVG, nil
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the HTTP content type for the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

const (
	defaultWidth  = 1024
	defaultHeight = 640
	defaultTitle  = "Touches per 90 vs OBV Rank"
	dotWidth      = 4
)

// Renderer draws scatter plots of a fixed size.
type Renderer struct {
	width  int
	height int
	title  string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the image size in pixels. Non-positive values keep the default.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// WithTitle overrides the chart title.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		r.title = title
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth, height: defaultHeight, title: defaultTitle}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// pointStyle renders dots only, no connecting line.
func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeWidth: 0,
		DotWidth:    dotWidth,
		DotColor:    col,
	}
}

// Render writes the scatter plot of points to w. With no points an SVG
// placeholder is written; PNG output fails with ErrNoPoints.
func (r *Renderer) Render(w io.Writer, points []Point, format Format) error {
	var provider gochart.RendererProvider
	switch format {
	case FormatSVG:
		provider = gochart.SVG
	case FormatPNG:
		provider = gochart.PNG
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if len(points) == 0 {
		if format == FormatSVG {
			return r.placeholder(w)
		}
		return ErrNoPoints
	}

	groups := byPosition(points)
	series := make([]gochart.Series, 0, len(groups))
	for i, g := range groups {
		series = append(series, gochart.ContinuousSeries{
			Name:    g.name,
			XValues: g.xs,
			YValues: g.ys,
			Style:   pointStyle(gochart.GetDefaultColor(i)),
		})
	}

	lo, hi := xRange(points)
	ch := gochart.Chart{
		Title:      r.title,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  "Touches per 90",
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		YAxis: gochart.YAxis{
			Name:  "OBV Rank",
			Range: &gochart.ContinuousRange{Min: 0, Max: 100},
			Ticks: []gochart.Tick{
				{Value: 0, Label: "0"},
				{Value: 25, Label: "25"},
				{Value: 50, Label: "50"},
				{Value: 75, Label: "75"},
				{Value: 100, Label: "100"},
			},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

// xRange pads the touches span so single points and equal values still
// give the axis a non-zero width.
func xRange(points []Point) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lo = math.Min(lo, p.TouchesPer90)
		hi = math.Max(hi, p.TouchesPer90)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return math.Max(0, lo-pad), hi + pad
}

func (r *Renderer) placeholder(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`, r.width, r.height)
	fmt.Fprintf(&b, `<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" fill="#666">%s</text>`,
		html.EscapeString("No players match the current filters"))
	b.WriteString(`</svg>`)
	_, err := io.WriteString(w, b.String())
	return err
}
