package capture

import (
	"bytes"
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

const (
	DefaultSize        = 300
	DefaultStrokeWidth = 15
)

// Point is a position in either client or canonical space.
type Point struct {
	X, Y float64
}

// Viewport is the box the surface occupies on screen, in client coordinates.
type Viewport struct {
	Left, Top     float64
	Width, Height float64
}

// InputEvent is a pointer or touch sample. When Touches is non-empty the
// first touch is used and ClientX/ClientY are ignored.
type InputEvent struct {
	ClientX, ClientY float64
	Touches          []Point
}

func (e InputEvent) client() Point {
	if len(e.Touches) > 0 {
		return e.Touches[0]
	}
	return Point{X: e.ClientX, Y: e.ClientY}
}

// Options configure a Surface. Zero fields fall back to the defaults.
type Options struct {
	Size        int
	StrokeWidth float64
}

// Surface is the drawing pad. Create it with NewSurface.
type Surface struct {
	dc         *gg.Context
	size       int
	width      float64
	viewport   Viewport
	onChange   Listener
	active     bool
	hasDrawing bool
	last       Point
}

// NewSurface returns a blank surface whose viewport initially matches the
// canonical size. onChange may be nil.
func NewSurface(opts Options, onChange Listener) *Surface {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = DefaultStrokeWidth
	}

	s := &Surface{
		dc:       gg.NewContext(opts.Size, opts.Size),
		size:     opts.Size,
		width:    opts.StrokeWidth,
		onChange: onChange,
		viewport: Viewport{Width: float64(opts.Size), Height: float64(opts.Size)},
	}
	s.paintBackground()
	return s
}

// SetListener replaces the PatternChanged consumer.
func (s *Surface) SetListener(l Listener) {
	s.onChange = l
}

// SetViewport records where and how large the surface is displayed.
// Non-positive dimensions fall back to the canonical size.
func (s *Surface) SetViewport(v Viewport) {
	if v.Width <= 0 {
		v.Width = float64(s.size)
	}
	if v.Height <= 0 {
		v.Height = float64(s.size)
	}
	s.viewport = v
}

// Size is the canonical edge length in pixels.
func (s *Surface) Size() int { return s.size }

// Active reports whether a stroke is in progress.
func (s *Surface) Active() bool { return s.active }

// HasDrawing reports whether anything was drawn since creation or the last
// Clear.
func (s *Surface) HasDrawing() bool { return s.hasDrawing }

// Canonical maps an event into canonical space. X and Y are scaled by
// independent factors because the displayed box may not keep the aspect
// ratio.
func (s *Surface) Canonical(ev InputEvent) Point {
	c := ev.client()
	sx := float64(s.size) / s.viewport.Width
	sy := float64(s.size) / s.viewport.Height
	return Point{
		X: (c.X - s.viewport.Left) * sx,
		Y: (c.Y - s.viewport.Top) * sy,
	}
}

// Begin starts a stroke at ev. Nothing is drawn or emitted yet.
func (s *Surface) Begin(ev InputEvent) {
	s.last = s.Canonical(ev)
	s.active = true
}

// Extend draws a segment from the previous point to ev. It is a no-op when
// no stroke is in progress.
func (s *Surface) Extend(ev InputEvent) {
	if !s.active {
		return
	}
	p := s.Canonical(ev)

	s.dc.SetRGB(0, 0, 0)
	s.dc.SetLineWidth(s.width)
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
	s.dc.MoveTo(s.last.X, s.last.Y)
	s.dc.LineTo(p.X, p.Y)
	s.dc.Stroke()

	s.last = p
	s.hasDrawing = true
}

// End finishes the stroke, encodes the whole canonical surface and emits it.
// It is a no-op when no stroke is in progress.
func (s *Surface) End() error {
	if !s.active {
		return nil
	}
	s.active = false

	p, err := s.Encode()
	if err != nil {
		return err
	}
	s.emit(p)
	return nil
}

// Clear resets the surface to its blank background and emits NoPattern.
func (s *Surface) Clear() {
	s.active = false
	s.hasDrawing = false
	s.paintBackground()
	s.emit(NoPattern)
}

// Encode serializes the canonical surface as a PNG data URL.
func (s *Surface) Encode() (Pattern, error) {
	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return NoPattern, fmt.Errorf("encode surface: %w", err)
	}
	return encodePattern(buf.Bytes()), nil
}

// Image exposes the canonical raster.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

func (s *Surface) paintBackground() {
	s.dc.SetRGB(1, 1, 1)
	s.dc.Clear()
}

func (s *Surface) emit(p Pattern) {
	if s.onChange != nil {
		s.onChange(PatternChanged{Pattern: p})
	}
}
