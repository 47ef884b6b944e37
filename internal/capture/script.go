package capture

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrEmptyScript is returned when a script contains no strokes.
var ErrEmptyScript = errors.New("script has no strokes")

// Script is a recorded drawing: the viewport it was drawn in and its strokes
// as client-space points.
//
// Text form:
//
//	# comment
//	150 150
//	stroke 10,10 40,40 80,20
//	stroke 20,120 130,120
//
// The first non-comment line is the viewport: "W H", or "W H L T" when the
// box does not sit at the client origin.
type Script struct {
	Viewport Viewport
	Strokes  [][]Point
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return ParseScript(f)
}

// ParseScript reads the text form described on Script.
func ParseScript(r io.Reader) (*Script, error) {
	sc := &Script{}
	haveViewport := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		if !haveViewport {
			vp, err := parseViewport(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			sc.Viewport = vp
			haveViewport = true
			continue
		}

		if fields[0] != "stroke" {
			return nil, fmt.Errorf("line %d: unknown directive %q", lineNo, fields[0])
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: stroke needs at least one point", lineNo)
		}
		stroke := make([]Point, 0, len(fields)-1)
		for _, f := range fields[1:] {
			p, err := parsePoint(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			stroke = append(stroke, p)
		}
		sc.Strokes = append(sc.Strokes, stroke)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	if len(sc.Strokes) == 0 {
		return nil, ErrEmptyScript
	}
	return sc, nil
}

// Replay feeds the script through s: Begin at the first point of every
// stroke, Extend through the rest, then End.
func (sc *Script) Replay(s *Surface) error {
	s.SetViewport(sc.Viewport)
	for _, stroke := range sc.Strokes {
		s.Begin(InputEvent{ClientX: stroke[0].X, ClientY: stroke[0].Y})
		for _, p := range stroke[1:] {
			s.Extend(InputEvent{ClientX: p.X, ClientY: p.Y})
		}
		if err := s.End(); err != nil {
			return err
		}
	}
	return nil
}

func parseViewport(fields []string) (Viewport, error) {
	if len(fields) != 2 && len(fields) != 4 {
		return Viewport{}, fmt.Errorf("viewport must be \"W H\" or \"W H L T\", got %q", strings.Join(fields, " "))
	}
	nums := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Viewport{}, fmt.Errorf("viewport value %q: %w", f, err)
		}
		nums[i] = v
	}
	if nums[0] <= 0 || nums[1] <= 0 {
		return Viewport{}, fmt.Errorf("viewport size must be positive")
	}
	vp := Viewport{Width: nums[0], Height: nums[1]}
	if len(nums) == 4 {
		vp.Left, vp.Top = nums[2], nums[3]
	}
	return vp, nil
}

func parsePoint(s string) (Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return Point{X: x, Y: y}, nil
}
