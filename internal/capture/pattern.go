package capture

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
)

const dataURLPrefix = "data:image/png;base64,"

// ErrNoPattern is returned when decoding an absent pattern.
var ErrNoPattern = errors.New("no pattern")

// Pattern is a captured drawing encoded as a self-contained PNG data URL.
// The zero value, NoPattern, means nothing has been drawn.
type Pattern string

// NoPattern signals that no pattern is present.
const NoPattern Pattern = ""

// Present reports whether p holds an image.
func (p Pattern) Present() bool {
	return p != NoPattern
}

func (p Pattern) String() string {
	return string(p)
}

// Decode parses the PNG carried by p. Both a full data URL and a bare
// base64 payload are accepted.
func (p Pattern) Decode() (image.Image, error) {
	if !p.Present() {
		return nil, ErrNoPattern
	}

	payload := string(p)
	if _, after, found := strings.Cut(payload, ","); found {
		payload = after
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode pattern base64: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode pattern png: %w", err)
	}
	return img, nil
}

func encodePattern(raw []byte) Pattern {
	return Pattern(dataURLPrefix + base64.StdEncoding.EncodeToString(raw))
}

// PatternChanged is emitted by a Surface whenever its pattern changes.
type PatternChanged struct {
	Pattern Pattern
}

// Listener consumes PatternChanged events.
type Listener func(PatternChanged)
