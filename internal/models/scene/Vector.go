// This file contains the numeric building blocks of the scene model: 3-vectors and colors.
// Colors come in two conventions used by the viewer: packed 24-bit RGB integers (material colors)
// and normalized float triples (per-vertex and per-marker colors). Both survive a round trip unchanged.

package scene

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

var (
	// ErrVectorArity is returned when a vector does not have exactly three components.
	ErrVectorArity = errors.New("vector must have exactly 3 components")
	// ErrInvalidColor is returned when a color is neither a packed RGB integer nor an RGB triple.
	ErrInvalidColor = errors.New("color must be a packed 24-bit integer or an RGB triple")
)

// MaxPackedColor is the largest packed 24-bit RGB value.
const MaxPackedColor = 0xffffff

// Vec3 is a position, size, rotation or color triple.
type Vec3 [3]float64

// UnmarshalJSON decodes a JSON array, rejecting arrays that are not exactly 3 long.
func (v *Vec3) UnmarshalJSON(data []byte) error {
	var components []float64
	if err := json.Unmarshal(data, &components); err != nil {
		return err
	}
	if len(components) != 3 {
		return fmt.Errorf("%w, got %d", ErrVectorArity, len(components))
	}
	copy(v[:], components)
	return nil
}

type colorKind uint8

const (
	colorUnset colorKind = iota
	colorPacked
	colorRGB
)

// Color holds either a packed 24-bit RGB integer or a normalized RGB triple.
// The zero value is an unset color and serializes as null.
type Color struct {
	kind   colorKind
	packed uint32
	rgb    Vec3
}

// Hex returns a packed color, e.g. Hex(0xffffaa).
func Hex(v uint32) Color {
	return Color{kind: colorPacked, packed: v}
}

// RGB returns a normalized color triple.
func RGB(r, g, b float64) Color {
	return Color{kind: colorRGB, rgb: Vec3{r, g, b}}
}

// Packed returns the packed value and whether the color uses the packed convention.
func (c Color) Packed() (uint32, bool) {
	return c.packed, c.kind == colorPacked
}

// Triple returns the normalized components and whether the color uses the triple convention.
func (c Color) Triple() (Vec3, bool) {
	return c.rgb, c.kind == colorRGB
}

// IsSet reports whether the color holds a value.
func (c Color) IsSet() bool {
	return c.kind != colorUnset
}

func (c Color) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case colorPacked:
		return strconv.AppendUint(nil, uint64(c.packed), 10), nil
	case colorRGB:
		return json.Marshal(c.rgb)
	default:
		return []byte("null"), nil
	}
}

func (c *Color) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = Color{}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var rgb Vec3
		if err := rgb.UnmarshalJSON(data); err != nil {
			return err
		}
		*c = Color{kind: colorRGB, rgb: rgb}
		return nil
	}
	if v, err := strconv.ParseUint(string(data), 10, 32); err == nil {
		*c = Hex(uint32(v))
		return nil
	}
	// Stores that only know doubles hand us integral floats like 1.677713e+07.
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
		return ErrInvalidColor
	}
	*c = Hex(uint32(f))
	return nil
}
