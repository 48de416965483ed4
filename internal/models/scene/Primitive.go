// This file contains the Primitive tagged union: every geometry entry carries a name, a `_type` tag,
// an optional material reference and a shape payload selected by the tag.
// All keys of a known shape are required; unknown tags keep their keys in Extra.

package scene

import (
	"errors"

	json "github.com/goccy/go-json"
)

// PrimitiveType is the geometry tag of a primitive.
type PrimitiveType string

// Geometry tags understood by the viewer.
const (
	TypeBoxGeometry         PrimitiveType = "BoxGeometry"
	TypeLine                PrimitiveType = "Line"
	TypeColoredLineSegments PrimitiveType = "ColoredLineSegments"
	TypePointMarkers        PrimitiveType = "PointMarkers"
)

var errMissingField = errors.New("field is required")

// Shape is the typed payload of a known geometry tag.
type Shape interface {
	PrimitiveType() PrimitiveType
}

// Primitive is a named geometric shape entry of a scene.
type Primitive struct {
	Name     string
	Type     PrimitiveType
	Material string
	// Touchable is a path into the scene tree the viewer uses to center the camera on this primitive.
	Touchable    string
	TitleOnHover string
	Shape        Shape
	Extra        map[string]any
}

// BoxGeometry is a box given by its center, half-extents and Euler angles in degrees.
type BoxGeometry struct {
	Position Vec3 `json:"position"`
	Sizes    Vec3 `json:"sizes" validate:"dive,gte=0"`
	Rotation Vec3 `json:"rotation"`
}

// Line is a polyline.
type Line struct {
	Points []Vec3 `json:"points" validate:"min=2"`
}

// ColoredPoint is a vertex of a colored line segment set, encoded as [position, color].
type ColoredPoint struct {
	Position Vec3
	Color    Color `validate:"unitcolor"`
}

// ColoredLineSegments is a sequence of colored vertices.
type ColoredLineSegments struct {
	Points []ColoredPoint `json:"points" validate:"min=1,dive"`
}

// PointMarker is a single hit marker.
type PointMarker struct {
	Position Vec3    `json:"position"`
	Color    Color   `json:"color" validate:"unitcolor"`
	Size     float64 `json:"size" validate:"gte=0"`
}

// PointMarkers is a set of hit markers drawn with a marker shader.
type PointMarkers struct {
	Items []PointMarker `json:"items" validate:"min=1,dive"`
}

func (*BoxGeometry) PrimitiveType() PrimitiveType         { return TypeBoxGeometry }
func (*Line) PrimitiveType() PrimitiveType                { return TypeLine }
func (*ColoredLineSegments) PrimitiveType() PrimitiveType { return TypeColoredLineSegments }
func (*PointMarkers) PrimitiveType() PrimitiveType        { return TypePointMarkers }

func newShape(t PrimitiveType) Shape {
	switch t {
	case TypeBoxGeometry:
		return &BoxGeometry{}
	case TypeLine:
		return &Line{}
	case TypeColoredLineSegments:
		return &ColoredLineSegments{}
	case TypePointMarkers:
		return &PointMarkers{}
	default:
		return nil
	}
}

// NewPrimitive builds a primitive whose tag is taken from its shape.
func NewPrimitive(name, material string, shape Shape) Primitive {
	return Primitive{Name: name, Type: shape.PrimitiveType(), Material: material, Shape: shape}
}

func (p ColoredPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Position, p.Color})
}

func (p *ColoredPoint) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return errors.New("colored point must be a [position, color] pair")
	}
	var decoded ColoredPoint
	if err := decoded.Position.UnmarshalJSON(pair[0]); err != nil {
		return err
	}
	if err := decoded.Color.UnmarshalJSON(pair[1]); err != nil {
		return err
	}
	*p = decoded
	return nil
}

func (p Primitive) MarshalJSON() ([]byte, error) {
	obj := object{}
	if err := obj.put(keyName, p.Name); err != nil {
		return nil, err
	}
	if err := obj.put(keyType, p.Type); err != nil {
		return nil, err
	}
	for _, kv := range [][2]string{
		{keyMaterial, p.Material},
		{keyTouchable, p.Touchable},
		{keyTitleOnHover, p.TitleOnHover},
	} {
		if err := obj.putString(kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	if p.Shape != nil {
		if err := obj.merge(p.Shape); err != nil {
			return nil, err
		}
	}
	if err := obj.mergeExtra(p.Extra); err != nil {
		return nil, err
	}
	return obj.encode()
}

func (p *Primitive) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return schemaViolation(EntityPrimitive, "", "", err.Error())
	}

	var decoded Primitive
	if decoded.Name, err = obj.optionalString(keyName); err != nil {
		return schemaViolation(EntityPrimitive, "", keyName, err.Error())
	}
	fail := func(field string, err error) error {
		return schemaViolation(EntityPrimitive, decoded.Name, field, err.Error())
	}

	typ, err := obj.optionalString(keyType)
	if err != nil {
		return fail(keyType, err)
	}
	decoded.Type = PrimitiveType(typ)
	if decoded.Material, err = obj.optionalString(keyMaterial); err != nil {
		return fail(keyMaterial, err)
	}
	if decoded.Touchable, err = obj.optionalString(keyTouchable); err != nil {
		return fail(keyTouchable, err)
	}
	if decoded.TitleOnHover, err = obj.optionalString(keyTitleOnHover); err != nil {
		return fail(keyTitleOnHover, err)
	}

	claimed := claim(keyName, keyType, keyMaterial, keyTouchable, keyTitleOnHover)
	if shape := newShape(decoded.Type); shape != nil {
		keys := jsonKeys(shape)
		for _, k := range keys {
			if _, ok := obj[k]; !ok {
				return fail(k, errMissingField)
			}
			claimed[k] = true
		}
		payload, err := obj.subset(keys)
		if err != nil {
			return fail("", err)
		}
		if err := json.Unmarshal(payload, shape); err != nil {
			return fail("", err)
		}
		decoded.Shape = shape
	}

	if decoded.Extra, err = obj.extra(claimed); err != nil {
		return fail("", err)
	}
	*p = decoded
	return nil
}
