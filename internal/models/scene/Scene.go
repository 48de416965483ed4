// This file contains the Scene struct and its members, the document served to the viewer on /scene.
//
// When interacting with the viewer, JSON keys must match what the client destructures: `_name`, `_type`
// and `_material` on entries, `iterable`, `expiresIn` and `geometryData` at the top level.
// The legacy event document uses `primitives` instead of `geometry`; Parse accepts it as an alias,
// and SerializeLegacy emits it for clients that still read it.

package scene

import (
	"errors"
	"math"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// Scene is one served document describing a 3D arrangement of materials and primitives.
type Scene struct {
	// Iterable marks the document as one item of a larger browsable collection.
	Iterable bool `json:"iterable"`
	// ExpiresIn is a cache lifetime hint; nil means the scene does not expire.
	ExpiresIn    *Lifetime    `json:"expiresIn"`
	GeometryData GeometryData `json:"geometryData"`
}

// GeometryData holds the materials and primitives of a scene in insertion order.
type GeometryData struct {
	Materials []Material
	Geometry  []Primitive
}

// Lifetime is a duration encoded as a number of seconds.
type Lifetime time.Duration

// maxLifetimeSeconds is the longest lifetime a time.Duration can hold.
const maxLifetimeSeconds = math.MaxInt64 / int64(time.Second)

var (
	errNegativeLifetime = errors.New("must not be negative")
	errLifetimeRange    = errors.New("exceeds the longest supported lifetime")
)

// ExpiresAfter returns a lifetime hint suitable for Scene.ExpiresIn.
func ExpiresAfter(d time.Duration) *Lifetime {
	l := Lifetime(d)
	return &l
}

func (l Lifetime) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, time.Duration(l).Seconds(), 'f', -1, 64), nil
}

func (l *Lifetime) UnmarshalJSON(data []byte) error {
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return err
	}
	switch {
	case seconds < 0:
		return errNegativeLifetime
	case seconds > float64(maxLifetimeSeconds):
		return errLifetimeRange
	}
	*l = Lifetime(seconds * float64(time.Second))
	return nil
}

// Material returns the material with the given name.
func (g *GeometryData) Material(name string) (*Material, bool) {
	for i := range g.Materials {
		if g.Materials[i].Name == name {
			return &g.Materials[i], true
		}
	}
	return nil, false
}

// Primitive returns the primitive with the given name.
func (g *GeometryData) Primitive(name string) (*Primitive, bool) {
	for i := range g.Geometry {
		if g.Geometry[i].Name == name {
			return &g.Geometry[i], true
		}
	}
	return nil, false
}

func (g GeometryData) MarshalJSON() ([]byte, error) {
	return g.encode(keyGeometry)
}

func (g GeometryData) encode(geometryKey string) ([]byte, error) {
	materials, geometry := g.Materials, g.Geometry
	if materials == nil {
		materials = []Material{}
	}
	if geometry == nil {
		geometry = []Primitive{}
	}
	obj := object{}
	if err := obj.put(keyMaterials, materials); err != nil {
		return nil, err
	}
	if err := obj.put(geometryKey, geometry); err != nil {
		return nil, err
	}
	return obj.encode()
}

func (g *GeometryData) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return schemaViolation(EntityScene, "", keyGeometryData, err.Error())
	}

	materials, err := decodeArray(obj[keyMaterials])
	if err != nil {
		return schemaViolation(EntityScene, "", keyMaterials, err.Error())
	}
	geometryRaw, ok := obj[keyGeometry]
	if !ok {
		geometryRaw = obj[keyPrimitives]
	}
	geometry, err := decodeArray(geometryRaw)
	if err != nil {
		return schemaViolation(EntityScene, "", keyGeometry, err.Error())
	}

	// Collect every broken entry instead of stopping at the first one.
	var violations []Violation
	decoded := GeometryData{
		Materials: make([]Material, 0, len(materials)),
		Geometry:  make([]Primitive, 0, len(geometry)),
	}
	for _, raw := range materials {
		var m Material
		if err := m.UnmarshalJSON(raw); err != nil {
			violations = append(violations, asSchemaError(err).Violations...)
			continue
		}
		decoded.Materials = append(decoded.Materials, m)
	}
	for _, raw := range geometry {
		var p Primitive
		if err := p.UnmarshalJSON(raw); err != nil {
			violations = append(violations, asSchemaError(err).Violations...)
			continue
		}
		decoded.Geometry = append(decoded.Geometry, p)
	}
	if len(violations) > 0 {
		return &SchemaError{Violations: violations}
	}
	*g = decoded
	return nil
}

func (s *Scene) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return schemaViolation(EntityScene, "", "", err.Error())
	}

	var decoded Scene
	if raw, ok := obj[keyIterable]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &decoded.Iterable); err != nil {
			return schemaViolation(EntityScene, "", keyIterable, err.Error())
		}
	}
	if raw, ok := obj[keyExpiresIn]; ok && !isNull(raw) {
		var l Lifetime
		if err := l.UnmarshalJSON(raw); err != nil {
			return schemaViolation(EntityScene, "", keyExpiresIn, err.Error())
		}
		decoded.ExpiresIn = &l
	}
	raw, ok := obj[keyGeometryData]
	if !ok {
		return schemaViolation(EntityScene, "", keyGeometryData, errMissingField.Error())
	}
	if err := decoded.GeometryData.UnmarshalJSON(raw); err != nil {
		return err
	}
	*s = decoded
	return nil
}

// Serialize encodes the scene as JSON. The output is byte-identical for identical scenes.
func Serialize(s *Scene) ([]byte, error) {
	if s == nil {
		return nil, ErrNilScene
	}
	return json.Marshal(s)
}

// SerializeLegacy encodes only the geometry data of a scene, using the deprecated `primitives` key
// expected by the event document clients.
func SerializeLegacy(s *Scene) ([]byte, error) {
	if s == nil {
		return nil, ErrNilScene
	}
	return s.GeometryData.encode(keyPrimitives)
}

// Parse decodes a scene document. Any malformed input is reported as a *SchemaError.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, asSchemaError(err)
	}
	return &s, nil
}
