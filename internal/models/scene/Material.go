// This file contains the Material tagged union. The `_type` tag selects a typed parameter payload;
// renderer-specific keys outside the payload are retained in Extra. Unknown tags keep every key in Extra.

package scene

import (
	json "github.com/goccy/go-json"
)

// MaterialType is the renderer tag of a material.
type MaterialType string

// Material tags understood by the viewer.
const (
	MaterialMeshBasic          MaterialType = "MeshBasicMaterial"
	MaterialLineDashed         MaterialType = "LineDashedMaterial"
	MaterialLineBasic          MaterialType = "LineBasicMaterial"
	MaterialColoredLineShader  MaterialType = "ColoredLineShaderMaterial"
	MaterialPointMarkersShader MaterialType = "PointMarkersShaderMaterial"
)

// MaterialParams is the typed payload of a known material tag.
type MaterialParams interface {
	MaterialType() MaterialType
}

// Material is a named appearance definition referenced by primitives.
type Material struct {
	Name   string
	Type   MaterialType
	Params MaterialParams
	Extra  map[string]any
}

// MeshBasic parametrizes MeshBasicMaterial.
type MeshBasic struct {
	Color       *Color   `json:"color,omitempty" validate:"omitempty,unitcolor"`
	Opacity     *float64 `json:"opacity,omitempty" validate:"omitempty,gte=0,lte=1"`
	Transparent *bool    `json:"transparent,omitempty"`
	Wireframe   *bool    `json:"wireframe,omitempty"`
}

// LineDashed parametrizes LineDashedMaterial.
type LineDashed struct {
	Color     *Color   `json:"color,omitempty" validate:"omitempty,unitcolor"`
	Linewidth *float64 `json:"linewidth,omitempty" validate:"omitempty,gte=0"`
	Scale     *float64 `json:"scale,omitempty"`
	DashSize  *float64 `json:"dashSize,omitempty" validate:"omitempty,gte=0"`
	GapSize   *float64 `json:"gapSize,omitempty" validate:"omitempty,gte=0"`
}

// LineBasic parametrizes LineBasicMaterial.
type LineBasic struct {
	Color        *Color   `json:"color,omitempty" validate:"omitempty,unitcolor"`
	Linewidth    *float64 `json:"linewidth,omitempty" validate:"omitempty,gte=0"`
	VertexColors *bool    `json:"vertexColors,omitempty"`
}

// ColoredLineShader is the shader material for colored line segments. It has no typed parameters yet.
type ColoredLineShader struct{}

// PointMarkersShader parametrizes the point marker shader.
type PointMarkersShader struct {
	Shape string   `json:"shape,omitempty"`
	Flags *int     `json:"flags,omitempty" validate:"omitempty,gte=0"`
	Size  *float64 `json:"size,omitempty" validate:"omitempty,gte=0"`
}

func (*MeshBasic) MaterialType() MaterialType          { return MaterialMeshBasic }
func (*LineDashed) MaterialType() MaterialType         { return MaterialLineDashed }
func (*LineBasic) MaterialType() MaterialType          { return MaterialLineBasic }
func (*ColoredLineShader) MaterialType() MaterialType  { return MaterialColoredLineShader }
func (*PointMarkersShader) MaterialType() MaterialType { return MaterialPointMarkersShader }

// newMaterialParams returns an empty payload for known tags and nil otherwise.
func newMaterialParams(t MaterialType) MaterialParams {
	switch t {
	case MaterialMeshBasic:
		return &MeshBasic{}
	case MaterialLineDashed:
		return &LineDashed{}
	case MaterialLineBasic:
		return &LineBasic{}
	case MaterialColoredLineShader:
		return &ColoredLineShader{}
	case MaterialPointMarkersShader:
		return &PointMarkersShader{}
	default:
		return nil
	}
}

// NewMaterial builds a material whose tag is taken from its payload.
func NewMaterial(name string, params MaterialParams) Material {
	return Material{Name: name, Type: params.MaterialType(), Params: params}
}

func (m Material) MarshalJSON() ([]byte, error) {
	obj := object{}
	if err := obj.put(keyName, m.Name); err != nil {
		return nil, err
	}
	if err := obj.put(keyType, m.Type); err != nil {
		return nil, err
	}
	if m.Params != nil {
		if err := obj.merge(m.Params); err != nil {
			return nil, err
		}
	}
	if err := obj.mergeExtra(m.Extra); err != nil {
		return nil, err
	}
	return obj.encode()
}

func (m *Material) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return schemaViolation(EntityMaterial, "", "", err.Error())
	}

	var decoded Material
	if decoded.Name, err = obj.optionalString(keyName); err != nil {
		return schemaViolation(EntityMaterial, "", keyName, err.Error())
	}
	typ, err := obj.optionalString(keyType)
	if err != nil {
		return schemaViolation(EntityMaterial, decoded.Name, keyType, err.Error())
	}
	decoded.Type = MaterialType(typ)

	claimed := claim(keyName, keyType)
	if params := newMaterialParams(decoded.Type); params != nil {
		keys := jsonKeys(params)
		payload, err := obj.subset(keys)
		if err != nil {
			return schemaViolation(EntityMaterial, decoded.Name, "", err.Error())
		}
		if err := json.Unmarshal(payload, params); err != nil {
			return schemaViolation(EntityMaterial, decoded.Name, "", err.Error())
		}
		for _, k := range keys {
			claimed[k] = true
		}
		decoded.Params = params
	}

	if decoded.Extra, err = obj.extra(claimed); err != nil {
		return schemaViolation(EntityMaterial, decoded.Name, "", err.Error())
	}
	*m = decoded
	return nil
}
