// This file contains the validator for scene documents.
//
// Shape constraints of the typed payloads (non-negative sizes, minimum point counts, color ranges) are declared
// as struct tags and checked by go-playground/validator; cross-entity rules (unique names, material references)
// are checked here directly.

package scene

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Initialize the custom validator
func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Colors are validated as whichever convention they hold. An unset color maps to nil, which fails every
	// tag except omitempty.
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		c := v.Interface().(Color)
		if !c.IsSet() {
			return nil
		}
		if rgb, ok := c.Triple(); ok {
			return rgb
		}
		packed, _ := c.Packed()
		return packed
	}, Color{})
	validate.RegisterValidation("unitcolor", validateColor)
}

// validateColor accepts packed values up to 0xffffff and triples with every component in [0, 1].
func validateColor(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Array:
		for i := 0; i < field.Len(); i++ {
			if c := field.Index(i).Float(); c < 0 || c > 1 {
				return false
			}
		}
		return true
	case reflect.Uint32:
		return field.Uint() <= MaxPackedColor
	default:
		return false
	}
}

// Validate reports every schema violation of the scene. It never fails; an empty result means the scene is valid.
func Validate(s *Scene) []Violation {
	if s == nil {
		return []Violation{{Entity: EntityScene, Message: "scene is nil"}}
	}

	var violations []Violation
	if s.ExpiresIn != nil && *s.ExpiresIn < 0 {
		violations = append(violations, Violation{Entity: EntityScene, Field: keyExpiresIn, Message: errNegativeLifetime.Error()})
	}
	materials := make(map[string]bool, len(s.GeometryData.Materials))
	for _, m := range s.GeometryData.Materials {
		violations = append(violations, validateMaterial(m, materials)...)
	}
	primitives := make(map[string]bool, len(s.GeometryData.Geometry))
	for _, p := range s.GeometryData.Geometry {
		violations = append(violations, validatePrimitive(p, primitives, materials)...)
	}
	return violations
}

func validateMaterial(m Material, seen map[string]bool) []Violation {
	var violations []Violation
	add := func(field, msg string) {
		violations = append(violations, Violation{Entity: EntityMaterial, Name: m.Name, Field: field, Message: msg})
	}

	switch {
	case m.Name == "":
		add(keyName, "is required")
	case seen[m.Name]:
		add(keyName, "is not unique")
	default:
		seen[m.Name] = true
	}
	if m.Type == "" {
		add(keyType, "is required")
	}
	if m.Params != nil {
		if m.Type != m.Params.MaterialType() {
			add(keyType, fmt.Sprintf("does not match %s parameters", m.Params.MaterialType()))
		}
		for _, v := range structViolations(m.Params) {
			add(v[0], v[1])
		}
	}
	return violations
}

func validatePrimitive(p Primitive, seen, materials map[string]bool) []Violation {
	var violations []Violation
	add := func(field, msg string) {
		violations = append(violations, Violation{Entity: EntityPrimitive, Name: p.Name, Field: field, Message: msg})
	}

	switch {
	case p.Name == "":
		add(keyName, "is required")
	case seen[p.Name]:
		add(keyName, "is not unique")
	default:
		seen[p.Name] = true
	}
	if p.Type == "" {
		add(keyType, "is required")
	}
	if p.Material != "" && !materials[p.Material] {
		add(keyMaterial, fmt.Sprintf("references unknown material %q", p.Material))
	}
	if p.Shape != nil {
		if p.Type != p.Shape.PrimitiveType() {
			add(keyType, fmt.Sprintf("does not match %s shape", p.Shape.PrimitiveType()))
		}
		for _, v := range structViolations(p.Shape) {
			add(v[0], v[1])
		}
	}
	return violations
}

// structViolations runs the tag validator over a payload and returns (field, message) pairs.
func structViolations(payload interface{}) [][2]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return [][2]string{{"", err.Error()}}
	}
	out := make([][2]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, [2]string{fieldPath(fe), describe(fe)})
	}
	return out
}

// fieldPath drops the struct name from the namespace, "BoxGeometry.sizes[2]" -> "sizes[2]".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

func describe(fe validator.FieldError) string {
	if fe.Kind() == reflect.Invalid {
		return "is required"
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("needs at least %s entries", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "unitcolor":
		return "color is out of range"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// Check returns a *SchemaError carrying every violation, or nil for a valid scene.
func Check(s *Scene) error {
	if violations := Validate(s); len(violations) > 0 {
		return &SchemaError{Violations: violations}
	}
	return nil
}
