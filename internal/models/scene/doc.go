// Package scene contains the scene document model served to the viewer.
// A Scene is a set of named materials and a set of named geometric primitives referencing those materials,
// plus the collection hints (iterable, expiresIn) the viewer uses to decide how to browse the data.
// Materials and primitives are tagged unions keyed by their `_type`; each known tag has a typed payload,
// and keys the payload does not cover are kept in an open Extra map so new renderer types pass through unchanged.
//
// Typed numeric parameters are float64 and are re-encoded in their shortest form, so a `linewidth` of 1.0 is
// served as 1. Extra values keep their textual form, so an unknown key of 1.0 is served as 1.0.
//
// Scenes are built from a Source (fixtures, files, or the MongoDB scene store), validated, and serialized
// to deterministic JSON. Nothing here keeps state between calls; every Load produces a fresh value.
package scene
