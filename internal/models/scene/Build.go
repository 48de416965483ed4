// This file contains Build and the scene sources. A Source supplies a raw scene (from a fixture, a file or a store),
// Build turns it into a validated one. Sources must return a fresh value on every Load.

package scene

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Source supplies scene documents.
type Source interface {
	Load(ctx context.Context) (*Scene, error)
	String() string
}

// FixtureSource serves a scene constructed in code.
type FixtureSource struct {
	Name  string
	Build func() *Scene
}

func (f FixtureSource) Load(ctx context.Context) (*Scene, error) {
	return f.Build(), nil
}

func (f FixtureSource) String() string {
	return "fixture:" + f.Name
}

// Build loads a scene from src and validates it.
// Failures of the source itself are returned as *UpstreamError; malformed or inconsistent data as *SchemaError.
func Build(ctx context.Context, src Source) (*Scene, error) {
	s, err := src.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrSchema) {
			return nil, err
		}
		return nil, &UpstreamError{Source: src.String(), Err: err}
	}
	if err := Check(s); err != nil {
		return nil, err
	}
	return s, nil
}

// FileSource reads a scene document from a JSON or YAML file on every Load.
type FileSource struct {
	Path string
}

func (f FileSource) String() string {
	return "file:" + f.Path
}

func (f FileSource) Load(ctx context.Context) (*Scene, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, f.Path)
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".yaml", ".yml":
		if data, err = yamlToJSON(data); err != nil {
			return nil, schemaViolation(EntityScene, "", "", err.Error())
		}
	}
	return Parse(data)
}

// yamlToJSON re-encodes a YAML document as JSON so it goes through the same decoder as JSON documents.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeYAML(doc))
}

// normalizeYAML turns the map[interface{}]interface{} nodes yaml may produce into JSON-encodable maps.
func normalizeYAML(v interface{}) interface{} {
	switch node := v.(type) {
	case map[string]interface{}:
		for k, child := range node {
			node[k] = normalizeYAML(child)
		}
		return node
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(node))
		for k, child := range node {
			out[fmt.Sprint(k)] = normalizeYAML(child)
		}
		return out
	case []interface{}:
		for i, child := range node {
			node[i] = normalizeYAML(child)
		}
		return node
	default:
		return node
	}
}
