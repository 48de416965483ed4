// This file contains the JSON plumbing shared by materials and primitives.
// Documents are decoded into an object of raw values first, so that a variant can claim the keys it knows
// and leave the rest for the Extra map. Encoding goes through the same object and is emitted with sorted keys,
// which keeps Serialize byte-stable for identical input.

package scene

import (
	"bytes"
	"errors"
	"reflect"
	"strings"

	json "github.com/goccy/go-json"
)

// Wire keys reserved by the viewer.
const (
	keyName         = "_name"
	keyType         = "_type"
	keyMaterial     = "_material"
	keyTouchable    = "touchable"
	keyTitleOnHover = "titleOnHover"

	keyIterable     = "iterable"
	keyExpiresIn    = "expiresIn"
	keyGeometryData = "geometryData"
	keyMaterials    = "materials"
	keyGeometry     = "geometry"
	// keyPrimitives is the deprecated alias of keyGeometry used by the legacy event document.
	keyPrimitives = "primitives"
)

var errNotObject = errors.New("expected a JSON object")

type object map[string]json.RawMessage

func decodeObject(data []byte) (object, error) {
	var o map[string]json.RawMessage
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	if o == nil {
		return nil, errNotObject
	}
	return object(o), nil
}

// decodeArray splits a JSON array into its raw elements; a missing or null array is empty.
func decodeArray(data json.RawMessage) ([]json.RawMessage, error) {
	if len(data) == 0 || isNull(data) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// optionalString returns the string under key, or "" when the key is absent or null.
func (o object) optionalString(key string) (string, error) {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

func (o object) put(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	o[key] = b
	return nil
}

// putString stores non-empty strings only.
func (o object) putString(key, v string) error {
	if v == "" {
		return nil
	}
	return o.put(key, v)
}

// merge encodes v as an object and copies its keys in.
func (o object) merge(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fields, err := decodeObject(b)
	if err != nil {
		return err
	}
	for k, raw := range fields {
		o[k] = raw
	}
	return nil
}

// mergeExtra copies extra keys that are not already taken by typed fields.
func (o object) mergeExtra(extra map[string]any) error {
	for k, v := range extra {
		if _, taken := o[k]; taken {
			continue
		}
		if err := o.put(k, v); err != nil {
			return err
		}
	}
	return nil
}

// extra decodes every unclaimed key. Numbers are kept as json.Number so their textual form survives.
func (o object) extra(claimed map[string]bool) (map[string]any, error) {
	var extra map[string]any
	for k, raw := range o {
		if claimed[k] {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = v
	}
	return extra, nil
}

// subset encodes the given keys as an object. Keys must match exactly; the JSON decoder matches struct fields
// case-insensitively, so payloads are decoded from a subset rather than from the whole document.
func (o object) subset(keys []string) ([]byte, error) {
	sub := make(object, len(keys))
	for _, k := range keys {
		if raw, ok := o[k]; ok {
			sub[k] = raw
		}
	}
	return sub.encode()
}

func (o object) encode() ([]byte, error) {
	return json.Marshal(map[string]json.RawMessage(o))
}

func claim(keys ...string) map[string]bool {
	claimed := make(map[string]bool, len(keys))
	for _, k := range keys {
		claimed[k] = true
	}
	return claimed
}

// jsonKeys lists the JSON keys of a struct (or pointer to struct) payload.
func jsonKeys(v any) []string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		keys = append(keys, name)
	}
	return keys
}
