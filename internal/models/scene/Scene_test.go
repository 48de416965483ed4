package scene

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func buildShowroom(t *testing.T) *Scene {
	t.Helper()
	s, err := Build(context.Background(), FixtureSource{Name: "showroom", Build: Showroom})
	if err != nil {
		t.Fatalf("build showroom: %v", err)
	}
	return s
}

func TestSerializeIsDeterministic(t *testing.T) {
	first, err := Serialize(buildShowroom(t))
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	second, err := Serialize(buildShowroom(t))
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical output\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for name, build := range map[string]func() *Scene{"showroom": Showroom, "legacy": LegacyEvent} {
		t.Run(name, func(t *testing.T) {
			built, err := Build(context.Background(), FixtureSource{Name: name, Build: build})
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			data, err := Serialize(built)
			if err != nil {
				t.Fatalf("serialize: %v", err)
			}
			parsed, err := Parse(data)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !reflect.DeepEqual(parsed, built) {
				t.Fatalf("round trip mismatch\nparsed: %#v\nbuilt:  %#v", parsed, built)
			}
		})
	}
}

func TestSerializeWireShape(t *testing.T) {
	data, err := Serialize(buildShowroom(t))
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	var doc struct {
		Iterable     bool             `json:"iterable"`
		ExpiresIn    *json.RawMessage `json:"expiresIn"`
		GeometryData struct {
			Materials []map[string]interface{} `json:"materials"`
			Geometry  []map[string]interface{} `json:"geometry"`
		} `json:"geometryData"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !doc.Iterable {
		t.Fatal("expected iterable scene")
	}
	if !bytes.Contains(data, []byte(`"expiresIn":null`)) {
		t.Fatalf("expected explicit null expiresIn, got %s", data)
	}

	mat := doc.GeometryData.Materials[0]
	if mat["_name"] != "defaultDetMaterial" || mat["_type"] != "MeshBasicMaterial" {
		t.Fatalf("unexpected first material %v", mat)
	}
	if mat["color"] != float64(0xffffaa) {
		t.Fatalf("expected packed color 0xffffaa, got %v", mat["color"])
	}
	if mat["opacity"] != 0.15 || mat["transparent"] != true {
		t.Fatalf("unexpected material properties %v", mat)
	}

	det1 := doc.GeometryData.Geometry[0]
	if det1["_name"] != "det1" || det1["_material"] != "defaultDetMaterial" {
		t.Fatalf("unexpected first primitive %v", det1)
	}
	if _, ok := det1["touchable"]; ok {
		t.Fatal("expected unset touchable to be omitted")
	}
	if !bytes.Contains(data, []byte(`"sizes":[7.5,17.5,1]`)) {
		t.Fatalf("expected sizes encoded as given, got %s", data)
	}
	if !bytes.Contains(data, []byte(`"points":[[[-10,-10,-10],[0,0,1]]`)) {
		t.Fatalf("expected colored points as [position, color] pairs, got %s", data)
	}
	if !bytes.Contains(data, []byte(`"flags":0`)) {
		t.Fatalf("expected zero flags to be kept, got %s", data)
	}
}

func TestSerializeExpiresIn(t *testing.T) {
	s := Showroom()
	s.ExpiresIn = ExpiresAfter(90 * time.Second)
	data, err := Serialize(s)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !bytes.Contains(data, []byte(`"expiresIn":90`)) {
		t.Fatalf("expected expiresIn in seconds, got %s", data)
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.ExpiresIn == nil || time.Duration(*parsed.ExpiresIn) != 90*time.Second {
		t.Fatalf("expected 90s lifetime, got %v", parsed.ExpiresIn)
	}
}

func TestParseRejectsInvalidExpiresIn(t *testing.T) {
	for _, value := range []string{"-5", "1e12"} {
		doc := `{"expiresIn":` + value + `,"geometryData":{"materials":[],"geometry":[]}}`
		_, err := Parse([]byte(doc))
		var se *SchemaError
		if !errors.As(err, &se) {
			t.Fatalf("%s: expected SchemaError, got %v", value, err)
		}
		if v := se.Violations[0]; v.Entity != EntityScene || v.Field != keyExpiresIn {
			t.Fatalf("%s: expected violation on expiresIn, got %+v", value, v)
		}
	}
}

func TestValidateNegativeExpiresIn(t *testing.T) {
	s := Showroom()
	s.ExpiresIn = ExpiresAfter(-time.Second)

	violations := Validate(s)
	if len(violations) != 1 || violations[0].Field != keyExpiresIn {
		t.Fatalf("expected one expiresIn violation, got %+v", violations)
	}
}

func TestSerializeNil(t *testing.T) {
	if _, err := Serialize(nil); !errors.Is(err, ErrNilScene) {
		t.Fatalf("expected ErrNilScene, got %v", err)
	}
}

func TestSerializeLegacyUsesPrimitives(t *testing.T) {
	data, err := SerializeLegacy(LegacyEvent())
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := doc["primitives"]; !ok {
		t.Fatalf("expected primitives key, got %s", data)
	}
	if _, ok := doc["geometry"]; ok {
		t.Fatalf("did not expect geometry key, got %s", data)
	}
}

func TestParseAcceptsPrimitivesAlias(t *testing.T) {
	legacy, err := SerializeLegacy(LegacyEvent())
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	doc := []byte(`{"iterable":false,"expiresIn":null,"geometryData":` + string(legacy) + `}`)

	parsed, err := Parse(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed.GeometryData.Geometry) != 4 {
		t.Fatalf("expected 4 primitives, got %d", len(parsed.GeometryData.Geometry))
	}
	if _, ok := parsed.GeometryData.Primitive("referenceTrack"); !ok {
		t.Fatal("expected referenceTrack primitive")
	}
}

func TestParseVectorArityNamesPrimitive(t *testing.T) {
	doc := `{"iterable":true,"geometryData":{"materials":[],"geometry":[
		{"_name":"det1","_type":"BoxGeometry","position":[0,0],"sizes":[1,1,1],"rotation":[0,0,0]}
	]}}`

	_, err := Parse([]byte(doc))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	v := se.Violations[0]
	if v.Entity != EntityPrimitive || v.Name != "det1" {
		t.Fatalf("expected violation on primitive det1, got %+v", v)
	}
	if !strings.Contains(v.Message, "3 components") {
		t.Fatalf("expected arity message, got %q", v.Message)
	}
}

func TestParseMissingShapeField(t *testing.T) {
	doc := `{"geometryData":{"geometry":[{"_name":"track","_type":"Line"}]}}`

	_, err := Parse([]byte(doc))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if v := se.Violations[0]; v.Name != "track" || v.Field != "points" {
		t.Fatalf("expected missing points on track, got %+v", v)
	}
}

func TestParseCollectsEveryBrokenEntry(t *testing.T) {
	doc := `{"geometryData":{"materials":[{"_name":"m","_type":"MeshBasicMaterial","color":"red"}],
		"geometry":[{"_name":"a","_type":"Line","points":[[1,2]]},{"_name":"b","_type":"Line","points":[[1,2,3],[4,5,6]]}]}}`

	_, err := Parse([]byte(doc))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(se.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %+v", se.Violations)
	}
	if se.Violations[0].Name != "m" || se.Violations[1].Name != "a" {
		t.Fatalf("unexpected violations %+v", se.Violations)
	}
}

func TestParseRejectsNonObjects(t *testing.T) {
	for _, doc := range []string{`[]`, `null`, `"scene"`, `{"iterable":true}`, `{`} {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrSchema) {
			t.Fatalf("%s: expected schema error, got %v", doc, err)
		}
	}
}

func TestUnknownTypesPassThrough(t *testing.T) {
	doc := `{"iterable":false,"expiresIn":null,"geometryData":{
		"materials":[
			{"_name":"sprites","_type":"SpriteMaterial","map":"dot.png","size":0.25,"sizeAttenuation":false},
			{"_name":"det","_type":"MeshBasicMaterial","color":255,"side":2}
		],
		"geometry":[
			{"_name":"cloud","_type":"Sprites","_material":"sprites","anchors":[[1,2,3]],"titleOnHover":"cloud"}
		]}}`

	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if violations := Validate(s); len(violations) != 0 {
		t.Fatalf("expected unknown types to validate, got %+v", violations)
	}

	sprites, _ := s.GeometryData.Material("sprites")
	if sprites.Params != nil {
		t.Fatalf("expected no typed params for unknown tag, got %#v", sprites.Params)
	}
	if sprites.Extra["map"] != "dot.png" || sprites.Extra["size"] != json.Number("0.25") {
		t.Fatalf("unexpected extras %v", sprites.Extra)
	}

	det, _ := s.GeometryData.Material("det")
	if _, ok := det.Params.(*MeshBasic); !ok {
		t.Fatalf("expected MeshBasic params, got %T", det.Params)
	}
	if det.Extra["side"] != json.Number("2") {
		t.Fatalf("expected side kept in extras, got %v", det.Extra)
	}

	cloud, _ := s.GeometryData.Primitive("cloud")
	if cloud.Shape != nil || cloud.TitleOnHover != "cloud" {
		t.Fatalf("unexpected primitive %#v", cloud)
	}

	out, err := Serialize(s)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	for _, want := range []string{`"size":0.25`, `"sizeAttenuation":false`, `"side":2`, `"anchors":[[1,2,3]]`, `"_type":"Sprites"`} {
		if !bytes.Contains(out, []byte(want)) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestCaseVariantKeysStayExtra(t *testing.T) {
	doc := `{"geometryData":{
		"materials":[{"_name":"m","_type":"MeshBasicMaterial","Opacity":0.3}],
		"geometry":[{"_name":"box","_type":"BoxGeometry","position":[0,0,0],"sizes":[1,1,1],"Sizes":[9,9,9],"rotation":[0,0,0]}]
	}}`

	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, _ := s.GeometryData.Material("m")
	if m.Params.(*MeshBasic).Opacity != nil || m.Extra["Opacity"] != json.Number("0.3") {
		t.Fatalf("expected Opacity kept only in extras, got %#v %v", m.Params, m.Extra)
	}
	box, _ := s.GeometryData.Primitive("box")
	if got := box.Shape.(*BoxGeometry).Sizes; got != (Vec3{1, 1, 1}) {
		t.Fatalf("expected sizes from the exact key, got %v", got)
	}

	out, err := Serialize(s)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if bytes.Contains(out, []byte(`"opacity"`)) {
		t.Fatalf("did not expect an opacity key, got %s", out)
	}
	for _, want := range []string{`"Opacity":0.3`, `"sizes":[1,1,1]`, `"Sizes":[9,9,9]`} {
		if !bytes.Contains(out, []byte(want)) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestTypedNumbersUseShortestForm(t *testing.T) {
	doc := `{"geometryData":{"materials":[{"_name":"m","_type":"LineBasicMaterial","linewidth":1.0,"side":1.0}],"geometry":[]}}`

	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := Serialize(s)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !bytes.Contains(out, []byte(`"linewidth":1,`)) || !bytes.Contains(out, []byte(`"side":1.0`)) {
		t.Fatalf("expected typed number re-encoded and extra kept verbatim, got %s", out)
	}
}

func TestExtraDoesNotOverrideTypedFields(t *testing.T) {
	m := NewMaterial("det", &MeshBasic{Opacity: Ptr(0.5)})
	m.Extra = map[string]interface{}{"opacity": 0.9, "_name": "other"}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Contains(data, []byte(`"opacity":0.5`)) || !bytes.Contains(data, []byte(`"_name":"det"`)) {
		t.Fatalf("expected typed fields to win, got %s", data)
	}
}

func TestColorConventions(t *testing.T) {
	var packed Color
	if err := packed.UnmarshalJSON([]byte("16777130")); err != nil {
		t.Fatalf("unmarshal packed: %v", err)
	}
	if v, ok := packed.Packed(); !ok || v != 0xffffaa {
		t.Fatalf("expected packed 0xffffaa, got %v %v", v, ok)
	}

	var fromDouble Color
	if err := fromDouble.UnmarshalJSON([]byte("1.677713e+07")); err != nil {
		t.Fatalf("unmarshal integral double: %v", err)
	}
	if fromDouble != packed {
		t.Fatalf("expected %v, got %v", packed, fromDouble)
	}

	var triple Color
	if err := triple.UnmarshalJSON([]byte("[0.3, 0.4, 0.5]")); err != nil {
		t.Fatalf("unmarshal triple: %v", err)
	}
	if rgb, ok := triple.Triple(); !ok || rgb != (Vec3{0.3, 0.4, 0.5}) {
		t.Fatalf("expected triple, got %v %v", rgb, ok)
	}
	if out, _ := triple.MarshalJSON(); string(out) != "[0.3,0.4,0.5]" {
		t.Fatalf("unexpected triple encoding %s", out)
	}

	var unset Color
	if out, _ := unset.MarshalJSON(); string(out) != "null" || unset.IsSet() {
		t.Fatalf("expected unset color, got %s", out)
	}

	if err := new(Color).UnmarshalJSON([]byte("1.5")); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
	if err := new(Color).UnmarshalJSON([]byte("[0.1, 0.2]")); !errors.Is(err, ErrVectorArity) {
		t.Fatalf("expected ErrVectorArity, got %v", err)
	}
}
