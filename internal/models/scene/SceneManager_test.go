package scene

import (
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// storedDocument turns a served document into the BSON a geometry pipeline would have stored.
func storedDocument(t *testing.T, id string, s *Scene) bson.Raw {
	t.Helper()
	data, err := Serialize(s)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		t.Fatalf("unmarshal ext json: %v", err)
	}
	doc = append(bson.D{{Key: "_id", Value: id}}, doc...)
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal bson: %v", err)
	}
	return raw
}

func TestDecodeStoredShowroom(t *testing.T) {
	s, err := decodeStored(storedDocument(t, "showroom", Showroom()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(s, Showroom()) {
		t.Fatal("expected stored scene to equal the showroom fixture")
	}
}

func TestDecodeStoredDoubleColor(t *testing.T) {
	doc := bson.D{
		{Key: "_id", Value: "doubles"},
		{Key: "iterable", Value: false},
		{Key: "expiresIn", Value: nil},
		{Key: "geometryData", Value: bson.D{
			{Key: "materials", Value: bson.A{
				bson.D{
					{Key: "_name", Value: "det"},
					{Key: "_type", Value: "MeshBasicMaterial"},
					{Key: "color", Value: float64(0xffffaa)},
				},
			}},
			{Key: "geometry", Value: bson.A{}},
		}},
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal bson: %v", err)
	}

	s, err := decodeStored(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	mat, _ := s.GeometryData.Material("det")
	if c, ok := mat.Params.(*MeshBasic).Color.Packed(); !ok || c != 0xffffaa {
		t.Fatalf("expected packed color, got %x", c)
	}
}

func TestDecodeStoredMalformed(t *testing.T) {
	raw, err := bson.Marshal(bson.D{{Key: "_id", Value: "broken"}})
	if err != nil {
		t.Fatalf("marshal bson: %v", err)
	}
	if _, err := decodeStored(raw); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
}
