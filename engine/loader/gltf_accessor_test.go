package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveAccessor(t *testing.T) {
	doc := mustParse(t, `{
		"bufferViews": [{"byteOffset": 12, "byteStride": 16}],
		"accessors": [{"bufferView": 0, "byteOffset": 4, "componentType": 5126, "count": 2, "type": "VEC3"}]
	}`)

	acc, err := ResolveAccessor(doc, 0)
	if err != nil {
		t.Fatalf("ResolveAccessor: %v", err)
	}
	want := Accessor{
		Index: 0, BufferView: 0, ByteOffset: 4, ComponentType: ComponentTypeFloat,
		Shape: ShapeVec3, Components: 3, Count: 2, ViewOffset: 12, ViewStride: 16,
	}
	if acc != want {
		t.Errorf("got %+v, want %+v", acc, want)
	}
	if acc.ElementSize() != 12 {
		t.Errorf("ElementSize = %d, want 12", acc.ElementSize())
	}
}

func TestResolveAccessorShapes(t *testing.T) {
	shapes := map[string]int{"SCALAR": 1, "VEC2": 2, "VEC3": 3, "VEC4": 4, "MAT2": 4, "MAT3": 9, "MAT4": 16}
	for shape, components := range shapes {
		doc := mustParse(t, `{"accessors": [{"bufferView": 0, "byteOffset": 0, "componentType": 5121, "count": 1, "type": "`+shape+`"}]}`)
		acc, err := ResolveAccessor(doc, 0)
		if err != nil {
			t.Fatalf("%s: %v", shape, err)
		}
		if acc.Components != components {
			t.Errorf("%s: components = %d, want %d", shape, acc.Components, components)
		}
	}
}

func TestResolveAccessorErrors(t *testing.T) {
	base := map[string]string{
		"bufferView":    `"bufferView": 0`,
		"byteOffset":    `"byteOffset": 0`,
		"componentType": `"componentType": 5126`,
		"count":         `"count": 1`,
		"type":          `"type": "SCALAR"`,
	}
	build := func(skip string, override map[string]string) string {
		var fields []string
		for _, k := range []string{"bufferView", "byteOffset", "componentType", "count", "type"} {
			if k == skip {
				continue
			}
			if v, ok := override[k]; ok {
				fields = append(fields, v)
				continue
			}
			fields = append(fields, base[k])
		}
		for k, v := range override {
			if _, ok := base[k]; !ok {
				fields = append(fields, v)
			}
		}
		return `{"accessors": [{` + strings.Join(fields, ",") + `}]}`
	}

	tests := []struct {
		name  string
		json  string
		index int
		kind  ErrorKind
		field string
	}{
		{"missing bufferView", build("bufferView", nil), 0, KindMissingAccessorField, "bufferView"},
		{"missing byteOffset", build("byteOffset", nil), 0, KindMissingAccessorField, "byteOffset"},
		{"missing componentType", build("componentType", nil), 0, KindMissingAccessorField, "componentType"},
		{"missing count", build("count", nil), 0, KindMissingAccessorField, "count"},
		{"missing type", build("type", nil), 0, KindMissingAccessorField, "type"},
		{"string count", build("", map[string]string{"count": `"count": "3"`}), 0, KindInvalidAccessorField, "count"},
		{"numeric type", build("", map[string]string{"type": `"type": 3`}), 0, KindInvalidAccessorField, "type"},
		{"unknown shape", build("", map[string]string{"type": `"type": "VEC5"`}), 0, KindUnknownElementShape, "type"},
		{"negative count", build("", map[string]string{"count": `"count": -1`}), 0, KindInvalidAccessorField, "count"},
		{"negative stride", build("", map[string]string{"byteStride": `"byteStride": -4`}), 0, KindInvalidAccessorField, "byteStride"},
		{"out of range", build("", nil), 3, KindAccessorOutOfRange, ""},
		{"no accessors", `{}`, 0, KindAccessorOutOfRange, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveAccessor(mustParse(t, tt.json), tt.index)
			var le *Error
			if !errors.As(err, &le) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if le.Kind != tt.kind || le.Field != tt.field || le.Accessor != tt.index {
				t.Errorf("got kind=%q field=%q accessor=%d, want %q %q %d", le.Kind, le.Field, le.Accessor, tt.kind, tt.field, tt.index)
			}
		})
	}
}

func TestResolveAccessorKeepsUnknownComponentType(t *testing.T) {
	doc := mustParse(t, `{"accessors": [{"bufferView": 0, "byteOffset": 0, "componentType": 5124, "count": 1, "type": "SCALAR"}]}`)
	acc, err := ResolveAccessor(doc, 0)
	if err != nil {
		t.Fatalf("ResolveAccessor: %v", err)
	}
	if acc.ComponentType.Valid() || acc.ElementSize() != 0 {
		t.Errorf("component type 5124 should resolve but be invalid, got %+v", acc)
	}
}
