package loader

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/Carmen-Shannon/oxy-gltf/common"
)

func castAll[T common.Number](values []TypedValue) []T {
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = Cast[T](v)
	}
	return out
}

func TestDecodeAccessorFloatVec3(t *testing.T) {
	acc := Accessor{ComponentType: ComponentTypeFloat, Shape: ShapeVec3, Components: 3, Count: 2}
	segment := f32Bytes(1, 2, 3, 4, 5, 6)

	values, err := DecodeAccessor(acc, segment, LayoutSpec)
	if err != nil {
		t.Fatalf("DecodeAccessor: %v", err)
	}
	if got, want := castAll[float32](values), []float32{1, 2, 3, 4, 5, 6}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := castAll[float64](values), []float64{1, 2, 3, 4, 5, 6}; !slices.Equal(got, want) {
		t.Errorf("float64 cast: got %v, want %v", got, want)
	}
}

func TestDecodeAccessorUnsignedShortScalar(t *testing.T) {
	acc := Accessor{ComponentType: ComponentTypeUnsignedShort, Shape: ShapeScalar, Components: 1, Count: 3}

	values, err := DecodeAccessor(acc, u16Bytes(0, 1, 2), LayoutSpec)
	if err != nil {
		t.Fatalf("DecodeAccessor: %v", err)
	}
	if got, want := castAll[uint32](values), []uint32{0, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeAccessorComponentWidths(t *testing.T) {
	tests := []struct {
		name    string
		ct      ComponentType
		segment []byte
		want    []int
	}{
		{"signed byte", ComponentTypeSignedByte, []byte{0x7F, 0x80, 0xFF}, []int{127, -128, -1}},
		{"unsigned byte", ComponentTypeUnsignedByte, []byte{0x7F, 0x80, 0xFF}, []int{127, 128, 255}},
		{"signed short", ComponentTypeSignedShort, u16Bytes(1, 0x8000, 0xFFFF), []int{1, -32768, -1}},
		{"unsigned short", ComponentTypeUnsignedShort, u16Bytes(1, 0x8000, 0xFFFF), []int{1, 32768, 65535}},
		{"unsigned int", ComponentTypeUnsignedInt, u32Bytes(1, 1<<31, 7), []int{1, 1 << 31, 7}},
		{"float", ComponentTypeFloat, f32Bytes(1.9, -2.9, 0), []int{1, -2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := Accessor{ComponentType: tt.ct, Shape: ShapeScalar, Components: 1, Count: 3}
			values, err := DecodeAccessor(acc, tt.segment, LayoutSpec)
			if err != nil {
				t.Fatalf("DecodeAccessor: %v", err)
			}
			if got := castAll[int](values); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeAccessorBounds(t *testing.T) {
	tests := []struct {
		name string
		acc  Accessor
		seg  int
	}{
		{"one element short", Accessor{ComponentType: ComponentTypeFloat, Components: 3, Count: 2}, 20},
		{"offset past end", Accessor{ComponentType: ComponentTypeUnsignedByte, Components: 1, Count: 1, ByteOffset: 9}, 8},
		{"view offset past end", Accessor{ComponentType: ComponentTypeUnsignedByte, Components: 1, Count: 1, ViewOffset: 8}, 8},
		{"empty accessor past end", Accessor{ComponentType: ComponentTypeUnsignedByte, Components: 1, ByteOffset: 9}, 8},
		{"huge count", Accessor{ComponentType: ComponentTypeFloat, Components: 16, Count: math.MaxInt / 2}, 64},
		{"huge stride", Accessor{ComponentType: ComponentTypeFloat, Components: 1, Count: 2, ByteStride: math.MaxInt}, 64},
		{"offset sum past int range", Accessor{ComponentType: ComponentTypeFloat, Components: 3, Count: 1, ByteOffset: math.MaxInt, ViewOffset: 100}, 64},
		{"both offsets at int max", Accessor{ComponentType: ComponentTypeUnsignedByte, Components: 1, Count: 1, ByteOffset: math.MaxInt, ViewOffset: math.MaxInt}, 8},
		{"view offset at int max", Accessor{ComponentType: ComponentTypeUnsignedByte, Components: 1, Count: 1, ViewOffset: math.MaxInt}, 8},
		{"count and stride at int max", Accessor{ComponentType: ComponentTypeUnsignedInt, Components: 4, Count: math.MaxInt, ByteStride: math.MaxInt}, 64},
		{"count at int max", Accessor{ComponentType: ComponentTypeFloat, Components: 16, Count: math.MaxInt}, 64},
		{"count at int max with offset", Accessor{ComponentType: ComponentTypeUnsignedByte, Components: 1, Count: math.MaxInt, ByteOffset: math.MaxInt - 1}, 8},
		{"view stride at int max", Accessor{ComponentType: ComponentTypeUnsignedShort, Components: 2, Count: 3, ViewStride: math.MaxInt, ViewOffset: 4}, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAccessor(tt.acc, make([]byte, tt.seg), LayoutSpec)
			var le *Error
			if !errors.As(err, &le) || le.Kind != KindBufferBoundsExceeded {
				t.Fatalf("expected bounds error, got %v", err)
			}
			if le.SegmentLength != tt.seg {
				t.Errorf("segment length = %d, want %d", le.SegmentLength, tt.seg)
			}
		})
	}
}

func TestDecodeAccessorExactFit(t *testing.T) {
	acc := Accessor{ComponentType: ComponentTypeUnsignedByte, Components: 2, Count: 2, ByteOffset: 1}
	values, err := DecodeAccessor(acc, []byte{0, 1, 2, 3, 4}, LayoutSpec)
	if err != nil {
		t.Fatalf("DecodeAccessor: %v", err)
	}
	if got, want := castAll[uint8](values), []uint8{1, 2, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeAccessorEmpty(t *testing.T) {
	acc := Accessor{ComponentType: ComponentTypeFloat, Components: 3}
	values, err := DecodeAccessor(acc, nil, LayoutSpec)
	if err != nil {
		t.Fatalf("DecodeAccessor: %v", err)
	}
	if values == nil || len(values) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", values)
	}
}

func TestDecodeAccessorStride(t *testing.T) {
	// Two interleaved VEC2 u16 elements with a 4-byte pad after each.
	segment := concat(
		[]byte{0xAA, 0xAA},
		u16Bytes(1, 2), []byte{0, 0, 0, 0},
		u16Bytes(3, 4), []byte{0, 0, 0, 0},
	)
	acc := Accessor{ComponentType: ComponentTypeUnsignedShort, Components: 2, Count: 2, ByteOffset: 0, ViewOffset: 2, ViewStride: 8}

	values, err := DecodeAccessor(acc, segment, LayoutSpec)
	if err != nil {
		t.Fatalf("DecodeAccessor: %v", err)
	}
	if got, want := castAll[uint16](values), []uint16{1, 2, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("view stride: got %v, want %v", got, want)
	}

	acc.ByteStride = 4
	acc.ViewStride = 99
	// Accessor stride wins over the view's.
	values, err = DecodeAccessor(acc, segment, LayoutSpec)
	if err != nil {
		t.Fatalf("DecodeAccessor: %v", err)
	}
	if got, want := castAll[uint16](values), []uint16{1, 2, 0, 0}; !slices.Equal(got, want) {
		t.Errorf("accessor stride: got %v, want %v", got, want)
	}

	acc.ByteStride = 2
	if _, err := DecodeAccessor(acc, segment, LayoutSpec); !errors.Is(err, ErrInvalidAccessorField) {
		t.Errorf("stride below element size: got %v", err)
	}

	// A single element never steps by the stride, so a stride wider than the segment still fits.
	for _, stride := range []int{64, math.MaxInt} {
		single := Accessor{ComponentType: ComponentTypeFloat, Components: 3, Count: 1, ByteStride: stride}
		values, err := DecodeAccessor(single, f32Bytes(1, 2, 3), LayoutSpec)
		if err != nil {
			t.Fatalf("count 1, stride %d: %v", stride, err)
		}
		if got, want := castAll[float32](values), []float32{1, 2, 3}; !slices.Equal(got, want) {
			t.Errorf("count 1, stride %d: got %v, want %v", stride, got, want)
		}
	}

	// Last element ends exactly at the segment end.
	tight := Accessor{ComponentType: ComponentTypeUnsignedByte, Components: 1, Count: 3, ByteStride: 4}
	values, err = DecodeAccessor(tight, []byte{7, 0, 0, 0, 8, 0, 0, 0, 9}, LayoutSpec)
	if err != nil {
		t.Fatalf("tight stride: %v", err)
	}
	if got, want := castAll[uint8](values), []uint8{7, 8, 9}; !slices.Equal(got, want) {
		t.Errorf("tight stride: got %v, want %v", got, want)
	}
}

func TestDecodeAccessorRejectsMalformedFields(t *testing.T) {
	tests := []struct {
		name  string
		acc   Accessor
		field string
	}{
		{"negative offset", Accessor{ComponentType: ComponentTypeFloat, Components: 1, Count: 1, ByteOffset: -1}, "byteOffset"},
		{"negative count", Accessor{ComponentType: ComponentTypeFloat, Components: 1, Count: -1}, "count"},
		{"negative view offset", Accessor{ComponentType: ComponentTypeFloat, Components: 1, Count: 1, ViewOffset: math.MinInt}, "bufferView"},
		{"no components", Accessor{ComponentType: ComponentTypeFloat, Count: 1}, "type"},
		{"too many components", Accessor{ComponentType: ComponentTypeFloat, Components: math.MaxInt, Count: 1}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAccessor(tt.acc, make([]byte, 64), LayoutSpec)
			var le *Error
			if !errors.As(err, &le) || le.Kind != KindInvalidAccessorField || le.Field != tt.field {
				t.Fatalf("got %v, want invalid field %q", err, tt.field)
			}
		})
	}
}

func TestDecodeAccessorLegacyIgnoresViewAndStride(t *testing.T) {
	segment := u16Bytes(1, 2, 3, 4)
	acc := Accessor{ComponentType: ComponentTypeUnsignedShort, Components: 1, Count: 4, ViewOffset: 100, ByteStride: 64}

	values, err := DecodeAccessor(acc, segment, LayoutLegacy)
	if err != nil {
		t.Fatalf("DecodeAccessor: %v", err)
	}
	if got, want := castAll[uint16](values), []uint16{1, 2, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeAccessorUnsupportedComponentType(t *testing.T) {
	acc := Accessor{Index: 4, ComponentType: 5124, Components: 1, Count: 1}
	values, err := DecodeAccessor(acc, make([]byte, 16), LayoutSpec)
	if values != nil {
		t.Errorf("expected nil values, got %v", values)
	}
	var le *Error
	if !errors.As(err, &le) || le.Kind != KindUnsupportedComponentType || le.Fatal() {
		t.Fatalf("expected non-fatal unsupported component type, got %v", err)
	}
	if le.Accessor != 4 {
		t.Errorf("accessor = %d, want 4", le.Accessor)
	}
}

func TestCast(t *testing.T) {
	neg := TypedValue{Type: ComponentTypeSignedByte, bits: 0xFF}
	if got := Cast[uint8](neg); got != 0xFF {
		t.Errorf("int8(-1) -> uint8 = %d, want 255", got)
	}
	if got := Cast[int32](neg); got != -1 {
		t.Errorf("int8(-1) -> int32 = %d, want -1", got)
	}
	if got := Cast[uint16](neg); got != 0xFFFF {
		t.Errorf("int8(-1) -> uint16 = %d, want 65535", got)
	}

	big := TypedValue{Type: ComponentTypeUnsignedInt, bits: 70000}
	if got := Cast[uint16](big); got != 70000%65536 {
		t.Errorf("uint32 -> uint16 = %d, want wrap", got)
	}

	f := func(v float32) TypedValue { return TypedValue{Type: ComponentTypeFloat, bits: math.Float32bits(v)} }
	if got := Cast[int8](f(1000)); got != math.MaxInt8 {
		t.Errorf("1000 -> int8 = %d, want saturate", got)
	}
	if got := Cast[int8](f(-1000)); got != math.MinInt8 {
		t.Errorf("-1000 -> int8 = %d, want saturate", got)
	}
	if got := Cast[uint8](f(-3.5)); got != 0 {
		t.Errorf("-3.5 -> uint8 = %d, want 0", got)
	}
	if got := Cast[uint16](f(1e9)); got != math.MaxUint16 {
		t.Errorf("1e9 -> uint16 = %d, want saturate", got)
	}
	if got := Cast[int](f(float32(math.NaN()))); got != 0 {
		t.Errorf("NaN -> int = %d, want 0", got)
	}
	if got := Cast[int](f(-2.75)); got != -2 {
		t.Errorf("-2.75 -> int = %d, want -2", got)
	}

	if got := Cast[float32](TypedValue{Type: 5124, bits: 1}); got != 0 {
		t.Errorf("unknown type -> %v, want 0", got)
	}
}
