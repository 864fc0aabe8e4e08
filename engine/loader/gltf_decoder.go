package loader

import (
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/Carmen-Shannon/oxy-gltf/common"
)

// Layout selects how accessor data is addressed inside the binary payload.
type Layout int

const (
	// LayoutSpec addresses elements at bufferView.byteOffset + accessor.byteOffset and honors
	// byteStride (accessor first, then buffer view).
	LayoutSpec Layout = iota
	// LayoutLegacy reads tightly packed elements from accessor.byteOffset, ignoring buffer views
	// and any declared stride.
	LayoutLegacy
)

func (l Layout) String() string {
	switch l {
	case LayoutLegacy:
		return "legacy"
	default:
		return "spec"
	}
}

// TypedValue is one decoded component tagged with its source representation.
// The raw little-endian bits are kept zero-extended to 32 bits.
type TypedValue struct {
	Type ComponentType
	bits uint32
}

// Bits returns the raw component bits.
func (v TypedValue) Bits() uint32 { return v.bits }

func (v TypedValue) Int8() int8       { return int8(uint8(v.bits)) }
func (v TypedValue) Uint8() uint8     { return uint8(v.bits) }
func (v TypedValue) Int16() int16     { return int16(uint16(v.bits)) }
func (v TypedValue) Uint16() uint16   { return uint16(v.bits) }
func (v TypedValue) Uint32() uint32   { return v.bits }
func (v TypedValue) Float32() float32 { return math.Float32frombits(v.bits) }

// Cast converts v into T following the conversion table in common/math.go.
// A value with an unrecognized Type converts to 0.
//
// Parameters:
//   - v: the decoded component
//
// Returns:
//   - T: the converted value
func Cast[T common.Number](v TypedValue) T {
	switch v.Type {
	case ComponentTypeSignedByte:
		return common.FromInt[T](int64(v.Int8()))
	case ComponentTypeUnsignedByte:
		return common.FromUint[T](uint64(v.Uint8()))
	case ComponentTypeSignedShort:
		return common.FromInt[T](int64(v.Int16()))
	case ComponentTypeUnsignedShort:
		return common.FromUint[T](uint64(v.Uint16()))
	case ComponentTypeUnsignedInt:
		return common.FromUint[T](uint64(v.Uint32()))
	case ComponentTypeFloat:
		return common.FromFloat[T](float64(v.Float32()))
	default:
		return 0
	}
}

// DecodeAccessor reads acc.Count elements of acc.Components values each from segment.
// The full read span is bounds-checked before any byte is touched.
//
// Parameters:
//   - acc: the resolved accessor
//   - segment: the binary payload
//   - layout: the addressing mode
//
// Returns:
//   - []TypedValue: Count*Components values in element order
//   - error: KindBufferBoundsExceeded, KindInvalidAccessorField, or KindUnsupportedComponentType
//     for an unrecognized component type (with a nil slice)
func DecodeAccessor(acc Accessor, segment []byte, layout Layout) ([]TypedValue, error) {
	size := acc.ComponentType.Size()
	if size == 0 {
		e := accessorError(KindUnsupportedComponentType, acc.Index, "componentType")
		return nil, e.withDetail("code %d", int(acc.ComponentType))
	}
	if err := checkAccessorFields(acc); err != nil {
		return nil, err
	}

	// Offsets are non-negative ints, so their sum cannot overflow uint64.
	elem := uint64(acc.Components * size)
	base, stride := uint64(acc.ByteOffset), elem
	if layout == LayoutSpec {
		base += uint64(acc.ViewOffset)
		if s := common.Coalesce(acc.ByteStride, acc.ViewStride); s > 0 {
			stride = uint64(s)
		}
		if stride < elem {
			e := accessorError(KindInvalidAccessorField, acc.Index, "byteStride")
			return nil, e.withDetail("stride %d is smaller than element size %d", stride, elem)
		}
	}

	count := uint64(acc.Count)
	limit := uint64(len(segment))
	if base > limit || (count > 0 && !spanFits(count, stride, elem, limit-base)) {
		return nil, boundsError(acc.Index, saturate(base), requestedLength(count, stride, elem), len(segment))
	}
	if count == 0 {
		return []TypedValue{}, nil
	}

	values := make([]TypedValue, 0, acc.Count*acc.Components)
	for i := uint64(0); i < count; i++ {
		off := int(base + i*stride)
		for c := 0; c < acc.Components; c++ {
			values = append(values, TypedValue{Type: acc.ComponentType, bits: readComponent(segment, off+c*size, size)})
		}
	}

	return values, nil
}

// checkAccessorFields rejects hand-built accessors that ResolveAccessor would never produce.
func checkAccessorFields(acc Accessor) error {
	if acc.Components <= 0 || acc.Components > gltfMaxComponents {
		return accessorError(KindInvalidAccessorField, acc.Index, "type").withDetail("%d components per element", acc.Components)
	}
	fields := []struct {
		field string
		v     int
	}{
		{"byteOffset", acc.ByteOffset},
		{"byteStride", acc.ByteStride},
		{"count", acc.Count},
		{"bufferView", acc.ViewOffset},
		{"bufferView", acc.ViewStride},
	}
	for _, f := range fields {
		if f.v < 0 {
			return accessorError(KindInvalidAccessorField, acc.Index, f.field).withDetail("negative value %d", f.v)
		}
	}
	return nil
}

// spanFits reports whether (count-1)*stride + elem <= avail without overflowing. count and stride are positive.
func spanFits(count, stride, elem, avail uint64) bool {
	if elem > avail {
		return false
	}
	return count-1 <= (avail-elem)/stride
}

// requestedLength reports the read span for an error message, saturating instead of overflowing.
func requestedLength(count, stride, elem uint64) int {
	if count == 0 {
		return 0
	}
	hi, lo := bits.Mul64(count-1, stride)
	lo, carry := bits.Add64(lo, elem, 0)
	if hi != 0 || carry != 0 {
		return math.MaxInt
	}
	return saturate(lo)
}

func saturate(v uint64) int {
	if v > math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}

// readComponent reads one little-endian component of the given width. The caller has bounds-checked off.
func readComponent(segment []byte, off, size int) uint32 {
	switch size {
	case 1:
		return uint32(segment[off])
	case 2:
		return uint32(binary.LittleEndian.Uint16(segment[off:]))
	default:
		return binary.LittleEndian.Uint32(segment[off:])
	}
}
