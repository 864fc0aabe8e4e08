package loader

// Accessor describes one typed array stored inside a binary segment.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-accessor
type Accessor struct {
	// Index is the position of this accessor in the document's accessors array.
	Index int

	// Name is the semantic the accessor was resolved for, if any.
	Name string

	// BufferView is the referenced buffer view index.
	BufferView int

	// ByteOffset is the offset of the first element relative to the buffer view.
	ByteOffset int

	// ByteStride is the distance between element starts; 0 means tightly packed.
	ByteStride int

	// ComponentType is the declared component representation. It may be unrecognized.
	ComponentType ComponentType

	// Shape is the element shape name, e.g. "VEC3".
	Shape string

	// Components is the number of components per element, resolved from Shape.
	Components int

	// Count is the number of elements.
	Count int

	// ViewOffset and ViewStride are captured from bufferViews[BufferView] when the document has such a view.
	ViewOffset int
	ViewStride int
}

// ElementSize returns the packed byte width of one element, or 0 for an unrecognized component type.
func (a Accessor) ElementSize() int {
	return a.Components * a.ComponentType.Size()
}

// ResolveAccessor reads accessors[index] into an Accessor.
// bufferView, byteOffset, componentType, count and type are required; byteStride defaults to 0.
//
// Parameters:
//   - doc: the parsed document
//   - index: the accessor index
//
// Returns:
//   - Accessor: the resolved descriptor
//   - error: KindAccessorOutOfRange, KindMissingAccessorField, KindInvalidAccessorField or KindUnknownElementShape
func ResolveAccessor(doc *Document, index int) (Accessor, error) {
	accessors := doc.Get("accessors")
	node := accessors.Index(index)
	if !node.Exists() {
		e := accessorError(KindAccessorOutOfRange, index, "")
		return Accessor{}, e.withDetail("document has %d accessors", accessors.Len())
	}

	acc := Accessor{Index: index}
	var err error

	if acc.BufferView, err = requiredInt(node, index, "bufferView"); err != nil {
		return Accessor{}, err
	}
	if acc.ByteOffset, err = requiredInt(node, index, "byteOffset"); err != nil {
		return Accessor{}, err
	}
	if node.Has("byteStride") {
		if acc.ByteStride, err = requiredInt(node, index, "byteStride"); err != nil {
			return Accessor{}, err
		}
	}
	componentType, err := requiredInt(node, index, "componentType")
	if err != nil {
		return Accessor{}, err
	}
	acc.ComponentType = ComponentType(componentType)
	if acc.Count, err = requiredInt(node, index, "count"); err != nil {
		return Accessor{}, err
	}

	typeNode := node.Get("type")
	if !typeNode.Exists() {
		return Accessor{}, accessorError(KindMissingAccessorField, index, "type")
	}
	shape, ok := typeNode.String()
	if !ok {
		return Accessor{}, accessorError(KindInvalidAccessorField, index, "type").withDetail("not a string")
	}
	components, ok := ComponentsPerElement(shape)
	if !ok {
		return Accessor{}, accessorError(KindUnknownElementShape, index, "type").withDetail("%q", shape)
	}
	acc.Shape = shape
	acc.Components = components

	nonNegative := []struct {
		field string
		v     int
	}{
		{"byteOffset", acc.ByteOffset},
		{"byteStride", acc.ByteStride},
		{"count", acc.Count},
	}
	for _, f := range nonNegative {
		if f.v < 0 {
			return Accessor{}, accessorError(KindInvalidAccessorField, index, f.field).withDetail("negative value %d", f.v)
		}
	}

	view := doc.Get("bufferViews").Index(acc.BufferView)
	if view.Exists() {
		acc.ViewOffset, _ = view.Get("byteOffset").Int()
		acc.ViewStride, _ = view.Get("byteStride").Int()
		if acc.ViewOffset < 0 || acc.ViewStride < 0 {
			return Accessor{}, accessorError(KindInvalidAccessorField, index, "bufferView").withDetail("negative buffer view offset or stride")
		}
	}

	return acc, nil
}

// requiredInt reads an integer property of an accessor node.
func requiredInt(node Node, index int, field string) (int, error) {
	v := node.Get(field)
	if !v.Exists() {
		return 0, accessorError(KindMissingAccessorField, index, field)
	}
	i, ok := v.Int()
	if !ok {
		return 0, accessorError(KindInvalidAccessorField, index, field).withDetail("not an integer")
	}
	return i, nil
}
