package model

// --- Binding Types ---

// BindingKind classifies a primitive property that names an accessor or an opaque index.
type BindingKind int

const (
	// BindingAttribute is an entry of a primitive's "attributes" object.
	BindingAttribute BindingKind = iota
	// BindingIndices is a primitive's "indices" accessor.
	BindingIndices
	// BindingPassThrough is an index captured but never decoded ("material", "mode").
	BindingPassThrough
)

func (k BindingKind) String() string {
	switch k {
	case BindingAttribute:
		return "attribute"
	case BindingIndices:
		return "indices"
	default:
		return "pass-through"
	}
}

// Binding maps a semantic name of one primitive to an accessor index (or an opaque value for pass-through kinds).
type Binding struct {
	// Name is the semantic, e.g. "POSITION", "indices", "NORMAL", "material".
	Name string

	// Value is the accessor index, or the raw integer for pass-through bindings.
	Value int

	// Kind classifies the binding.
	Kind BindingKind

	// Mesh and Primitive locate the binding in the document.
	Mesh      int
	Primitive int
}

// SkippedBinding records a binding whose accessor contributed no values because its component type is not recognized.
type SkippedBinding struct {
	Binding

	// ComponentType is the unrecognized code.
	ComponentType int
}
