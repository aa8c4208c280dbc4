package model

import "fmt"

// EnumeratedValue maps one field value to a name.
type EnumeratedValue struct {
	// Name is the value name, such as "DIV4".
	Name string

	// Description is a human-readable description.
	Description string

	// Value is the numeric field value.
	Value uint64

	// IsDefault marks the entry covering all values not named
	// explicitly; Value is meaningless on such entries.
	IsDefault bool
}

// FieldSpec describes a resolved field for construction.
type FieldSpec struct {
	Name        string
	Description string
	BitOffset   uint64
	BitWidth    uint64
	Access      Access
	Enumerated  []EnumeratedValue
	Path        Path
}

// Field names a bit range within its owning register.
// It is immutable after construction.
type Field struct {
	name        string
	description string
	bitOffset   uint64
	bitWidth    uint64
	access      Access
	enumerated  []EnumeratedValue
	path        Path
}

// NewField creates a field from its resolved parts.
func NewField(spec *FieldSpec) (*Field, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: field", ErrMissingName)
	}
	return &Field{
		name:        spec.Name,
		description: spec.Description,
		bitOffset:   spec.BitOffset,
		bitWidth:    spec.BitWidth,
		access:      spec.Access,
		enumerated:  append([]EnumeratedValue(nil), spec.Enumerated...),
		path:        spec.Path,
	}, nil
}

// Name returns the field name.
func (f *Field) Name() string {
	return f.name
}

// Description returns the field description.
func (f *Field) Description() string {
	return f.description
}

// BitOffset returns the position of the least significant bit.
func (f *Field) BitOffset() uint64 {
	return f.bitOffset
}

// BitWidth returns the width of the field in bits.
func (f *Field) BitWidth() uint64 {
	return f.bitWidth
}

// LSB returns the least significant bit position.
func (f *Field) LSB() uint64 {
	return f.bitOffset
}

// MSB returns the most significant bit position.
func (f *Field) MSB() uint64 {
	return f.bitOffset + f.bitWidth - 1
}

// Mask returns the field mask within the register value.
func (f *Field) Mask() uint64 {
	if f.bitWidth == 0 {
		return 0
	}
	width := f.bitWidth
	if width > 64 {
		width = 64
	}
	return (^uint64(0) >> (64 - width)) << f.bitOffset
}

// Access returns the effective access mode, the register's unless the
// field overrides it.
func (f *Field) Access() Access {
	return f.access
}

// EnumeratedValues returns the named values of the field in document
// order.
func (f *Field) EnumeratedValues() []EnumeratedValue {
	return append([]EnumeratedValue(nil), f.enumerated...)
}

// Path returns the node path from the device root.
func (f *Field) Path() Path {
	return append(Path(nil), f.path...)
}
