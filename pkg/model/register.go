package model

import "fmt"

// RegisterSpec describes a resolved register for construction.
type RegisterSpec struct {
	Name           string
	Description    string
	Offset         uint64
	Address        uint64
	Size           uint64
	Access         Access
	Protection     string
	ResetValue     uint64
	ResetMask      uint64
	AlternateOf    string
	Alternates     []string
	Fields         []*Field
	BitBandAliases []uint64
	Path           Path
}

// Register is a single memory-mapped register with its effective
// properties fully resolved. It is immutable after construction.
type Register struct {
	name        string
	description string
	offset      uint64
	address     uint64
	size        uint64
	access      Access
	protection  string
	resetValue  uint64
	resetMask   uint64
	alternateOf string
	alternates  []string
	bitband     []uint64
	path        Path

	fields []*Field
	byName map[string]*Field
}

// NewRegister creates a register from its resolved parts.
// Field names must be unique within the register.
func NewRegister(spec *RegisterSpec) (*Register, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: register", ErrMissingName)
	}

	r := &Register{
		name:        spec.Name,
		description: spec.Description,
		offset:      spec.Offset,
		address:     spec.Address,
		size:        spec.Size,
		access:      spec.Access,
		protection:  spec.Protection,
		resetValue:  spec.ResetValue,
		resetMask:   spec.ResetMask,
		alternateOf: spec.AlternateOf,
		alternates:  append([]string(nil), spec.Alternates...),
		bitband:     append([]uint64(nil), spec.BitBandAliases...),
		path:        spec.Path,
		fields:      append([]*Field(nil), spec.Fields...),
		byName:      make(map[string]*Field, len(spec.Fields)),
	}

	for _, f := range r.fields {
		if _, exists := r.byName[f.Name()]; exists {
			return nil, fmt.Errorf("%w: field %q in register %q", ErrDuplicateName, f.Name(), r.name)
		}
		r.byName[f.Name()] = f
	}

	return r, nil
}

// Name returns the register name.
func (r *Register) Name() string {
	return r.name
}

// Description returns the register description.
func (r *Register) Description() string {
	return r.description
}

// Offset returns the address offset relative to the parent.
func (r *Register) Offset() uint64 {
	return r.offset
}

// Address returns the absolute address of the register.
func (r *Register) Address() uint64 {
	return r.address
}

// Size returns the register width in bits.
func (r *Register) Size() uint64 {
	return r.size
}

// ByteSize returns the register footprint in bytes.
func (r *Register) ByteSize() uint64 {
	return (r.size + 7) / 8
}

// Access returns the effective access mode.
func (r *Register) Access() Access {
	return r.access
}

// Protection returns the effective protection spelling, empty if unset.
func (r *Register) Protection() string {
	return r.protection
}

// ResetValue returns the register value after reset.
func (r *Register) ResetValue() uint64 {
	return r.resetValue
}

// ResetMask returns the mask of bits with defined reset values.
func (r *Register) ResetMask() uint64 {
	return r.resetMask
}

// AlternateOf returns the declared alternate target name, or empty.
func (r *Register) AlternateOf() string {
	return r.alternateOf
}

// Alternates returns the names of all sibling registers sharing this
// register's address, this one excluded.
func (r *Register) Alternates() []string {
	return append([]string(nil), r.alternates...)
}

// Path returns the node path from the device root.
func (r *Register) Path() Path {
	return append(Path(nil), r.path...)
}

// GetField returns a field by name.
func (r *Register) GetField(name string) (*Field, error) {
	f, exists := r.byName[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q in register %q", ErrFieldNotFound, name, r.name)
	}
	return f, nil
}

// Fields returns the fields in document order.
func (r *Register) Fields() []*Field {
	return append([]*Field(nil), r.fields...)
}

// HasBitBand returns true if bit-band alias addresses were generated
// for this register.
func (r *Register) HasBitBand() bool {
	return len(r.bitband) > 0
}

// BitBandAliases returns the alias address of every bit, indexed by
// bit position, or nil if the register is outside all configured
// bit-band regions.
func (r *Register) BitBandAliases() []uint64 {
	return append([]uint64(nil), r.bitband...)
}

// BitBandAlias returns the alias address of one bit, with ok reporting
// whether the register has bit-band addresses and the bit is in range.
func (r *Register) BitBandAlias(bit uint64) (alias uint64, ok bool) {
	if bit >= uint64(len(r.bitband)) {
		return 0, false
	}
	return r.bitband[bit], true
}
