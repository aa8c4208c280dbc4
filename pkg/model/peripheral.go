package model

import "fmt"

// BlockUsage describes what an address block is used for.
type BlockUsage uint8

const (
	// UsageRegisters marks a block holding registers.
	UsageRegisters BlockUsage = iota

	// UsageBuffer marks a block backed by a buffer or memory.
	UsageBuffer

	// UsageReserved marks a block reserved for the peripheral but not
	// addressable as registers.
	UsageReserved
)

var blockUsageNames = []string{"registers", "buffer", "reserved"}

// String returns the SVD spelling of the usage.
func (u BlockUsage) String() string {
	if int(u) < len(blockUsageNames) {
		return blockUsageNames[u]
	}
	return "unknown"
}

// ParseBlockUsage parses an SVD address block usage spelling.
func ParseBlockUsage(s string) (BlockUsage, error) {
	for i, name := range blockUsageNames {
		if s == name {
			return BlockUsage(i), nil
		}
	}
	return 0, fmt.Errorf("unknown address block usage %q", s)
}

// AddressBlock is a contiguous address range claimed by a peripheral,
// relative to its base address.
type AddressBlock struct {
	// Offset is the start of the block relative to the base address.
	Offset uint64

	// Size is the block size in address units.
	Size uint64

	// Usage describes what the block is used for.
	Usage BlockUsage

	// Protection is the access protection spelling, empty if unset.
	Protection string
}

// PeripheralSpec describes a resolved peripheral for construction.
type PeripheralSpec struct {
	Name          string
	Description   string
	Version       string
	GroupName     string
	BaseAddress   uint64
	AlternateOf   string
	Alternates    []string
	AddressBlocks []AddressBlock
	Interrupts    []*Interrupt
	Clusters      []*Cluster
	Registers     []*Register
	Path          Path
}

// Peripheral is a named block of registers at a base address.
// It is immutable after construction.
type Peripheral struct {
	name        string
	description string
	version     string
	groupName   string
	baseAddress uint64
	alternateOf string
	alternates  []string
	blocks      []AddressBlock
	interrupts  []*Interrupt
	path        Path

	clusters  []*Cluster
	registers []*Register
	byName    map[string]any
}

// NewPeripheral creates a peripheral from its resolved parts.
// Clusters and registers share one namespace: their names must be
// unique within the peripheral.
func NewPeripheral(spec *PeripheralSpec) (*Peripheral, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: peripheral", ErrMissingName)
	}

	p := &Peripheral{
		name:        spec.Name,
		description: spec.Description,
		version:     spec.Version,
		groupName:   spec.GroupName,
		baseAddress: spec.BaseAddress,
		alternateOf: spec.AlternateOf,
		alternates:  append([]string(nil), spec.Alternates...),
		blocks:      append([]AddressBlock(nil), spec.AddressBlocks...),
		interrupts:  append([]*Interrupt(nil), spec.Interrupts...),
		path:        spec.Path,
		clusters:    append([]*Cluster(nil), spec.Clusters...),
		registers:   append([]*Register(nil), spec.Registers...),
		byName:      make(map[string]any, len(spec.Clusters)+len(spec.Registers)),
	}

	for _, c := range p.clusters {
		if _, exists := p.byName[c.Name()]; exists {
			return nil, fmt.Errorf("%w: %q in peripheral %q", ErrDuplicateName, c.Name(), p.name)
		}
		p.byName[c.Name()] = c
	}
	for _, r := range p.registers {
		if _, exists := p.byName[r.Name()]; exists {
			return nil, fmt.Errorf("%w: %q in peripheral %q", ErrDuplicateName, r.Name(), p.name)
		}
		p.byName[r.Name()] = r
	}

	return p, nil
}

// Name returns the peripheral name.
func (p *Peripheral) Name() string {
	return p.name
}

// Description returns the peripheral description.
func (p *Peripheral) Description() string {
	return p.description
}

// Version returns the peripheral version string.
func (p *Peripheral) Version() string {
	return p.version
}

// GroupName returns the functional group, such as "TIM", or empty.
func (p *Peripheral) GroupName() string {
	return p.groupName
}

// BaseAddress returns the absolute base address.
func (p *Peripheral) BaseAddress() uint64 {
	return p.baseAddress
}

// AlternateOf returns the declared alternate target name, or empty if
// this peripheral is not declared as an alternate.
func (p *Peripheral) AlternateOf() string {
	return p.alternateOf
}

// Alternates returns the names of all peripherals sharing this
// peripheral's address region, this one excluded.
func (p *Peripheral) Alternates() []string {
	return append([]string(nil), p.alternates...)
}

// AddressBlocks returns the declared address blocks.
func (p *Peripheral) AddressBlocks() []AddressBlock {
	return append([]AddressBlock(nil), p.blocks...)
}

// Interrupts returns the interrupts raised by this peripheral.
func (p *Peripheral) Interrupts() []*Interrupt {
	return append([]*Interrupt(nil), p.interrupts...)
}

// Path returns the node path from the device root.
func (p *Peripheral) Path() Path {
	return append(Path(nil), p.path...)
}

// GetCluster returns a top-level cluster by name.
func (p *Peripheral) GetCluster(name string) (*Cluster, error) {
	if c, ok := p.byName[name].(*Cluster); ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q in peripheral %q", ErrClusterNotFound, name, p.name)
}

// GetRegister returns a top-level register by name.
func (p *Peripheral) GetRegister(name string) (*Register, error) {
	if r, ok := p.byName[name].(*Register); ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: %q in peripheral %q", ErrRegisterNotFound, name, p.name)
}

// Clusters returns the top-level clusters ordered by address offset.
func (p *Peripheral) Clusters() []*Cluster {
	return append([]*Cluster(nil), p.clusters...)
}

// Registers returns the top-level registers ordered by address offset.
func (p *Peripheral) Registers() []*Register {
	return append([]*Register(nil), p.registers...)
}

// AllRegisters returns every register in the peripheral, clusters
// included, in depth-first address order.
func (p *Peripheral) AllRegisters() []*Register {
	result := append([]*Register(nil), p.registers...)
	for _, c := range p.clusters {
		result = append(result, c.AllRegisters()...)
	}
	return result
}
