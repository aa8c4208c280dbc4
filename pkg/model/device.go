package model

import (
	"errors"
	"fmt"
)

// Model errors.
var (
	ErrMissingName        = errors.New("missing name")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrPeripheralNotFound = errors.New("peripheral not found")
	ErrClusterNotFound    = errors.New("cluster not found")
	ErrRegisterNotFound   = errors.New("register not found")
	ErrFieldNotFound      = errors.New("field not found")
)

// CPU describes the processor core of a device.
type CPU struct {
	// Name is the core name, such as "CM3".
	Name string

	// Revision is the core revision, such as "r1p1".
	Revision string

	// Endian is the endianness: "little", "big", "selectable", "other".
	Endian string

	// MPUPresent indicates a memory protection unit.
	MPUPresent bool

	// FPUPresent indicates a floating point unit.
	FPUPresent bool

	// NVICPrioBits is the number of NVIC priority bits implemented.
	NVICPrioBits uint64

	// VendorSystickConfig indicates a vendor-specific SysTick timer.
	VendorSystickConfig bool
}

// Interrupt associates a named interrupt line with its number.
type Interrupt struct {
	// Name is the interrupt name, unique within the device.
	Name string

	// Description is a human-readable description.
	Description string

	// Value is the interrupt number.
	Value uint64
}

// RegisterDefaults are the device-wide fallback register properties
// applied when no enclosing scope specifies its own.
type RegisterDefaults struct {
	Size       uint64
	Access     Access
	ResetValue uint64
	ResetMask  uint64
}

// DeviceSpec describes a resolved device for construction.
type DeviceSpec struct {
	Name            string
	Description     string
	Vendor          string
	VendorID        string
	Series          string
	Version         string
	AddressUnitBits uint64
	Width           uint64
	CPU             *CPU
	Defaults        RegisterDefaults
	Peripherals     []*Peripheral
	Interrupts      []*Interrupt
}

// Device is the root of a resolved device description.
// It is immutable after construction.
type Device struct {
	name            string
	description     string
	vendor          string
	vendorID        string
	series          string
	version         string
	addressUnitBits uint64
	width           uint64
	cpu             *CPU
	defaults        RegisterDefaults

	peripherals []*Peripheral
	byName      map[string]*Peripheral
	interrupts  []*Interrupt
}

// NewDevice creates a device from its resolved parts.
// Peripheral names must be unique within the device.
func NewDevice(spec *DeviceSpec) (*Device, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: device", ErrMissingName)
	}

	d := &Device{
		name:            spec.Name,
		description:     spec.Description,
		vendor:          spec.Vendor,
		vendorID:        spec.VendorID,
		series:          spec.Series,
		version:         spec.Version,
		addressUnitBits: spec.AddressUnitBits,
		width:           spec.Width,
		cpu:             spec.CPU,
		defaults:        spec.Defaults,
		peripherals:     make([]*Peripheral, 0, len(spec.Peripherals)),
		byName:          make(map[string]*Peripheral, len(spec.Peripherals)),
		interrupts:      append([]*Interrupt(nil), spec.Interrupts...),
	}

	for _, p := range spec.Peripherals {
		if _, exists := d.byName[p.Name()]; exists {
			return nil, fmt.Errorf("%w: peripheral %q", ErrDuplicateName, p.Name())
		}
		d.peripherals = append(d.peripherals, p)
		d.byName[p.Name()] = p
	}

	return d, nil
}

// Name returns the device name.
func (d *Device) Name() string {
	return d.name
}

// Description returns the device description.
func (d *Device) Description() string {
	return d.description
}

// Vendor returns the vendor display name.
func (d *Device) Vendor() string {
	return d.vendor
}

// VendorID returns the abbreviated vendor identifier.
func (d *Device) VendorID() string {
	return d.vendorID
}

// Series returns the device series name.
func (d *Device) Series() string {
	return d.series
}

// Version returns the description version string.
func (d *Device) Version() string {
	return d.version
}

// AddressUnitBits returns the number of bits per address unit,
// normally 8.
func (d *Device) AddressUnitBits() uint64 {
	return d.addressUnitBits
}

// Width returns the bus width of the device in bits.
func (d *Device) Width() uint64 {
	return d.width
}

// CPU returns the processor description, or nil if the document
// carried none.
func (d *Device) CPU() *CPU {
	if d.cpu == nil {
		return nil
	}
	cpu := *d.cpu
	return &cpu
}

// Defaults returns the device-wide register property fallbacks.
func (d *Device) Defaults() RegisterDefaults {
	return d.defaults
}

// GetPeripheral returns a peripheral by name.
func (d *Device) GetPeripheral(name string) (*Peripheral, error) {
	p, exists := d.byName[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrPeripheralNotFound, name)
	}
	return p, nil
}

// Peripherals returns all peripherals in document order.
func (d *Device) Peripherals() []*Peripheral {
	return append([]*Peripheral(nil), d.peripherals...)
}

// PeripheralCount returns the number of peripherals.
func (d *Device) PeripheralCount() int {
	return len(d.peripherals)
}

// Interrupts returns the device interrupt table: every interrupt
// declared by any peripheral, deduplicated by name and ordered by
// interrupt number.
func (d *Device) Interrupts() []*Interrupt {
	return append([]*Interrupt(nil), d.interrupts...)
}

// FindPeripheralsByGroup returns all peripherals carrying the given
// group name, in document order.
func (d *Device) FindPeripheralsByGroup(group string) []*Peripheral {
	var result []*Peripheral
	for _, p := range d.peripherals {
		if p.GroupName() == group {
			result = append(result, p)
		}
	}
	return result
}
