// Package snapshot flattens a resolved device into plain exportable
// structs with deterministic CBOR and JSON encodings.
//
// Downstream tools that cache parse results or ship device models
// between processes use snapshots instead of the live model: every
// address is resolved, every array expanded, and the structs carry no
// behavior. Snapshots are one-way; a device model is only ever
// produced by svd.Parse.
package snapshot

import "github.com/svdkit/svd-go/pkg/model"

// Device is the exportable form of a resolved device.
type Device struct {
	Name            string       `cbor:"1,keyasint" json:"name"`
	Description     string       `cbor:"2,keyasint,omitempty" json:"description,omitempty"`
	Vendor          string       `cbor:"3,keyasint,omitempty" json:"vendor,omitempty"`
	Series          string       `cbor:"4,keyasint,omitempty" json:"series,omitempty"`
	Version         string       `cbor:"5,keyasint,omitempty" json:"version,omitempty"`
	AddressUnitBits uint64       `cbor:"6,keyasint" json:"addressUnitBits"`
	Width           uint64       `cbor:"7,keyasint" json:"width"`
	CPU             *CPU         `cbor:"8,keyasint,omitempty" json:"cpu,omitempty"`
	Peripherals     []Peripheral `cbor:"9,keyasint" json:"peripherals"`
	Interrupts      []Interrupt  `cbor:"10,keyasint,omitempty" json:"interrupts,omitempty"`
}

// CPU is the exportable processor description.
type CPU struct {
	Name         string `cbor:"1,keyasint" json:"name"`
	Revision     string `cbor:"2,keyasint,omitempty" json:"revision,omitempty"`
	Endian       string `cbor:"3,keyasint,omitempty" json:"endian,omitempty"`
	NVICPrioBits uint64 `cbor:"4,keyasint" json:"nvicPrioBits"`
}

// Interrupt is the exportable form of an interrupt definition.
type Interrupt struct {
	Name        string `cbor:"1,keyasint" json:"name"`
	Description string `cbor:"2,keyasint,omitempty" json:"description,omitempty"`
	Value       uint64 `cbor:"3,keyasint" json:"value"`
}

// AddressBlock is the exportable form of a peripheral address block.
type AddressBlock struct {
	Offset uint64 `cbor:"1,keyasint" json:"offset"`
	Size   uint64 `cbor:"2,keyasint" json:"size"`
	Usage  string `cbor:"3,keyasint" json:"usage"`
}

// Peripheral is the exportable form of a resolved peripheral.
type Peripheral struct {
	Name          string         `cbor:"1,keyasint" json:"name"`
	Description   string         `cbor:"2,keyasint,omitempty" json:"description,omitempty"`
	GroupName     string         `cbor:"3,keyasint,omitempty" json:"groupName,omitempty"`
	BaseAddress   uint64         `cbor:"4,keyasint" json:"baseAddress"`
	AlternateOf   string         `cbor:"5,keyasint,omitempty" json:"alternateOf,omitempty"`
	AddressBlocks []AddressBlock `cbor:"6,keyasint,omitempty" json:"addressBlocks,omitempty"`
	Interrupts    []Interrupt    `cbor:"7,keyasint,omitempty" json:"interrupts,omitempty"`
	Clusters      []Cluster      `cbor:"8,keyasint,omitempty" json:"clusters,omitempty"`
	Registers     []Register     `cbor:"9,keyasint,omitempty" json:"registers,omitempty"`
}

// Cluster is the exportable form of a resolved cluster.
type Cluster struct {
	Name        string     `cbor:"1,keyasint" json:"name"`
	Description string     `cbor:"2,keyasint,omitempty" json:"description,omitempty"`
	Offset      uint64     `cbor:"3,keyasint" json:"offset"`
	Address     uint64     `cbor:"4,keyasint" json:"address"`
	ByteSize    uint64     `cbor:"5,keyasint" json:"byteSize"`
	AlternateOf string     `cbor:"6,keyasint,omitempty" json:"alternateOf,omitempty"`
	Clusters    []Cluster  `cbor:"7,keyasint,omitempty" json:"clusters,omitempty"`
	Registers   []Register `cbor:"8,keyasint,omitempty" json:"registers,omitempty"`
}

// Register is the exportable form of a resolved register.
type Register struct {
	Name           string   `cbor:"1,keyasint" json:"name"`
	Description    string   `cbor:"2,keyasint,omitempty" json:"description,omitempty"`
	Offset         uint64   `cbor:"3,keyasint" json:"offset"`
	Address        uint64   `cbor:"4,keyasint" json:"address"`
	Size           uint64   `cbor:"5,keyasint" json:"size"`
	Access         string   `cbor:"6,keyasint" json:"access"`
	ResetValue     uint64   `cbor:"7,keyasint" json:"resetValue"`
	ResetMask      uint64   `cbor:"8,keyasint" json:"resetMask"`
	AlternateOf    string   `cbor:"9,keyasint,omitempty" json:"alternateOf,omitempty"`
	Fields         []Field  `cbor:"10,keyasint,omitempty" json:"fields,omitempty"`
	BitBandAliases []uint64 `cbor:"11,keyasint,omitempty" json:"bitBandAliases,omitempty"`
}

// Field is the exportable form of a resolved field.
type Field struct {
	Name        string            `cbor:"1,keyasint" json:"name"`
	Description string            `cbor:"2,keyasint,omitempty" json:"description,omitempty"`
	BitOffset   uint64            `cbor:"3,keyasint" json:"bitOffset"`
	BitWidth    uint64            `cbor:"4,keyasint" json:"bitWidth"`
	Access      string            `cbor:"5,keyasint" json:"access"`
	Enumerated  []EnumeratedValue `cbor:"6,keyasint,omitempty" json:"enumeratedValues,omitempty"`
}

// EnumeratedValue is the exportable form of a named field value.
type EnumeratedValue struct {
	Name        string `cbor:"1,keyasint" json:"name"`
	Description string `cbor:"2,keyasint,omitempty" json:"description,omitempty"`
	Value       uint64 `cbor:"3,keyasint" json:"value"`
	IsDefault   bool   `cbor:"4,keyasint,omitempty" json:"isDefault,omitempty"`
}

// Take flattens a resolved device into its snapshot.
func Take(d *model.Device) *Device {
	snap := &Device{
		Name:            d.Name(),
		Description:     d.Description(),
		Vendor:          d.Vendor(),
		Series:          d.Series(),
		Version:         d.Version(),
		AddressUnitBits: d.AddressUnitBits(),
		Width:           d.Width(),
		Peripherals:     make([]Peripheral, 0, d.PeripheralCount()),
		Interrupts:      takeInterrupts(d.Interrupts()),
	}
	if cpu := d.CPU(); cpu != nil {
		snap.CPU = &CPU{
			Name:         cpu.Name,
			Revision:     cpu.Revision,
			Endian:       cpu.Endian,
			NVICPrioBits: cpu.NVICPrioBits,
		}
	}
	for _, p := range d.Peripherals() {
		snap.Peripherals = append(snap.Peripherals, takePeripheral(p))
	}
	return snap
}

func takePeripheral(p *model.Peripheral) Peripheral {
	sp := Peripheral{
		Name:        p.Name(),
		Description: p.Description(),
		GroupName:   p.GroupName(),
		BaseAddress: p.BaseAddress(),
		AlternateOf: p.AlternateOf(),
		Interrupts:  takeInterrupts(p.Interrupts()),
	}
	for _, b := range p.AddressBlocks() {
		sp.AddressBlocks = append(sp.AddressBlocks, AddressBlock{
			Offset: b.Offset,
			Size:   b.Size,
			Usage:  b.Usage.String(),
		})
	}
	for _, c := range p.Clusters() {
		sp.Clusters = append(sp.Clusters, takeCluster(c))
	}
	for _, r := range p.Registers() {
		sp.Registers = append(sp.Registers, takeRegister(r))
	}
	return sp
}

func takeCluster(c *model.Cluster) Cluster {
	sc := Cluster{
		Name:        c.Name(),
		Description: c.Description(),
		Offset:      c.Offset(),
		Address:     c.Address(),
		ByteSize:    c.ByteSize(),
		AlternateOf: c.AlternateOf(),
	}
	for _, sub := range c.Clusters() {
		sc.Clusters = append(sc.Clusters, takeCluster(sub))
	}
	for _, r := range c.Registers() {
		sc.Registers = append(sc.Registers, takeRegister(r))
	}
	return sc
}

func takeRegister(r *model.Register) Register {
	sr := Register{
		Name:           r.Name(),
		Description:    r.Description(),
		Offset:         r.Offset(),
		Address:        r.Address(),
		Size:           r.Size(),
		Access:         r.Access().String(),
		ResetValue:     r.ResetValue(),
		ResetMask:      r.ResetMask(),
		AlternateOf:    r.AlternateOf(),
		BitBandAliases: r.BitBandAliases(),
	}
	for _, f := range r.Fields() {
		sf := Field{
			Name:        f.Name(),
			Description: f.Description(),
			BitOffset:   f.BitOffset(),
			BitWidth:    f.BitWidth(),
			Access:      f.Access().String(),
		}
		for _, ev := range f.EnumeratedValues() {
			sf.Enumerated = append(sf.Enumerated, EnumeratedValue{
				Name:        ev.Name,
				Description: ev.Description,
				Value:       ev.Value,
				IsDefault:   ev.IsDefault,
			})
		}
		sr.Fields = append(sr.Fields, sf)
	}
	return sr
}

func takeInterrupts(irqs []*model.Interrupt) []Interrupt {
	if len(irqs) == 0 {
		return nil
	}
	out := make([]Interrupt, 0, len(irqs))
	for _, irq := range irqs {
		out = append(out, Interrupt{
			Name:        irq.Name,
			Description: irq.Description,
			Value:       irq.Value,
		})
	}
	return out
}
