package svd

import (
	"cmp"
	"slices"

	"github.com/svdkit/svd-go/pkg/model"
)

// assemble freezes the working tree into the immutable model. Sibling
// clusters and registers are ordered by address offset, declaration
// order breaking ties, so repeated parses of one document yield
// structurally identical devices.
func assemble(t *tree) (*model.Device, error) {
	peripherals := make([]*model.Peripheral, 0, len(t.peripherals))
	for _, p := range t.peripherals {
		mp, err := assemblePeripheral(t, p)
		if err != nil {
			return nil, err
		}
		peripherals = append(peripherals, mp)
	}

	dev, err := model.NewDevice(&model.DeviceSpec{
		Name:            t.name,
		Description:     t.description,
		Vendor:          t.vendor,
		VendorID:        t.vendorID,
		Series:          t.series,
		Version:         t.version,
		AddressUnitBits: t.addressUnitBits,
		Width:           t.width,
		CPU:             t.cpu,
		Defaults:        deviceDefaults(t),
		Peripherals:     peripherals,
		Interrupts:      collectInterrupts(t),
	})
	if err != nil {
		return nil, schemaErrorf(model.Path{t.name}, "%w", err)
	}
	return dev, nil
}

func assemblePeripheral(t *tree, n *node) (*model.Peripheral, error) {
	clusters, registers, err := assembleChildren(t, n)
	if err != nil {
		return nil, err
	}

	interrupts := make([]*model.Interrupt, 0, len(n.interrupts))
	for i := range n.interrupts {
		irq := n.interrupts[i]
		interrupts = append(interrupts, &irq)
	}

	p, err := model.NewPeripheral(&model.PeripheralSpec{
		Name:          n.name,
		Description:   n.description,
		Version:       n.version,
		GroupName:     n.groupName,
		BaseAddress:   n.addr,
		AlternateOf:   n.alternate,
		Alternates:    n.alternates,
		AddressBlocks: n.blocks,
		Interrupts:    interrupts,
		Clusters:      clusters,
		Registers:     registers,
		Path:          n.path(t.name),
	})
	if err != nil {
		return nil, schemaErrorf(n.path(t.name), "%w", err)
	}
	return p, nil
}

func assembleCluster(t *tree, n *node) (*model.Cluster, error) {
	clusters, registers, err := assembleChildren(t, n)
	if err != nil {
		return nil, err
	}

	c, err := model.NewCluster(&model.ClusterSpec{
		Name:        n.name,
		Description: n.description,
		Offset:      *n.offset,
		Address:     n.addr,
		ByteSize:    n.byteSize,
		AlternateOf: n.alternate,
		Alternates:  n.alternates,
		Clusters:    clusters,
		Registers:   registers,
		Path:        n.path(t.name),
	})
	if err != nil {
		return nil, schemaErrorf(n.path(t.name), "%w", err)
	}
	return c, nil
}

func assembleRegister(t *tree, n *node) (*model.Register, error) {
	path := n.path(t.name)

	fields := make([]*model.Field, 0, len(n.fields))
	for _, fn := range n.fields {
		access := n.effective.access
		if fn.access != nil {
			access = *fn.access
		}
		f, err := model.NewField(&model.FieldSpec{
			Name:        fn.name,
			Description: fn.description,
			BitOffset:   fn.bitOffset,
			BitWidth:    fn.bitWidth,
			Access:      access,
			Enumerated:  fn.enums,
			Path:        path.Child(fn.name),
		})
		if err != nil {
			return nil, schemaErrorf(path, "%w", err)
		}
		fields = append(fields, f)
	}

	r, err := model.NewRegister(&model.RegisterSpec{
		Name:           n.name,
		Description:    n.description,
		Offset:         *n.offset,
		Address:        n.addr,
		Size:           n.effective.size,
		Access:         n.effective.access,
		Protection:     n.effective.protection,
		ResetValue:     n.effective.resetValue,
		ResetMask:      n.effective.resetMask,
		AlternateOf:    n.alternate,
		Alternates:     n.alternates,
		Fields:         fields,
		BitBandAliases: n.bitband,
		Path:           path,
	})
	if err != nil {
		return nil, schemaErrorf(path, "%w", err)
	}
	return r, nil
}

// assembleChildren splits a node's children into clusters and
// registers, each ordered by address offset.
func assembleChildren(t *tree, n *node) ([]*model.Cluster, []*model.Register, error) {
	ordered := make([]*node, len(n.children))
	copy(ordered, n.children)
	slices.SortStableFunc(ordered, func(a, b *node) int {
		return cmp.Compare(*a.offset, *b.offset)
	})

	var clusters []*model.Cluster
	var registers []*model.Register
	for _, c := range ordered {
		switch c.kind {
		case kindCluster:
			mc, err := assembleCluster(t, c)
			if err != nil {
				return nil, nil, err
			}
			clusters = append(clusters, mc)
		case kindRegister:
			mr, err := assembleRegister(t, c)
			if err != nil {
				return nil, nil, err
			}
			registers = append(registers, mr)
		}
	}
	return clusters, registers, nil
}

// collectInterrupts aggregates the device interrupt table: every
// interrupt any peripheral declares, deduplicated by name (first
// declaration wins) and ordered by interrupt number.
func collectInterrupts(t *tree) []*model.Interrupt {
	var all []*model.Interrupt
	seen := make(map[string]bool)
	for _, p := range t.peripherals {
		for i := range p.interrupts {
			irq := p.interrupts[i]
			if seen[irq.Name] {
				continue
			}
			seen[irq.Name] = true
			all = append(all, &irq)
		}
	}
	slices.SortStableFunc(all, func(a, b *model.Interrupt) int {
		return cmp.Compare(a.Value, b.Value)
	})
	return all
}

// deviceDefaults records the device-level register property fallbacks
// as declared; undeclared values stay at the CMSIS defaults.
func deviceDefaults(t *tree) model.RegisterDefaults {
	d := model.RegisterDefaults{
		Size:   32,
		Access: model.AccessReadWrite,
	}
	if t.props.size != nil {
		d.Size = *t.props.size
	}
	if t.props.access != nil {
		d.Access = *t.props.access
	}
	if t.props.resetValue != nil {
		d.ResetValue = *t.props.resetValue
	}
	if t.props.resetMask != nil {
		d.ResetMask = *t.props.resetMask
	} else {
		d.ResetMask = onesMask(d.Size)
	}
	return d
}
