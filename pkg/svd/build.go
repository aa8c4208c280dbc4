package svd

import (
	"log/slog"
	"strings"

	"github.com/svdkit/svd-go/pkg/model"
	"github.com/svdkit/svd-go/pkg/schema"
)

// buildTree converts the raw document into the working tree, checking
// required attributes as it goes. Attributes that may arrive later
// through derivation (baseAddress, addressOffset) are only required
// here when the node carries no derivedFrom reference.
func buildTree(doc *schema.Device, log *slog.Logger) (*tree, error) {
	if doc.Name == "" {
		return nil, schemaErrorf(nil, "%w: device name", ErrMissingAttribute)
	}
	devPath := model.Path{doc.Name}

	t := &tree{
		name:            doc.Name,
		description:     doc.Description,
		vendor:          doc.Vendor,
		vendorID:        doc.VendorID,
		series:          doc.Series,
		version:         doc.Version,
		addressUnitBits: 8,
		width:           32,
	}
	if v, ok := doc.AddressUnitBits.Value(); ok {
		t.addressUnitBits = v
	}
	if v, ok := doc.Width.Value(); ok {
		t.width = v
	}
	if doc.CPU != nil {
		prioBits, _ := doc.CPU.NVICPrioBits.Value()
		t.cpu = &model.CPU{
			Name:                doc.CPU.Name,
			Revision:            doc.CPU.Revision,
			Endian:              doc.CPU.Endian,
			MPUPresent:          doc.CPU.MPUPresent,
			FPUPresent:          doc.CPU.FPUPresent,
			NVICPrioBits:        prioBits,
			VendorSystickConfig: doc.CPU.VendorSystickConfig,
		}
	}

	var err error
	if t.props, err = buildProps(devPath, doc.Size, doc.Access, doc.Protection, doc.ResetValue, doc.ResetMask); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(doc.Peripherals))
	for i := range doc.Peripherals {
		p, err := buildPeripheral(&doc.Peripherals[i], devPath)
		if err != nil {
			return nil, err
		}
		if seen[p.name] {
			return nil, schemaErrorf(devPath, "%w: peripheral %q", model.ErrDuplicateName, p.name)
		}
		seen[p.name] = true
		t.peripherals = append(t.peripherals, p)
	}

	log.Debug("tree built", "device", t.name, "peripherals", len(t.peripherals))
	return t, nil
}

func buildPeripheral(raw *schema.Peripheral, devPath model.Path) (*node, error) {
	if raw.Name == "" {
		return nil, schemaErrorf(devPath, "%w: peripheral name", ErrMissingAttribute)
	}
	path := devPath.Child(raw.Name)

	n := &node{
		kind:        kindPeripheral,
		name:        raw.Name,
		description: raw.Description,
		version:     raw.Version,
		groupName:   raw.GroupName,
		derivedFrom: raw.DerivedFrom,
		alternate:   raw.AlternatePeripheral,
	}

	if v, ok := raw.BaseAddress.Value(); ok {
		n.baseAddress = &v
	} else if n.derivedFrom == "" {
		return nil, schemaErrorf(path, "%w: baseAddress", ErrMissingAttribute)
	}

	var err error
	if n.dim, err = buildDim(path, raw.Dim, raw.DimIncrement, raw.DimIndex); err != nil {
		return nil, err
	}
	if n.props, err = buildProps(path, raw.Size, raw.Access, raw.Protection, raw.ResetValue, raw.ResetMask); err != nil {
		return nil, err
	}

	for i := range raw.AddressBlocks {
		block, err := buildAddressBlock(path, &raw.AddressBlocks[i])
		if err != nil {
			return nil, err
		}
		n.blocks = append(n.blocks, block)
	}
	for i := range raw.Interrupts {
		irq, err := buildInterrupt(path, &raw.Interrupts[i])
		if err != nil {
			return nil, err
		}
		n.interrupts = append(n.interrupts, irq)
	}

	if err := buildChildren(n, raw.Registers, raw.Clusters, path); err != nil {
		return nil, err
	}
	return n, nil
}

// buildChildren appends register then cluster children in their
// respective declaration orders.
func buildChildren(parent *node, regs []schema.Register, clusters []schema.Cluster, path model.Path) error {
	for i := range regs {
		r, err := buildRegister(&regs[i], path)
		if err != nil {
			return err
		}
		r.parent = parent
		parent.children = append(parent.children, r)
	}
	for i := range clusters {
		c, err := buildCluster(&clusters[i], path)
		if err != nil {
			return err
		}
		c.parent = parent
		parent.children = append(parent.children, c)
	}
	return nil
}

func buildCluster(raw *schema.Cluster, parentPath model.Path) (*node, error) {
	if raw.Name == "" {
		return nil, schemaErrorf(parentPath, "%w: cluster name", ErrMissingAttribute)
	}
	path := parentPath.Child(raw.Name)
	if raw.DerivedFrom != "" {
		return nil, schemaErrorf(path, "%w: clusters are not derivable", ErrInvalidAttribute)
	}

	n := &node{
		kind:        kindCluster,
		name:        raw.Name,
		description: raw.Description,
		alternate:   raw.AlternateCluster,
	}

	if v, ok := raw.AddressOffset.Value(); ok {
		n.offset = &v
	} else {
		return nil, schemaErrorf(path, "%w: addressOffset", ErrMissingAttribute)
	}

	var err error
	if n.dim, err = buildDim(path, raw.Dim, raw.DimIncrement, raw.DimIndex); err != nil {
		return nil, err
	}
	if n.props, err = buildProps(path, raw.Size, raw.Access, raw.Protection, raw.ResetValue, raw.ResetMask); err != nil {
		return nil, err
	}

	if err := buildChildren(n, raw.Registers, raw.Clusters, path); err != nil {
		return nil, err
	}
	return n, nil
}

func buildRegister(raw *schema.Register, parentPath model.Path) (*node, error) {
	if raw.Name == "" {
		return nil, schemaErrorf(parentPath, "%w: register name", ErrMissingAttribute)
	}
	path := parentPath.Child(raw.Name)

	n := &node{
		kind:        kindRegister,
		name:        raw.Name,
		description: raw.Description,
		derivedFrom: raw.DerivedFrom,
		alternate:   raw.AlternateRegister,
	}

	if v, ok := raw.AddressOffset.Value(); ok {
		n.offset = &v
	} else if n.derivedFrom == "" {
		return nil, schemaErrorf(path, "%w: addressOffset", ErrMissingAttribute)
	}

	var err error
	if n.dim, err = buildDim(path, raw.Dim, raw.DimIncrement, raw.DimIndex); err != nil {
		return nil, err
	}
	if n.props, err = buildProps(path, raw.Size, raw.Access, raw.Protection, raw.ResetValue, raw.ResetMask); err != nil {
		return nil, err
	}

	for i := range raw.Fields {
		f, err := buildField(&raw.Fields[i], path)
		if err != nil {
			return nil, err
		}
		n.fields = append(n.fields, f)
	}
	return n, nil
}

func buildField(raw *schema.Field, regPath model.Path) (*fieldNode, error) {
	if raw.Name == "" {
		return nil, schemaErrorf(regPath, "%w: field name", ErrMissingAttribute)
	}
	path := regPath.Child(raw.Name)
	if raw.DerivedFrom != "" {
		return nil, schemaErrorf(path, "%w: fields are not derivable", ErrInvalidAttribute)
	}

	f := &fieldNode{
		name:        raw.Name,
		description: raw.Description,
	}

	var err error
	if f.bitOffset, f.bitWidth, err = fieldBitRange(path, raw); err != nil {
		return nil, err
	}
	if f.dim, err = buildDim(path, raw.Dim, raw.DimIncrement, raw.DimIndex); err != nil {
		return nil, err
	}
	if raw.Access != "" {
		a, err := model.ParseAccess(raw.Access)
		if err != nil {
			return nil, schemaErrorf(path, "%w: %v", ErrInvalidAttribute, err)
		}
		f.access = &a
	}

	if raw.EnumeratedValues != nil {
		for i := range raw.EnumeratedValues.Values {
			ev := &raw.EnumeratedValues.Values[i]
			if ev.Name == "" {
				return nil, schemaErrorf(path, "%w: enumeratedValue name", ErrMissingAttribute)
			}
			value, ok := ev.Value.Value()
			if !ok && !ev.IsDefault {
				return nil, schemaErrorf(path, "%w: enumeratedValue %q value", ErrMissingAttribute, ev.Name)
			}
			f.enums = append(f.enums, model.EnumeratedValue{
				Name:        ev.Name,
				Description: ev.Description,
				Value:       value,
				IsDefault:   ev.IsDefault,
			})
		}
	}
	return f, nil
}

// fieldBitRange reads the bit range in whichever of the three CMSIS
// spellings the field uses: bitOffset+bitWidth, lsb+msb, or
// bitRange "[msb:lsb]".
func fieldBitRange(path model.Path, raw *schema.Field) (offset, width uint64, err error) {
	switch {
	case raw.BitOffset != nil || raw.BitWidth != nil:
		off, ok := raw.BitOffset.Value()
		if !ok {
			return 0, 0, schemaErrorf(path, "%w: bitOffset", ErrMissingAttribute)
		}
		w, ok := raw.BitWidth.Value()
		if !ok {
			return 0, 0, schemaErrorf(path, "%w: bitWidth", ErrMissingAttribute)
		}
		offset, width = off, w
	case raw.LSB != nil || raw.MSB != nil:
		lsb, ok := raw.LSB.Value()
		if !ok {
			return 0, 0, schemaErrorf(path, "%w: lsb", ErrMissingAttribute)
		}
		msb, ok := raw.MSB.Value()
		if !ok {
			return 0, 0, schemaErrorf(path, "%w: msb", ErrMissingAttribute)
		}
		if msb < lsb {
			return 0, 0, schemaErrorf(path, "%w: msb %d below lsb %d", ErrInvalidAttribute, msb, lsb)
		}
		offset, width = lsb, msb-lsb+1
	case raw.BitRange != "":
		msb, lsb, err := schema.ParseBitRange(raw.BitRange)
		if err != nil {
			return 0, 0, schemaErrorf(path, "%w: %v", ErrInvalidAttribute, err)
		}
		offset, width = lsb, msb-lsb+1
	default:
		return 0, 0, schemaErrorf(path, "%w: field bit range", ErrMissingAttribute)
	}
	if width == 0 {
		return 0, 0, schemaErrorf(path, "%w: zero bit width", ErrInvalidAttribute)
	}
	return offset, width, nil
}

func buildDim(path model.Path, dim, incr *schema.Integer, index string) (*dimSpec, error) {
	count, ok := dim.Value()
	if !ok {
		// A stray dimIncrement without dim is not an array declaration.
		return nil, nil
	}
	if count == 0 {
		return nil, schemaErrorf(path, "%w: dim is zero", ErrInvalidAttribute)
	}
	step, ok := incr.Value()
	if !ok {
		return nil, schemaErrorf(path, "%w: dimIncrement", ErrMissingAttribute)
	}
	return &dimSpec{count: count, increment: step, index: strings.TrimSpace(index)}, nil
}

func buildProps(path model.Path, size *schema.Integer, access, protection string, resetValue, resetMask *schema.Integer) (props, error) {
	var p props
	if v, ok := size.Value(); ok {
		p.size = &v
	}
	if access != "" {
		a, err := model.ParseAccess(access)
		if err != nil {
			return props{}, schemaErrorf(path, "%w: %v", ErrInvalidAttribute, err)
		}
		p.access = &a
	}
	if protection != "" {
		p.protection = &protection
	}
	if v, ok := resetValue.Value(); ok {
		p.resetValue = &v
	}
	if v, ok := resetMask.Value(); ok {
		p.resetMask = &v
	}
	return p, nil
}

func buildAddressBlock(path model.Path, raw *schema.AddressBlock) (model.AddressBlock, error) {
	offset, ok := raw.Offset.Value()
	if !ok {
		return model.AddressBlock{}, schemaErrorf(path, "%w: addressBlock offset", ErrMissingAttribute)
	}
	size, ok := raw.Size.Value()
	if !ok {
		return model.AddressBlock{}, schemaErrorf(path, "%w: addressBlock size", ErrMissingAttribute)
	}
	if raw.Usage == "" {
		return model.AddressBlock{}, schemaErrorf(path, "%w: addressBlock usage", ErrMissingAttribute)
	}
	usage, err := model.ParseBlockUsage(raw.Usage)
	if err != nil {
		return model.AddressBlock{}, schemaErrorf(path, "%w: %v", ErrInvalidAttribute, err)
	}
	return model.AddressBlock{Offset: offset, Size: size, Usage: usage, Protection: raw.Protection}, nil
}

func buildInterrupt(path model.Path, raw *schema.Interrupt) (model.Interrupt, error) {
	if raw.Name == "" {
		return model.Interrupt{}, schemaErrorf(path, "%w: interrupt name", ErrMissingAttribute)
	}
	value, ok := raw.Value.Value()
	if !ok {
		return model.Interrupt{}, schemaErrorf(path, "%w: interrupt %q value", ErrMissingAttribute, raw.Name)
	}
	return model.Interrupt{Name: raw.Name, Description: raw.Description, Value: value}, nil
}
