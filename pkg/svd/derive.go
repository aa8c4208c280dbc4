package svd

import (
	"log/slog"
	"slices"
	"strings"
)

// resolveDerived eliminates every derivedFrom reference by overlaying
// deriving nodes onto their resolved targets in dependency order.
//
// Peripherals resolve first so that register references always see the
// final register population of every peripheral, copied children
// included. Cycles are caught by marking nodes while their chain is
// being walked; revisiting a marked node means the chain came back to
// itself.
func resolveDerived(t *tree, log *slog.Logger) error {
	d := &deriver{
		tree:        t,
		peripherals: make(map[string]*node, len(t.peripherals)),
	}
	for _, p := range t.peripherals {
		d.peripherals[p.name] = p
	}

	for _, p := range t.peripherals {
		if err := d.resolve(p); err != nil {
			return err
		}
	}

	var registers []*node
	t.walk(func(n *node) {
		if n.kind == kindRegister && n.derivedFrom != "" {
			registers = append(registers, n)
		}
	})
	for _, r := range registers {
		if err := d.resolve(r); err != nil {
			return err
		}
	}

	log.Debug("derivation resolved", "overlays", d.resolved)
	return nil
}

type deriver struct {
	tree        *tree
	peripherals map[string]*node
	resolved    int
}

func (d *deriver) resolve(n *node) error {
	switch n.state {
	case stateResolved:
		return nil
	case stateResolving:
		return &ResolutionError{
			Path: n.path(d.tree.name),
			Ref:  n.derivedFrom,
			Kind: ErrDerivationCycle,
		}
	}
	n.state = stateResolving

	if n.derivedFrom != "" {
		target, ok := d.lookup(n)
		if !ok {
			return &ResolutionError{
				Path: n.path(d.tree.name),
				Ref:  n.derivedFrom,
				Kind: ErrMissingTarget,
			}
		}
		if err := d.resolve(target); err != nil {
			return err
		}
		overlay(n, target)
		n.derivedFrom = ""
		d.resolved++

		// Derivation may supply the address; nothing else can now.
		if n.kind == kindPeripheral && n.baseAddress == nil {
			return schemaErrorf(n.path(d.tree.name), "%w: baseAddress", ErrMissingAttribute)
		}
		if n.kind == kindRegister && n.offset == nil {
			return schemaErrorf(n.path(d.tree.name), "%w: addressOffset", ErrMissingAttribute)
		}
	}

	n.state = stateResolved
	return nil
}

// lookup finds the derivation target of n. Peripherals reference
// peripherals by name. Registers reference a sibling register by bare
// name, or any register in the document by dotted path from the device
// root ("PERIPH.REG" or "PERIPH.CLUSTER.REG").
func (d *deriver) lookup(n *node) (*node, bool) {
	ref := n.derivedFrom
	if n.kind == kindPeripheral {
		target, ok := d.peripherals[ref]
		return target, ok
	}

	if strings.Contains(ref, ".") {
		parts := strings.Split(ref, ".")
		cur, ok := d.peripherals[parts[0]]
		if !ok {
			return nil, false
		}
		for _, name := range parts[1:] {
			cur = childNamed(cur, name)
			if cur == nil {
				return nil, false
			}
		}
		if cur.kind != kindRegister {
			return nil, false
		}
		return cur, true
	}

	if n.parent == nil {
		return nil, false
	}
	for _, sibling := range n.parent.children {
		// A register naming itself resolves to itself and is reported
		// as a cycle, not a missing target.
		if sibling.kind == kindRegister && sibling.name == ref {
			return sibling, true
		}
	}
	return nil, false
}

func childNamed(parent *node, name string) *node {
	for _, c := range parent.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// overlay copies onto n everything the document leaves unset on it:
// scalar attributes first, then the target's children wholesale when n
// declares none of its own. Interrupts and alternate declarations stay
// per instance; an alternate relation names a sibling in the target's
// scope and does not survive transplanting.
func overlay(n, target *node) {
	if n.description == "" {
		n.description = target.description
	}
	n.props.fillFrom(&target.props)
	if n.dim == nil {
		n.dim = cloneVal(target.dim)
	}

	switch n.kind {
	case kindPeripheral:
		if n.version == "" {
			n.version = target.version
		}
		if n.groupName == "" {
			n.groupName = target.groupName
		}
		if n.baseAddress == nil {
			n.baseAddress = cloneVal(target.baseAddress)
		}
		if len(n.blocks) == 0 {
			n.blocks = slices.Clone(target.blocks)
		}
		if len(n.children) == 0 {
			n.children = make([]*node, len(target.children))
			for i, c := range target.children {
				cc := c.clone()
				cc.parent = n
				n.children[i] = cc
			}
		}
	case kindRegister:
		if n.offset == nil {
			n.offset = cloneVal(target.offset)
		}
		if len(n.fields) == 0 {
			n.fields = make([]*fieldNode, len(target.fields))
			for i, f := range target.fields {
				n.fields[i] = f.clone()
			}
		}
	}
}
