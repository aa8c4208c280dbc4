package svd

import "github.com/svdkit/svd-go/pkg/model"

// finalizeProperties materializes the effective register properties
// through the scope chain: the register's own declarations, then each
// ancestor's, then the device defaults. Size must be declared
// somewhere along the chain; access defaults to read-write, resetValue
// to zero, and resetMask to all ones of the register size.
//
// This runs after derivation so that presence still means "written in
// the document (or inherited from a derivation target)", and before
// expansion so every array instance carries its effective values.
func finalizeProperties(t *tree) error {
	for _, p := range t.peripherals {
		if err := finalizeNode(t, p); err != nil {
			return err
		}
	}
	return nil
}

func finalizeNode(t *tree, n *node) error {
	if n.kind != kindRegister {
		for _, c := range n.children {
			if err := finalizeNode(t, c); err != nil {
				return err
			}
		}
		return nil
	}

	chain := t.propChain(n)

	size, ok := chainSize(chain)
	if !ok {
		return schemaErrorf(n.path(t.name), "%w: size", ErrMissingAttribute)
	}
	if size == 0 || size > 64 {
		return schemaErrorf(n.path(t.name), "%w: register size %d bits", ErrInvalidAttribute, size)
	}

	n.effective = effectiveProps{
		size:       size,
		access:     chainAccess(chain),
		protection: chainProtection(chain),
		resetValue: chainResetValue(chain),
		resetMask:  chainResetMask(chain, size),
	}
	return nil
}

func chainSize(chain []*props) (uint64, bool) {
	for _, p := range chain {
		if p.size != nil {
			return *p.size, true
		}
	}
	return 0, false
}

func chainAccess(chain []*props) model.Access {
	for _, p := range chain {
		if p.access != nil {
			return *p.access
		}
	}
	return model.AccessReadWrite
}

func chainProtection(chain []*props) string {
	for _, p := range chain {
		if p.protection != nil {
			return *p.protection
		}
	}
	return ""
}

func chainResetValue(chain []*props) uint64 {
	for _, p := range chain {
		if p.resetValue != nil {
			return *p.resetValue
		}
	}
	return 0
}

func chainResetMask(chain []*props, size uint64) uint64 {
	for _, p := range chain {
		if p.resetMask != nil {
			return *p.resetMask
		}
	}
	return onesMask(size)
}

// onesMask returns size low bits set; size is 1..64.
func onesMask(size uint64) uint64 {
	if size >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << size) - 1
}
