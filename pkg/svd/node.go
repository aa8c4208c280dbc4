package svd

import (
	"slices"

	"github.com/svdkit/svd-go/pkg/model"
)

type nodeKind uint8

const (
	kindPeripheral nodeKind = iota
	kindCluster
	kindRegister
)

var nodeKindNames = []string{"peripheral", "cluster", "register"}

func (k nodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "unknown"
}

// resolveState marks derivation progress during the dependency walk.
type resolveState uint8

const (
	stateUnresolved resolveState = iota
	stateResolving
	stateResolved
)

// dimSpec is an unexpanded dim array declaration.
type dimSpec struct {
	count     uint64
	increment uint64
	index     string
}

// props carries the inheritable register properties of one scope.
// Pointers track presence: nil means the document does not set the
// property at this level.
type props struct {
	size       *uint64
	access     *model.Access
	protection *string
	resetValue *uint64
	resetMask  *uint64
}

// fillFrom copies properties absent on p from q. Used by the
// derivation overlay.
func (p *props) fillFrom(q *props) {
	if p.size == nil {
		p.size = cloneVal(q.size)
	}
	if p.access == nil {
		p.access = cloneVal(q.access)
	}
	if p.protection == nil {
		p.protection = cloneVal(q.protection)
	}
	if p.resetValue == nil {
		p.resetValue = cloneVal(q.resetValue)
	}
	if p.resetMask == nil {
		p.resetMask = cloneVal(q.resetMask)
	}
}

func (p *props) clone() props {
	return props{
		size:       cloneVal(p.size),
		access:     cloneVal(p.access),
		protection: cloneVal(p.protection),
		resetValue: cloneVal(p.resetValue),
		resetMask:  cloneVal(p.resetMask),
	}
}

func cloneVal[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// effectiveProps are the materialized register properties after
// inheritance and defaulting.
type effectiveProps struct {
	size       uint64
	access     model.Access
	protection string
	resetValue uint64
	resetMask  uint64
}

// fieldNode is the working form of a field.
type fieldNode struct {
	name        string
	description string
	dim         *dimSpec
	bitOffset   uint64
	bitWidth    uint64
	access      *model.Access
	enums       []model.EnumeratedValue
}

func (f *fieldNode) clone() *fieldNode {
	c := *f
	c.dim = cloneVal(f.dim)
	c.access = cloneVal(f.access)
	c.enums = slices.Clone(f.enums)
	return &c
}

// node is the working form of a peripheral, cluster, or register
// shared by the pipeline stages. The tree is mutable until assembly.
type node struct {
	kind        nodeKind
	name        string
	description string
	parent      *node // nil for peripherals

	derivedFrom string
	alternate   string
	dim         *dimSpec

	baseAddress *uint64 // peripherals
	offset      *uint64 // clusters and registers
	props       props

	// peripheral only
	version    string
	groupName  string
	blocks     []model.AddressBlock
	interrupts []model.Interrupt

	children []*node      // peripherals and clusters, declaration order
	fields   []*fieldNode // registers

	state      resolveState
	effective  effectiveProps
	addr       uint64
	byteSize   uint64
	altGroup   int
	alternates []string
	bitband    []uint64
}

// path returns the node path from the device root.
func (n *node) path(device string) model.Path {
	var names []string
	for cur := n; cur != nil; cur = cur.parent {
		names = append(names, cur.name)
	}
	names = append(names, device)
	slices.Reverse(names)
	return model.Path(names)
}

// clone deep-copies the node and its subtree. The copy's parent is
// left pointing at the original's parent; callers re-link it.
func (n *node) clone() *node {
	c := &node{}
	*c = *n
	c.dim = cloneVal(n.dim)
	c.baseAddress = cloneVal(n.baseAddress)
	c.offset = cloneVal(n.offset)
	c.props = n.props.clone()
	c.blocks = slices.Clone(n.blocks)
	c.interrupts = slices.Clone(n.interrupts)
	c.alternates = slices.Clone(n.alternates)
	c.bitband = slices.Clone(n.bitband)

	c.children = make([]*node, len(n.children))
	for i, child := range n.children {
		cc := child.clone()
		cc.parent = c
		c.children[i] = cc
	}
	c.fields = make([]*fieldNode, len(n.fields))
	for i, f := range n.fields {
		c.fields[i] = f.clone()
	}
	return c
}

// tree is the working device during resolution.
type tree struct {
	name            string
	description     string
	vendor          string
	vendorID        string
	series          string
	version         string
	addressUnitBits uint64
	width           uint64
	cpu             *model.CPU
	props           props
	peripherals     []*node
}

// walk visits every peripheral, cluster, and register depth-first in
// document order.
func (t *tree) walk(visit func(*node)) {
	var rec func(*node)
	rec = func(n *node) {
		visit(n)
		for _, c := range n.children {
			rec(c)
		}
	}
	for _, p := range t.peripherals {
		rec(p)
	}
}

// propChain returns the inheritable property scopes from the node
// outward: the node itself, its ancestors, then the device.
func (t *tree) propChain(n *node) []*props {
	var chain []*props
	for cur := n; cur != nil; cur = cur.parent {
		chain = append(chain, &cur.props)
	}
	return append(chain, &t.props)
}
