package svd

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
)

// calculateAddresses computes every node's absolute address top-down
// (parent address plus own offset, breadth-first so parents are always
// done first), then validates that no two non-alternate siblings claim
// intersecting address ranges.
//
// Range sizes: registers span their byte footprint, clusters span from
// their start to the end of their furthest child, and peripherals
// occupy their declared address blocks, reserved blocks included. A
// peripheral without address blocks claims nothing at device level.
func calculateAddresses(t *tree, log *slog.Logger) error {
	queue := make([]*node, 0, len(t.peripherals))
	for _, p := range t.peripherals {
		p.addr = *p.baseAddress
		queue = append(queue, p)
	}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, c := range parent.children {
			c.addr = parent.addr + *c.offset
			if c.kind == kindCluster {
				queue = append(queue, c)
			}
		}
	}

	for _, p := range t.peripherals {
		computeExtent(p)
	}

	if err := checkBlockOverlap(t); err != nil {
		return err
	}
	var overlapErr error
	t.walk(func(n *node) {
		if overlapErr == nil && n.kind != kindRegister {
			overlapErr = checkSiblingOverlap(t, n.children)
		}
	})
	if overlapErr != nil {
		return overlapErr
	}

	log.Debug("addresses calculated", "peripherals", len(t.peripherals))
	return nil
}

// computeExtent fills byteSize bottom-up: a register's byte footprint,
// or a cluster's span from its start to the end of its furthest child.
func computeExtent(n *node) uint64 {
	if n.kind == kindRegister {
		n.byteSize = (n.effective.size + 7) / 8
		return n.byteSize
	}
	var extent uint64
	for _, c := range n.children {
		end := *c.offset + computeExtent(c)
		if end > extent {
			extent = end
		}
	}
	n.byteSize = extent
	return extent
}

// span is one claimed address range during overlap checking.
type span struct {
	lo, hi uint64
	owner  *node
}

// checkOverlap reports the first pair of spans from different,
// non-alternate owners whose ranges intersect. Spans are sorted by
// start; each span is compared against followers until they start past
// its end.
func checkOverlap(t *tree, spans []span) error {
	slices.SortStableFunc(spans, func(a, b span) int {
		return cmp.Compare(a.lo, b.lo)
	})
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			if spans[j].lo >= spans[i].hi {
				break
			}
			a, b := spans[i].owner, spans[j].owner
			if a == b {
				continue
			}
			if a.altGroup != 0 && a.altGroup == b.altGroup {
				continue
			}
			return &ValidationError{
				Path:      a.path(t.name),
				OtherPath: b.path(t.name),
				Kind:      ErrAddressOverlap,
				Detail: fmt.Sprintf("[%#x, %#x) intersects [%#x, %#x)",
					spans[i].lo, spans[i].hi, spans[j].lo, spans[j].hi),
			}
		}
	}
	return nil
}

// checkBlockOverlap validates the device scope: the address blocks of
// non-alternate peripherals must not intersect.
func checkBlockOverlap(t *tree) error {
	var spans []span
	for _, p := range t.peripherals {
		for _, b := range p.blocks {
			if b.Size == 0 {
				continue
			}
			spans = append(spans, span{
				lo:    p.addr + b.Offset,
				hi:    p.addr + b.Offset + b.Size,
				owner: p,
			})
		}
	}
	return checkOverlap(t, spans)
}

// checkSiblingOverlap validates one register/cluster sibling scope.
func checkSiblingOverlap(t *tree, siblings []*node) error {
	var spans []span
	for _, c := range siblings {
		if c.byteSize == 0 {
			continue
		}
		spans = append(spans, span{lo: c.addr, hi: c.addr + c.byteSize, owner: c})
	}
	return checkOverlap(t, spans)
}
