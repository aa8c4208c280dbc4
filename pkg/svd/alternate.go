package svd

import "log/slog"

// resolveAlternates links every alternatePeripheral, alternateCluster,
// and alternateRegister declaration into a symmetric group of nodes
// sharing one address region. Groups are transitive: if B alternates A
// and C alternates B, all three end up in one group. Members of a
// group are exempt from the sibling overlap check.
//
// Targets resolve within the declaring node's scope: peripherals at
// device level, clusters and registers among their siblings, always
// against the expanded instance names.
func resolveAlternates(t *tree, log *slog.Logger) error {
	l := &altLinker{tree: t, groups: make(map[int][]*node)}

	if err := l.linkScope(t.peripherals, kindPeripheral); err != nil {
		return err
	}

	var scopes []*node
	t.walk(func(n *node) {
		if n.kind != kindRegister {
			scopes = append(scopes, n)
		}
	})
	for _, parent := range scopes {
		if err := l.linkScope(parent.children, kindCluster); err != nil {
			return err
		}
		if err := l.linkScope(parent.children, kindRegister); err != nil {
			return err
		}
	}

	// Publish each member's view of its group, in join order.
	for _, members := range l.groups {
		for _, m := range members {
			names := make([]string, 0, len(members)-1)
			for _, other := range members {
				if other != m {
					names = append(names, other.name)
				}
			}
			m.alternates = names
		}
	}

	log.Debug("alternates linked", "groups", len(l.groups))
	return nil
}

type altLinker struct {
	tree   *tree
	next   int
	groups map[int][]*node
}

// linkScope joins every declaring node of the given kind in one
// sibling scope with its named target.
func (l *altLinker) linkScope(siblings []*node, kind nodeKind) error {
	for _, n := range siblings {
		if n.kind != kind || n.alternate == "" {
			continue
		}
		target := findSibling(siblings, kind, n.alternate)
		if target == nil {
			return &ResolutionError{
				Path: n.path(l.tree.name),
				Ref:  n.alternate,
				Kind: ErrMissingTarget,
			}
		}
		if target == n {
			continue
		}
		l.join(target, n)
	}
	return nil
}

func findSibling(siblings []*node, kind nodeKind, name string) *node {
	for _, s := range siblings {
		if s.kind == kind && s.name == name {
			return s
		}
	}
	return nil
}

// join merges the groups of target and declarer, creating or extending
// as needed. Fresh groups list the target first, so group order follows
// the chain of declarations.
func (l *altLinker) join(target, n *node) {
	switch {
	case target.altGroup == 0 && n.altGroup == 0:
		l.next++
		id := l.next
		target.altGroup, n.altGroup = id, id
		l.groups[id] = []*node{target, n}
	case target.altGroup == 0:
		target.altGroup = n.altGroup
		l.groups[n.altGroup] = append(l.groups[n.altGroup], target)
	case n.altGroup == 0:
		n.altGroup = target.altGroup
		l.groups[target.altGroup] = append(l.groups[target.altGroup], n)
	case target.altGroup != n.altGroup:
		into, from := target.altGroup, n.altGroup
		for _, m := range l.groups[from] {
			m.altGroup = into
		}
		l.groups[into] = append(l.groups[into], l.groups[from]...)
		delete(l.groups, from)
	}
}
