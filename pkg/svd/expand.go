package svd

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/svdkit/svd-go/pkg/model"
)

// expandArrays materializes every dim array into count concrete
// instances. Instance i keeps the declaration but substitutes its
// index token into the name and shifts its address by i times the
// increment. Expansion recurses: children of an expanded cluster are
// expanded relative to the instance, and register fields with a dim
// step along the bit axis.
func expandArrays(t *tree, log *slog.Logger) error {
	before := len(t.peripherals)

	expanded := make([]*node, 0, len(t.peripherals))
	for _, p := range t.peripherals {
		instances, err := expandNode(t, p)
		if err != nil {
			return err
		}
		expanded = append(expanded, instances...)
	}
	t.peripherals = expanded

	log.Debug("arrays expanded", "peripherals", len(t.peripherals), "declared", before)
	return nil
}

// expandNode turns one node into its concrete instances (itself when
// it carries no dim) with fully expanded subtrees.
func expandNode(t *tree, n *node) ([]*node, error) {
	if n.dim == nil {
		if err := expandBelow(t, n); err != nil {
			return nil, err
		}
		return []*node{n}, nil
	}

	tokens, err := dimTokens(n.dim, n.path(t.name))
	if err != nil {
		return nil, err
	}
	if !strings.Contains(n.name, "%s") {
		return nil, schemaErrorf(n.path(t.name), "%w: array name %q has no index placeholder", ErrInvalidAttribute, n.name)
	}

	instances := make([]*node, 0, len(tokens))
	for i, token := range tokens {
		inst := n.clone()
		inst.dim = nil
		inst.name = expandName(n.name, token)
		inst.description = strings.ReplaceAll(n.description, "%s", token)
		step := uint64(i) * n.dim.increment
		if inst.baseAddress != nil {
			*inst.baseAddress += step
		}
		if inst.offset != nil {
			*inst.offset += step
		}
		if err := expandBelow(t, inst); err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// expandBelow expands the node's children or fields in place.
func expandBelow(t *tree, n *node) error {
	if n.kind == kindRegister {
		return expandFields(t, n)
	}

	children := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		instances, err := expandNode(t, c)
		if err != nil {
			return err
		}
		for _, inst := range instances {
			inst.parent = n
			children = append(children, inst)
		}
	}
	n.children = children
	return nil
}

func expandFields(t *tree, reg *node) error {
	fields := make([]*fieldNode, 0, len(reg.fields))
	for _, f := range reg.fields {
		if f.dim == nil {
			fields = append(fields, f)
			continue
		}
		path := reg.path(t.name).Child(f.name)
		tokens, err := dimTokens(f.dim, path)
		if err != nil {
			return err
		}
		if !strings.Contains(f.name, "%s") {
			return schemaErrorf(path, "%w: array name %q has no index placeholder", ErrInvalidAttribute, f.name)
		}
		for i, token := range tokens {
			inst := f.clone()
			inst.dim = nil
			inst.name = expandName(f.name, token)
			inst.description = strings.ReplaceAll(f.description, "%s", token)
			// Field arrays step along the bit axis.
			inst.bitOffset = f.bitOffset + uint64(i)*f.dim.increment
			fields = append(fields, inst)
		}
	}
	reg.fields = fields
	return nil
}

// expandName substitutes an index token into a name template. The
// C-array spelling "NAME[%s]" becomes "NAME_token"; otherwise every
// "%s" is replaced by the token.
func expandName(template, token string) string {
	if base, ok := strings.CutSuffix(template, "[%s]"); ok {
		return base + "_" + token
	}
	return strings.ReplaceAll(template, "%s", token)
}

// dimTokens produces the index tokens of a dim declaration: the
// explicit comma-separated list, the numeric range "a-b", or 0..count-1
// when dimIndex is absent. An explicit spelling must match count.
func dimTokens(spec *dimSpec, path model.Path) ([]string, error) {
	count := int(spec.count)

	if spec.index == "" {
		tokens := make([]string, count)
		for i := range tokens {
			tokens[i] = strconv.Itoa(i)
		}
		return tokens, nil
	}

	if strings.Contains(spec.index, ",") {
		parts := strings.Split(spec.index, ",")
		tokens := make([]string, len(parts))
		for i, part := range parts {
			tokens[i] = strings.TrimSpace(part)
		}
		if len(tokens) != count {
			return nil, dimMismatch(path, len(tokens), count)
		}
		return tokens, nil
	}

	if lo, hi, ok := numericRange(spec.index); ok {
		tokens := make([]string, 0, hi-lo+1)
		for v := lo; v <= hi; v++ {
			tokens = append(tokens, strconv.FormatUint(v, 10))
		}
		if len(tokens) != count {
			return nil, dimMismatch(path, len(tokens), count)
		}
		return tokens, nil
	}

	// A single literal token.
	if count != 1 {
		return nil, dimMismatch(path, 1, count)
	}
	return []string{spec.index}, nil
}

func dimMismatch(path model.Path, have, want int) error {
	return schemaErrorf(path, "%w: dimIndex yields %d tokens, dim is %d", ErrDimensionMismatch, have, want)
}

func numericRange(s string) (lo, hi uint64, ok bool) {
	first, second, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	lo, err := strconv.ParseUint(strings.TrimSpace(first), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.ParseUint(strings.TrimSpace(second), 10, 64)
	if err != nil || hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}
