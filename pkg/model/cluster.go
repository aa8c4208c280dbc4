package model

import "fmt"

// ClusterSpec describes a resolved cluster for construction.
type ClusterSpec struct {
	Name        string
	Description string
	Offset      uint64
	Address     uint64
	ByteSize    uint64
	AlternateOf string
	Alternates  []string
	Clusters    []*Cluster
	Registers   []*Register
	Path        Path
}

// Cluster groups registers at a common offset inside a peripheral or
// another cluster. It is immutable after construction.
type Cluster struct {
	name        string
	description string
	offset      uint64
	address     uint64
	byteSize    uint64
	alternateOf string
	alternates  []string
	path        Path

	clusters  []*Cluster
	registers []*Register
	byName    map[string]any
}

// NewCluster creates a cluster from its resolved parts. Nested
// clusters and registers share one namespace.
func NewCluster(spec *ClusterSpec) (*Cluster, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: cluster", ErrMissingName)
	}

	c := &Cluster{
		name:        spec.Name,
		description: spec.Description,
		offset:      spec.Offset,
		address:     spec.Address,
		byteSize:    spec.ByteSize,
		alternateOf: spec.AlternateOf,
		alternates:  append([]string(nil), spec.Alternates...),
		path:        spec.Path,
		clusters:    append([]*Cluster(nil), spec.Clusters...),
		registers:   append([]*Register(nil), spec.Registers...),
		byName:      make(map[string]any, len(spec.Clusters)+len(spec.Registers)),
	}

	for _, sub := range c.clusters {
		if _, exists := c.byName[sub.Name()]; exists {
			return nil, fmt.Errorf("%w: %q in cluster %q", ErrDuplicateName, sub.Name(), c.name)
		}
		c.byName[sub.Name()] = sub
	}
	for _, r := range c.registers {
		if _, exists := c.byName[r.Name()]; exists {
			return nil, fmt.Errorf("%w: %q in cluster %q", ErrDuplicateName, r.Name(), c.name)
		}
		c.byName[r.Name()] = r
	}

	return c, nil
}

// Name returns the cluster name.
func (c *Cluster) Name() string {
	return c.name
}

// Description returns the cluster description.
func (c *Cluster) Description() string {
	return c.description
}

// Offset returns the address offset relative to the parent.
func (c *Cluster) Offset() uint64 {
	return c.offset
}

// Address returns the absolute address of the cluster.
func (c *Cluster) Address() uint64 {
	return c.address
}

// ByteSize returns the extent of the cluster in bytes, from its start
// to the end of its furthest child.
func (c *Cluster) ByteSize() uint64 {
	return c.byteSize
}

// AlternateOf returns the declared alternate target name, or empty.
func (c *Cluster) AlternateOf() string {
	return c.alternateOf
}

// Alternates returns the names of all sibling clusters sharing this
// cluster's address region, this one excluded.
func (c *Cluster) Alternates() []string {
	return append([]string(nil), c.alternates...)
}

// Path returns the node path from the device root.
func (c *Cluster) Path() Path {
	return append(Path(nil), c.path...)
}

// GetCluster returns a nested cluster by name.
func (c *Cluster) GetCluster(name string) (*Cluster, error) {
	if sub, ok := c.byName[name].(*Cluster); ok {
		return sub, nil
	}
	return nil, fmt.Errorf("%w: %q in cluster %q", ErrClusterNotFound, name, c.name)
}

// GetRegister returns a register by name.
func (c *Cluster) GetRegister(name string) (*Register, error) {
	if r, ok := c.byName[name].(*Register); ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: %q in cluster %q", ErrRegisterNotFound, name, c.name)
}

// Clusters returns the nested clusters ordered by address offset.
func (c *Cluster) Clusters() []*Cluster {
	return append([]*Cluster(nil), c.clusters...)
}

// Registers returns the registers ordered by address offset.
func (c *Cluster) Registers() []*Register {
	return append([]*Register(nil), c.registers...)
}

// AllRegisters returns every register in the cluster, nested clusters
// included, in depth-first address order.
func (c *Cluster) AllRegisters() []*Register {
	result := append([]*Register(nil), c.registers...)
	for _, sub := range c.clusters {
		result = append(result, sub.AllRegisters()...)
	}
	return result
}
