package inspect

import (
	"errors"
	"fmt"

	"github.com/svdkit/svd-go/pkg/model"
)

// Inspector errors.
var (
	ErrNotFound      = errors.New("path not found")
	ErrTrailingField = errors.New("fields have no children")
)

// Inspector resolves inspection paths against a device model.
type Inspector struct {
	device *model.Device
}

// NewInspector creates a new Inspector for the given device.
func NewInspector(device *model.Device) *Inspector {
	return &Inspector{device: device}
}

// Device returns the underlying device model.
func (i *Inspector) Device() *model.Device {
	return i.device
}

// Resolve walks a path and returns the node it names: a
// *model.Peripheral, *model.Cluster, *model.Register, or *model.Field.
func (i *Inspector) Resolve(p Path) (any, error) {
	if len(p.Segments) == 0 {
		return nil, ErrEmptyPath
	}

	peripheral, err := i.device.GetPeripheral(p.Segments[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}

	var cur any = peripheral
	for _, name := range p.Segments[1:] {
		next, err := childOf(cur, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, p)
		}
		cur = next
	}
	return cur, nil
}

// ResolveRegister resolves a path that must name a register.
func (i *Inspector) ResolveRegister(p Path) (*model.Register, error) {
	node, err := i.Resolve(p)
	if err != nil {
		return nil, err
	}
	r, ok := node.(*model.Register)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a register", ErrNotFound, p)
	}
	return r, nil
}

// FindByAddress returns every register whose byte range covers addr,
// in document order. Alternate interpretations of one address all
// appear.
func (i *Inspector) FindByAddress(addr uint64) []*model.Register {
	var hits []*model.Register
	for _, p := range i.device.Peripherals() {
		for _, r := range p.AllRegisters() {
			if addr >= r.Address() && addr < r.Address()+r.ByteSize() {
				hits = append(hits, r)
			}
		}
	}
	return hits
}

// Children lists the child names of the node a path names; an empty
// path lists the peripherals.
func (i *Inspector) Children(p Path) ([]string, error) {
	if len(p.Segments) == 0 {
		names := make([]string, 0, i.device.PeripheralCount())
		for _, peripheral := range i.device.Peripherals() {
			names = append(names, peripheral.Name())
		}
		return names, nil
	}

	node, err := i.Resolve(p)
	if err != nil {
		return nil, err
	}
	return childNames(node), nil
}

func childOf(node any, name string) (any, error) {
	switch n := node.(type) {
	case *model.Peripheral:
		if c, err := n.GetCluster(name); err == nil {
			return c, nil
		}
		if r, err := n.GetRegister(name); err == nil {
			return r, nil
		}
	case *model.Cluster:
		if c, err := n.GetCluster(name); err == nil {
			return c, nil
		}
		if r, err := n.GetRegister(name); err == nil {
			return r, nil
		}
	case *model.Register:
		if f, err := n.GetField(name); err == nil {
			return f, nil
		}
	case *model.Field:
		return nil, ErrTrailingField
	}
	return nil, ErrNotFound
}

func childNames(node any) []string {
	var names []string
	switch n := node.(type) {
	case *model.Peripheral:
		for _, c := range n.Clusters() {
			names = append(names, c.Name())
		}
		for _, r := range n.Registers() {
			names = append(names, r.Name())
		}
	case *model.Cluster:
		for _, c := range n.Clusters() {
			names = append(names, c.Name())
		}
		for _, r := range n.Registers() {
			names = append(names, r.Name())
		}
	case *model.Register:
		for _, f := range n.Fields() {
			names = append(names, f.Name())
		}
	}
	return names
}
