package model

import "strings"

// Path is the chain of names from the device root down to a node, used
// to locate the node in the source document when reporting errors.
type Path []string

// String renders the path with "/" separators, "TESTCHIP/TIM2/CR1".
func (p Path) String() string {
	return strings.Join(p, "/")
}

// Child returns a new path extended by one name. The receiver is not
// modified.
func (p Path) Child(name string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, name)
}
