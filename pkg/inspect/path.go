// Package inspect provides path addressing and display formatting over
// resolved device models.
//
// The inspect package offers a unified surface for:
//   - Parsing path expressions (e.g., "TIM2/CR1/CEN")
//   - Resolving paths to peripherals, clusters, registers, and fields
//   - Locating registers by absolute address
//   - Formatting the device tree for display
package inspect

import (
	"errors"
	"fmt"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath   = errors.New("empty path")
	ErrInvalidPath = errors.New("invalid path format")
)

// Path is a parsed inspection path: slash-separated node names from a
// peripheral downward.
//
// Supported forms:
//   - "TIM2" - a peripheral
//   - "TIM2/CR1" - a register (or cluster)
//   - "DMA1/CH1/CCR" - a register inside a cluster
//   - "TIM2/CR1/CEN" - a field
type Path struct {
	// Segments are the node names, peripheral first.
	Segments []string

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string. Leading and trailing slashes are
// tolerated; empty segments are not.
func ParsePath(s string) (Path, error) {
	raw := s
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return Path{}, ErrEmptyPath
	}
	segments := strings.Split(s, "/")
	for _, seg := range segments {
		if seg == "" {
			return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, raw)
		}
	}
	return Path{Segments: segments, Raw: raw}, nil
}

// String renders the path in canonical form.
func (p Path) String() string {
	return strings.Join(p.Segments, "/")
}

// Peripheral returns the leading peripheral name.
func (p Path) Peripheral() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[0]
}

// Child returns the path extended by one name.
func (p Path) Child(name string) Path {
	segments := make([]string, len(p.Segments), len(p.Segments)+1)
	copy(segments, p.Segments)
	segments = append(segments, name)
	return Path{Segments: segments, Raw: strings.Join(segments, "/")}
}

// Parent returns the path with its last segment removed, and ok
// reporting whether there was one to remove.
func (p Path) Parent() (Path, bool) {
	if len(p.Segments) < 2 {
		return Path{}, false
	}
	segments := p.Segments[:len(p.Segments)-1]
	return Path{Segments: segments, Raw: strings.Join(segments, "/")}, true
}
