package svd

import (
	"errors"
	"fmt"

	"github.com/svdkit/svd-go/pkg/model"
)

// Sentinel errors wrapped by the typed error values below.
var (
	// ErrMissingAttribute indicates a required element is absent with no
	// inheritable fallback.
	ErrMissingAttribute = errors.New("missing required attribute")

	// ErrInvalidAttribute indicates an element value outside the
	// supported SVD subset.
	ErrInvalidAttribute = errors.New("invalid attribute")

	// ErrDimensionMismatch indicates a dimIndex list whose length does
	// not match dim.
	ErrDimensionMismatch = errors.New("dimension index mismatch")

	// ErrMissingTarget indicates a derivedFrom or alternate reference
	// naming a nonexistent target.
	ErrMissingTarget = errors.New("reference target not found")

	// ErrDerivationCycle indicates a circular derivedFrom chain.
	ErrDerivationCycle = errors.New("derivation cycle")

	// ErrAddressOverlap indicates two non-alternate siblings with
	// intersecting address ranges.
	ErrAddressOverlap = errors.New("address range overlap")

	// ErrBitBandConfig indicates an invalid bit-band region pair.
	ErrBitBandConfig = errors.New("invalid bit-band region")
)

// SchemaError reports a document violating the supported SVD subset:
// a missing or malformed element, a dimension mismatch, or a duplicate
// name.
type SchemaError struct {
	// Path locates the offending node in the document.
	Path model.Path

	// Err is the underlying cause.
	Err error
}

func (e *SchemaError) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func schemaErrorf(path model.Path, format string, args ...any) error {
	return &SchemaError{Path: path, Err: fmt.Errorf(format, args...)}
}

// ResolutionError reports a derivedFrom or alternate reference that
// cannot be resolved.
type ResolutionError struct {
	// Path locates the referring node.
	Path model.Path

	// Ref is the reference as written in the document.
	Ref string

	// Kind is ErrMissingTarget or ErrDerivationCycle.
	Kind error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: reference %q: %v", e.Path, e.Ref, e.Kind)
}

func (e *ResolutionError) Unwrap() error {
	return e.Kind
}

// ValidationError reports a structurally valid document describing an
// inconsistent device, or an inconsistent configuration.
type ValidationError struct {
	// Path locates the first involved node; empty for configuration
	// errors.
	Path model.Path

	// OtherPath locates the second involved node for overlap errors.
	OtherPath model.Path

	// Kind is ErrAddressOverlap or ErrBitBandConfig.
	Kind error

	// Detail describes the violation, including both address ranges for
	// overlaps.
	Detail string
}

func (e *ValidationError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
	if len(e.OtherPath) == 0 {
		return fmt.Sprintf("%s: %v: %s", e.Path, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s and %s: %v: %s", e.Path, e.OtherPath, e.Kind, e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}
