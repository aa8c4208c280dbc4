// Package svd parses CMSIS-SVD documents into fully resolved device
// models.
//
// An SVD document describes a microcontroller's memory-mapped
// peripherals. The document format leans heavily on indirection:
// elements derive from other elements, arrays stand for many instances,
// register properties inherit from enclosing scopes, and several
// elements may share one address region as alternates. Parse flattens
// all of it into the immutable model of package model.
//
// # Pipeline
//
// Parse runs a fixed sequence of stages over the document:
//
//	decode     raw XML into the schema document model
//	build      typed working tree, required attribute checks
//	derive     resolve derivedFrom references (cycle and target checks)
//	expand     materialize dim arrays into concrete instances
//	alternate  link alternatePeripheral/Cluster/Register groups
//	address    absolute addresses plus sibling overlap validation
//	bitband    optional bit-band alias addresses per configured region
//	assemble   frozen model.Device
//
// Each stage fails fast: the first error aborts the parse and carries
// the node path of the offending element.
//
// # Errors
//
// Failures are reported as *SchemaError, *ResolutionError, or
// *ValidationError. Each wraps a sentinel usable with errors.Is:
//
//	dev, err := svd.Parse(data, svd.Config{})
//	if errors.Is(err, svd.ErrDerivationCycle) {
//		...
//	}
//
// # Configuration
//
// The zero Config is valid: no bit-band generation and no logging.
// Bit-band regions differ between silicon families and are never
// defaulted; callers name them explicitly or load them from a YAML
// profile with LoadConfig.
package svd
