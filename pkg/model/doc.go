// Package model implements the resolved SVD device data model.
//
// # Device Model Hierarchy
//
// A device description resolves into a four-level hierarchy:
//
//	Device > Peripheral > (Cluster | Register) > Field
//
// A Device represents one microcontroller. Devices contain Peripherals,
// each a named block of registers at a base address. Peripherals contain
// Registers, optionally grouped into nested Clusters. Registers contain
// Fields, which name bit ranges within the register value.
//
// # Resolution
//
// Values of this package are produced by the parsing pipeline with every
// document-level indirection already resolved:
//
//	Device (STM32F103)
//	├── TIM2 @ 0x40000000
//	│   ├── CR1  @ 0x40000000 (32 bits, read-write, reset 0x0)
//	│   │   ├── CEN  [0:0]
//	│   │   └── DIR  [4:4]
//	│   └── CCR0..CCR3 (expanded from CCR[%s])
//	└── TIM3 @ 0x40000400 (derived from TIM2)
//
// derivedFrom references are flattened away, dim arrays are expanded into
// concrete instances, inheritable register properties carry their
// effective values, and every addressable node has an absolute address.
// Alternate declarations survive as symmetric cross-reference groups.
//
// # Immutability
//
// The graph is constructed once and never mutated afterwards. Accessors
// return copies of internal slices, so a Device and everything below it
// may be shared freely between goroutines without locking.
//
// # Addressing
//
// Nodes are addressed by name chains:
//
//	Device.GetPeripheral("TIM2")
//	Peripheral.GetRegister("CR1")
//	Register.GetField("CEN")
//
// and every node carries its Path, the chain of names from the device
// root used in diagnostics.
package model
