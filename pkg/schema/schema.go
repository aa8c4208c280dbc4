// Package schema defines the raw document model for the supported CMSIS-SVD
// subset and decodes XML bytes into it.
//
// The types here mirror the document one to one and perform no resolution:
// derivedFrom references, dim arrays, alternate links, and inheritable
// register properties are carried through untouched. Optional and
// inheritable elements are pointer-typed so the resolution stages can tell
// an absent element apart from one explicitly set to a zero value.
package schema

import "encoding/xml"

// Device is the document root.
type Device struct {
	XMLName         xml.Name     `xml:"device"`
	Name            string       `xml:"name"`
	Description     string       `xml:"description"`
	Vendor          string       `xml:"vendor"`
	VendorID        string       `xml:"vendorID"`
	Series          string       `xml:"series"`
	Version         string       `xml:"version"`
	AddressUnitBits *Integer     `xml:"addressUnitBits"`
	Width           *Integer     `xml:"width"`
	CPU             *CPU         `xml:"cpu"`
	Size            *Integer     `xml:"size"`
	Access          string       `xml:"access"`
	Protection      string       `xml:"protection"`
	ResetValue      *Integer     `xml:"resetValue"`
	ResetMask       *Integer     `xml:"resetMask"`
	Peripherals     []Peripheral `xml:"peripherals>peripheral"`
}

// CPU describes the processor the device is built around.
type CPU struct {
	Name                string   `xml:"name"`
	Revision            string   `xml:"revision"`
	Endian              string   `xml:"endian"`
	MPUPresent          bool     `xml:"mpuPresent"`
	FPUPresent          bool     `xml:"fpuPresent"`
	NVICPrioBits        *Integer `xml:"nvicPrioBits"`
	VendorSystickConfig bool     `xml:"vendorSystickConfig"`
}

// Peripheral is a named, base-addressed block of registers.
type Peripheral struct {
	DerivedFrom         string         `xml:"derivedFrom,attr"`
	Dim                 *Integer       `xml:"dim"`
	DimIncrement        *Integer       `xml:"dimIncrement"`
	DimIndex            string         `xml:"dimIndex"`
	Name                string         `xml:"name"`
	Version             string         `xml:"version"`
	Description         string         `xml:"description"`
	AlternatePeripheral string         `xml:"alternatePeripheral"`
	GroupName           string         `xml:"groupName"`
	BaseAddress         *Integer       `xml:"baseAddress"`
	Size                *Integer       `xml:"size"`
	Access              string         `xml:"access"`
	Protection          string         `xml:"protection"`
	ResetValue          *Integer       `xml:"resetValue"`
	ResetMask           *Integer       `xml:"resetMask"`
	AddressBlocks       []AddressBlock `xml:"addressBlock"`
	Interrupts          []Interrupt    `xml:"interrupt"`
	Registers           []Register     `xml:"registers>register"`
	Clusters            []Cluster      `xml:"registers>cluster"`
}

// AddressBlock is a contiguous address range claimed by a peripheral.
type AddressBlock struct {
	Offset     *Integer `xml:"offset"`
	Size       *Integer `xml:"size"`
	Usage      string   `xml:"usage"`
	Protection string   `xml:"protection"`
}

// Interrupt associates a peripheral with an interrupt line.
type Interrupt struct {
	Name        string   `xml:"name"`
	Description string   `xml:"description"`
	Value       *Integer `xml:"value"`
}

// Cluster groups registers at a common offset inside a peripheral or
// another cluster.
type Cluster struct {
	DerivedFrom      string     `xml:"derivedFrom,attr"`
	Dim              *Integer   `xml:"dim"`
	DimIncrement     *Integer   `xml:"dimIncrement"`
	DimIndex         string     `xml:"dimIndex"`
	Name             string     `xml:"name"`
	Description      string     `xml:"description"`
	AlternateCluster string     `xml:"alternateCluster"`
	AddressOffset    *Integer   `xml:"addressOffset"`
	Size             *Integer   `xml:"size"`
	Access           string     `xml:"access"`
	Protection       string     `xml:"protection"`
	ResetValue       *Integer   `xml:"resetValue"`
	ResetMask        *Integer   `xml:"resetMask"`
	Registers        []Register `xml:"register"`
	Clusters         []Cluster  `xml:"cluster"`
}

// Register describes a single memory-mapped register.
type Register struct {
	DerivedFrom       string   `xml:"derivedFrom,attr"`
	Dim               *Integer `xml:"dim"`
	DimIncrement      *Integer `xml:"dimIncrement"`
	DimIndex          string   `xml:"dimIndex"`
	Name              string   `xml:"name"`
	Description       string   `xml:"description"`
	AlternateRegister string   `xml:"alternateRegister"`
	AddressOffset     *Integer `xml:"addressOffset"`
	Size              *Integer `xml:"size"`
	Access            string   `xml:"access"`
	Protection        string   `xml:"protection"`
	ResetValue        *Integer `xml:"resetValue"`
	ResetMask         *Integer `xml:"resetMask"`
	Fields            []Field  `xml:"fields>field"`
}

// Field describes a bit range within a register. The bit range may be
// given in any of the three CMSIS spellings: bitOffset plus bitWidth,
// lsb plus msb, or a textual bitRange "[msb:lsb]".
type Field struct {
	DerivedFrom      string            `xml:"derivedFrom,attr"`
	Dim              *Integer          `xml:"dim"`
	DimIncrement     *Integer          `xml:"dimIncrement"`
	DimIndex         string            `xml:"dimIndex"`
	Name             string            `xml:"name"`
	Description      string            `xml:"description"`
	BitOffset        *Integer          `xml:"bitOffset"`
	BitWidth         *Integer          `xml:"bitWidth"`
	LSB              *Integer          `xml:"lsb"`
	MSB              *Integer          `xml:"msb"`
	BitRange         string            `xml:"bitRange"`
	Access           string            `xml:"access"`
	EnumeratedValues *EnumeratedValues `xml:"enumeratedValues"`
}

// EnumeratedValues names the admissible values of a field.
type EnumeratedValues struct {
	Name   string            `xml:"name"`
	Usage  string            `xml:"usage"`
	Values []EnumeratedValue `xml:"enumeratedValue"`
}

// EnumeratedValue maps one field value to a name.
type EnumeratedValue struct {
	Name        string   `xml:"name"`
	Description string   `xml:"description"`
	Value       *Integer `xml:"value"`
	IsDefault   bool     `xml:"isDefault"`
}
