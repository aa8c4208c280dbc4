package model

import "fmt"

// Access is the permitted access mode of a register or field.
type Access uint8

const (
	// AccessReadWrite allows reads and writes. It is the default when a
	// document specifies no access anywhere along the inheritance chain.
	AccessReadWrite Access = iota

	// AccessReadOnly allows reads only.
	AccessReadOnly

	// AccessWriteOnly allows writes only.
	AccessWriteOnly

	// AccessWriteOnce allows a single write after reset.
	AccessWriteOnce

	// AccessReadWriteOnce allows reads and a single write after reset.
	AccessReadWriteOnce
)

var accessNames = []string{
	"read-write", "read-only", "write-only", "writeOnce", "read-writeOnce",
}

// String returns the SVD spelling of the access mode.
func (a Access) String() string {
	if int(a) < len(accessNames) {
		return accessNames[a]
	}
	return "unknown"
}

// IsReadable returns true if the mode permits reads.
func (a Access) IsReadable() bool {
	switch a {
	case AccessReadWrite, AccessReadOnly, AccessReadWriteOnce:
		return true
	}
	return false
}

// IsWritable returns true if the mode permits at least one write.
func (a Access) IsWritable() bool {
	switch a {
	case AccessReadWrite, AccessWriteOnly, AccessWriteOnce, AccessReadWriteOnce:
		return true
	}
	return false
}

// ParseAccess parses an SVD access spelling.
func ParseAccess(s string) (Access, error) {
	for i, name := range accessNames {
		if s == name {
			return Access(i), nil
		}
	}
	return 0, fmt.Errorf("unknown access mode %q", s)
}
