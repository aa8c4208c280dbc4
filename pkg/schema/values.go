package schema

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Integer is an SVD scaled integer. The document spells these as
// hexadecimal with an 0x or 0X prefix, octal with a leading zero, or
// plain decimal.
type Integer uint64

// UnmarshalXML implements xml.Unmarshaler.
func (n *Integer) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	v, err := ParseInteger(s)
	if err != nil {
		return err
	}
	*n = Integer(v)
	return nil
}

// Value returns the integer behind a possibly nil pointer, with ok
// reporting whether the element was present in the document.
func (n *Integer) Value() (v uint64, ok bool) {
	if n == nil {
		return 0, false
	}
	return uint64(*n), true
}

// ParseInteger parses an SVD integer literal: 0x/0X prefix for
// hexadecimal, a leading zero for octal, decimal otherwise.
func ParseInteger(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return 0, fmt.Errorf("empty integer literal")
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid hexadecimal literal %q", s)
		}
		return v, nil
	case len(s) > 1 && s[0] == '0':
		v, err := strconv.ParseUint(s[1:], 8, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid octal literal %q", s)
		}
		return v, nil
	default:
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid decimal literal %q", s)
		}
		return v, nil
	}
}

// ParseBitRange parses the textual bit range spelling "[msb:lsb]".
func ParseBitRange(s string) (msb, lsb uint64, err error) {
	t := strings.TrimSpace(s)
	t, ok := strings.CutPrefix(t, "[")
	if ok {
		t, ok = strings.CutSuffix(t, "]")
	}
	if !ok {
		return 0, 0, fmt.Errorf("invalid bit range %q: expected [msb:lsb]", s)
	}
	hi, lo, ok := strings.Cut(t, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid bit range %q: expected [msb:lsb]", s)
	}
	if msb, err = ParseInteger(hi); err != nil {
		return 0, 0, fmt.Errorf("invalid bit range %q: %v", s, err)
	}
	if lsb, err = ParseInteger(lo); err != nil {
		return 0, 0, fmt.Errorf("invalid bit range %q: %v", s, err)
	}
	if lsb > msb {
		return 0, 0, fmt.Errorf("invalid bit range %q: msb below lsb", s)
	}
	return msb, lsb, nil
}
