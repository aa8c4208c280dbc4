package schema

import "testing"

func TestParseInteger(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"42", 42},
		{"0x40000000", 0x40000000},
		{"0X1C", 0x1c},
		{"010", 8},
		{"0xDEADBEEF", 0xdeadbeef},
		{" 16 ", 16},
		{"0xFFFFFFFFFFFFFFFF", 0xffffffffffffffff},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInteger(tt.in)
			if err != nil {
				t.Fatalf("ParseInteger(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseInteger(%q) = %#x, want %#x", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseIntegerInvalid(t *testing.T) {
	for _, in := range []string{"", "0x", "0xZZ", "08", "twelve", "-4"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseInteger(in); err == nil {
				t.Errorf("ParseInteger(%q) should fail", in)
			}
		})
	}
}

func TestParseBitRange(t *testing.T) {
	msb, lsb, err := ParseBitRange("[7:4]")
	if err != nil {
		t.Fatalf("ParseBitRange failed: %v", err)
	}
	if msb != 7 || lsb != 4 {
		t.Errorf("ParseBitRange([7:4]) = (%d, %d), want (7, 4)", msb, lsb)
	}

	msb, lsb, err = ParseBitRange(" [0:0] ")
	if err != nil {
		t.Fatalf("ParseBitRange failed: %v", err)
	}
	if msb != 0 || lsb != 0 {
		t.Errorf("ParseBitRange([0:0]) = (%d, %d), want (0, 0)", msb, lsb)
	}
}

func TestParseBitRangeInvalid(t *testing.T) {
	for _, in := range []string{"", "7:4", "[7-4]", "[4:7]", "[a:b]", "[7:4"} {
		t.Run(in, func(t *testing.T) {
			if _, _, err := ParseBitRange(in); err == nil {
				t.Errorf("ParseBitRange(%q) should fail", in)
			}
		})
	}
}

func TestIntegerValue(t *testing.T) {
	var absent *Integer
	if _, ok := absent.Value(); ok {
		t.Error("nil Integer should report absent")
	}

	present := Integer(0x20)
	v, ok := (&present).Value()
	if !ok || v != 0x20 {
		t.Errorf("Value() = (%#x, %v), want (0x20, true)", v, ok)
	}
}
