package wire

import "testing"

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeIndicator, "indicator"},
		{TypeBoolean, "boolean"},
		{TypeLong, "long"},
		{TypeByteArray, "byte[]"},
		{TypeDoubleArray, "double[]"},
		{TypeString, "string"},
		{TypeMessage, "message"},
		{TypeByteArray4, "byte[4]"},
		{TypeByteArray512, "byte[512]"},
		{TypeDateTime, "datetime"},
		{Type(16), "16"},
		{Type(200), "200"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", uint8(tt.typ), got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, typ := range Types() {
		got, ok := Lookup(typ.String())
		if !ok || got != typ {
			t.Errorf("Lookup(%q) = %v, %v", typ.String(), got, ok)
		}
	}
	if _, ok := Lookup("quaternion"); ok {
		t.Error("Lookup found an unregistered name")
	}
	if n := len(Types()); n != 28 {
		t.Errorf("len(Types()) = %d, want 28", n)
	}
}

func TestWidths(t *testing.T) {
	tests := []struct {
		typ       Type
		fixed     int
		isFixed   bool
		elemWidth int
	}{
		{TypeIndicator, 0, true, 0},
		{TypeBoolean, 1, true, 0},
		{TypeInt, 4, true, 0},
		{TypeDouble, 8, true, 0},
		{TypeByteArray, 0, false, 1},
		{TypeShortArray, 0, false, 2},
		{TypeLongArray, 0, false, 8},
		{TypeFloatArray, 0, false, 4},
		{TypeString, 0, false, 0},
		{TypeMessage, 0, false, 0},
		{TypeByteArray20, 20, true, 1},
		{TypeDate, 4, true, 0},
		{TypeTime, 8, true, 0},
		{TypeDateTime, 12, true, 0},
		{Type(200), 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			fixed, ok := tt.typ.FixedWidth()
			if ok != tt.isFixed || fixed != tt.fixed {
				t.Errorf("FixedWidth() = %d, %v, want %d, %v", fixed, ok, tt.fixed, tt.isFixed)
			}
			if got := tt.typ.ElementWidth(); got != tt.elemWidth {
				t.Errorf("ElementWidth() = %d, want %d", got, tt.elemWidth)
			}
		})
	}
}

func TestFixedByteArrayOf(t *testing.T) {
	for _, w := range []int{4, 8, 16, 20, 32, 64, 128, 256, 512} {
		typ, ok := FixedByteArrayOf(w)
		if !ok {
			t.Fatalf("FixedByteArrayOf(%d) not found", w)
		}
		if got, _ := typ.FixedWidth(); got != w {
			t.Errorf("FixedByteArrayOf(%d) has width %d", w, got)
		}
		if !typ.IsFixedByteArray() || !typ.IsByteArray() || typ.IsArray() {
			t.Errorf("%v classified wrongly", typ)
		}
	}
	if _, ok := FixedByteArrayOf(7); ok {
		t.Error("FixedByteArrayOf(7) should not exist")
	}
}

func TestIntRange(t *testing.T) {
	tests := []struct {
		typ       Type
		low, high int64
	}{
		{TypeByte, -128, 127},
		{TypeShort, -32768, 32767},
		{TypeInt, -2147483648, 2147483647},
		{TypeLong, -9223372036854775808, 9223372036854775807},
	}
	for _, tt := range tests {
		low, high, ok := tt.typ.IntRange()
		if !ok || low != tt.low || high != tt.high {
			t.Errorf("%v.IntRange() = %d, %d, %v", tt.typ, low, high, ok)
		}
	}
	if _, _, ok := TypeDouble.IntRange(); ok {
		t.Error("double should have no integer range")
	}
}

func TestStatus(t *testing.T) {
	if StatusOutOfBytes.String() != "out of bytes" {
		t.Errorf("String() = %q", StatusOutOfBytes.String())
	}
	if Status(250).String() != "unknown status" {
		t.Errorf("String() = %q", Status(250).String())
	}
	var err error = StatusNameTooLong
	if err.Error() != "fudge codec: field name too long" {
		t.Errorf("Error() = %q", err.Error())
	}
}
