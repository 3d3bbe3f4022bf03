package wire

import "strconv"

// Type identifies a Fudge field type. Ids 0–255 are reserved; ids without an
// entry in the registry are unknown types carried as raw bytes.
type Type uint8

const (
	TypeIndicator    Type = 0
	TypeBoolean      Type = 1
	TypeByte         Type = 2
	TypeShort        Type = 3
	TypeInt          Type = 4
	TypeLong         Type = 5
	TypeByteArray    Type = 6
	TypeShortArray   Type = 7
	TypeIntArray     Type = 8
	TypeLongArray    Type = 9
	TypeFloat        Type = 10
	TypeDouble       Type = 11
	TypeFloatArray   Type = 12
	TypeDoubleArray  Type = 13
	TypeString       Type = 14
	TypeMessage      Type = 15
	TypeByteArray4   Type = 17
	TypeByteArray8   Type = 18
	TypeByteArray16  Type = 19
	TypeByteArray20  Type = 20
	TypeByteArray32  Type = 21
	TypeByteArray64  Type = 22
	TypeByteArray128 Type = 23
	TypeByteArray256 Type = 24
	TypeByteArray512 Type = 25
	TypeDate         Type = 26
	TypeTime         Type = 27
	TypeDateTime     Type = 28
)

type typeInfo struct {
	name       string
	fixedWidth int // -1 for variable width
	elemWidth  int // 0 for non-array kinds
}

var registry = [...]typeInfo{
	TypeIndicator:    {"indicator", 0, 0},
	TypeBoolean:      {"boolean", 1, 0},
	TypeByte:         {"byte", 1, 0},
	TypeShort:        {"short", 2, 0},
	TypeInt:          {"int", 4, 0},
	TypeLong:         {"long", 8, 0},
	TypeByteArray:    {"byte[]", -1, 1},
	TypeShortArray:   {"short[]", -1, 2},
	TypeIntArray:     {"int[]", -1, 4},
	TypeLongArray:    {"long[]", -1, 8},
	TypeFloat:        {"float", 4, 0},
	TypeDouble:       {"double", 8, 0},
	TypeFloatArray:   {"float[]", -1, 4},
	TypeDoubleArray:  {"double[]", -1, 8},
	TypeString:       {"string", -1, 0},
	TypeMessage:      {"message", -1, 0},
	TypeByteArray4:   {"byte[4]", 4, 1},
	TypeByteArray8:   {"byte[8]", 8, 1},
	TypeByteArray16:  {"byte[16]", 16, 1},
	TypeByteArray20:  {"byte[20]", 20, 1},
	TypeByteArray32:  {"byte[32]", 32, 1},
	TypeByteArray64:  {"byte[64]", 64, 1},
	TypeByteArray128: {"byte[128]", 128, 1},
	TypeByteArray256: {"byte[256]", 256, 1},
	TypeByteArray512: {"byte[512]", 512, 1},
	TypeDate:         {"date", 4, 0},
	TypeTime:         {"time", 8, 0},
	TypeDateTime:     {"datetime", 12, 0},
}

var byName = func() map[string]Type {
	m := make(map[string]Type, len(registry))
	for i, info := range registry {
		if info.name != "" {
			m[info.name] = Type(i)
		}
	}
	return m
}()

var fixedByteArrays = map[int]Type{
	4:   TypeByteArray4,
	8:   TypeByteArray8,
	16:  TypeByteArray16,
	20:  TypeByteArray20,
	32:  TypeByteArray32,
	64:  TypeByteArray64,
	128: TypeByteArray128,
	256: TypeByteArray256,
	512: TypeByteArray512,
}

func (t Type) info() (typeInfo, bool) {
	if int(t) < len(registry) && registry[t].name != "" {
		return registry[t], true
	}
	return typeInfo{}, false
}

// String returns the registry name, or the decimal id for unknown types.
func (t Type) String() string {
	if info, ok := t.info(); ok {
		return info.name
	}
	return strconv.Itoa(int(t))
}

// Known reports whether t is in the registry.
func (t Type) Known() bool {
	_, ok := t.info()
	return ok
}

// FixedWidth returns the payload width of fixed-width kinds.
func (t Type) FixedWidth() (int, bool) {
	info, ok := t.info()
	if !ok || info.fixedWidth < 0 {
		return 0, false
	}
	return info.fixedWidth, true
}

// ElementWidth returns the width of one element for array kinds (including
// fixed byte arrays), or 0.
func (t Type) ElementWidth() int {
	info, _ := t.info()
	return info.elemWidth
}

// IsArray reports whether t is a variable-length typed array, byte[] included.
func (t Type) IsArray() bool {
	switch t {
	case TypeByteArray, TypeShortArray, TypeIntArray, TypeLongArray, TypeFloatArray, TypeDoubleArray:
		return true
	}
	return false
}

// IsFixedByteArray reports whether t is one of byte[4] .. byte[512].
func (t Type) IsFixedByteArray() bool {
	return t >= TypeByteArray4 && t <= TypeByteArray512
}

// IsByteArray reports whether t is byte[] or a fixed byte array.
func (t Type) IsByteArray() bool {
	return t == TypeByteArray || t.IsFixedByteArray()
}

// IsInteger reports whether t is one of the four signed integer kinds.
func (t Type) IsInteger() bool {
	return t >= TypeByte && t <= TypeLong
}

// IsFloat reports whether t is float or double.
func (t Type) IsFloat() bool {
	return t == TypeFloat || t == TypeDouble
}

// IntRange returns the inclusive signed range of an integer kind.
func (t Type) IntRange() (low, high int64, ok bool) {
	switch t {
	case TypeByte:
		return -1 << 7, 1<<7 - 1, true
	case TypeShort:
		return -1 << 15, 1<<15 - 1, true
	case TypeInt:
		return -1 << 31, 1<<31 - 1, true
	case TypeLong:
		return -1 << 63, 1<<63 - 1, true
	}
	return 0, 0, false
}

// Lookup returns the type registered under name.
func Lookup(name string) (Type, bool) {
	t, ok := byName[name]
	return t, ok
}

// FixedByteArrayOf returns the fixed byte array type of the given width.
func FixedByteArrayOf(width int) (Type, bool) {
	t, ok := fixedByteArrays[width]
	return t, ok
}

// Types returns every registered type in id order.
func Types() []Type {
	out := make([]Type, 0, len(byName))
	for i, info := range registry {
		if info.name != "" {
			out = append(out, Type(i))
		}
	}
	return out
}
