package fudge

import "github.com/wippyai/fudge/wire"

// field is one stored entry. value always matches typ:
//
//	indicator            nil
//	boolean              bool
//	byte..long           int8, int16, int32, int64
//	float, double        float32, float64
//	byte[], byte[N]      []byte
//	typed arrays         []int16, []int32, []int64, []float32, []float64
//	string               string
//	message              *store
//	date, time, datetime wire.Date, wire.Time, wire.DateTime
//	unknown              []byte
type field struct {
	value      any
	name       string
	typ        wire.Type
	ordinal    uint16
	hasName    bool
	hasOrdinal bool
}

// store is the shared storage of a message. Parents reference child stores
// directly, so a store may be reachable from many parents and wrappers.
type store struct {
	fields []field
	handle Handle
}

func newStore() *store {
	return &store{handle: newHandle()}
}

// reaches reports whether target is s or one of its descendants.
func (s *store) reaches(target *store) bool {
	seen := make(map[Handle]struct{})
	var walk func(*store) bool
	walk = func(cur *store) bool {
		if cur == target {
			return true
		}
		if _, ok := seen[cur.handle]; ok {
			return false
		}
		seen[cur.handle] = struct{}{}
		for i := range cur.fields {
			if child, ok := cur.fields[i].value.(*store); ok && walk(child) {
				return true
			}
		}
		return false
	}
	return walk(s)
}
