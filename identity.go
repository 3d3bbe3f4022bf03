package fudge

import "go.uber.org/zap"

// resolve returns the wrapper interned for a child store.
func (m *Message) resolve(h Handle) (*Message, bool) {
	w, ok := m.cache[h]
	return w, ok
}

// intern records w as the wrapper for h. An existing entry wins so that
// wrappers already handed out keep their identity.
func (m *Message) intern(h Handle, w *Message) *Message {
	if existing, ok := m.cache[h]; ok {
		return existing
	}
	if m.cache == nil {
		m.cache = make(map[Handle]*Message)
	}
	m.cache[h] = w
	return w
}

// wrap returns the wrapper for a child store, creating and interning one on
// a cache miss.
func (m *Message) wrap(s *store) *Message {
	if w, ok := m.resolve(s.handle); ok {
		return w
	}
	Logger().Debug("identity cache miss",
		zap.Uint64("parent", uint64(m.store.handle)),
		zap.Uint64("child", uint64(s.handle)))
	return m.intern(s.handle, &Message{store: s, conv: m.conv})
}
