package ui

import "sync"

// Shared guards the live interface. The router mutates it and the renderer
// draws it, each under the lock.
type Shared struct {
	mu    sync.Mutex
	iface *Interface
}

func NewShared(iface *Interface) *Shared {
	return &Shared{iface: iface}
}

// With runs fn with exclusive access. fn is not called when no interface
// has been installed yet.
func (s *Shared) With(fn func(iface *Interface)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.iface == nil {
		return
	}
	fn(s.iface)
}

// Replace installs iface and releases the GPU buffers of the previous one.
func (s *Shared) Replace(iface *Interface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.iface != nil && s.iface != iface {
		s.iface.Release()
	}
	s.iface = iface
}
