package services

import (
	"context"
	"sync"

	"github.com/trofybr/trofy-pedidos-api/models"
)

// MirrorUpdate records one UpdatePedido call on the mock
type MirrorUpdate struct {
	ID       uint
	Status   string
	Rastreio string
}

// MockMirror is a mock implementation of MirrorService for testing
type MockMirror struct {
	mu           sync.Mutex
	added        map[uint]models.Pedido
	updates      []MirrorUpdate
	Unconfigured bool
	AddErr       error
	UpdateErr    error
}

// NewMockMirror creates a new mock mirror that records rows in memory
func NewMockMirror() *MockMirror {
	return &MockMirror{added: make(map[uint]models.Pedido)}
}

// AddPedido records the appended row
func (m *MockMirror) AddPedido(_ context.Context, id uint, pedido *models.Pedido) (bool, error) {
	if m.AddErr != nil {
		return false, m.AddErr
	}
	if m.Unconfigured {
		return false, nil
	}

	m.mu.Lock()
	m.added[id] = *pedido
	m.mu.Unlock()
	return true, nil
}

// UpdatePedido records the update; unknown ids mimic the real mirror's
// logged no-op
func (m *MockMirror) UpdatePedido(_ context.Context, id uint, status, rastreio string) (bool, error) {
	if m.UpdateErr != nil {
		return false, m.UpdateErr
	}
	if m.Unconfigured {
		return false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.added[id]; !ok {
		return false, nil
	}
	m.updates = append(m.updates, MirrorUpdate{ID: id, Status: status, Rastreio: rastreio})
	return true, nil
}

// Added reports whether a row was appended for id
func (m *MockMirror) Added(id uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.added[id]
	return ok
}

// Updates returns a copy of the recorded updates
func (m *MockMirror) Updates() []MirrorUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]MirrorUpdate, len(m.updates))
	copy(out, m.updates)
	return out
}
