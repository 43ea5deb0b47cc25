package services

import (
	"context"
	"sync"

	"github.com/trofybr/trofy-pedidos-api/models"
)

// MockNotifier is a mock implementation of NotifierService for testing
type MockNotifier struct {
	mu            sync.Mutex
	notifications []models.Pedido
	NotifyErr     error
	Skipped       bool
	Health        HealthStatus
}

// NewMockNotifier creates a new mock notifier that records notifications
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{Health: HealthStatus{Status: "ok"}}
}

// Notify records the notified order, or fails/skips when configured to
func (m *MockNotifier) Notify(_ context.Context, pedido *models.Pedido) (*NotifyResult, error) {
	if m.NotifyErr != nil {
		return nil, m.NotifyErr
	}
	if m.Skipped {
		return &NotifyResult{Sent: false, Message: "URL da IA não configurada"}, nil
	}

	m.mu.Lock()
	m.notifications = append(m.notifications, *pedido)
	m.mu.Unlock()

	return &NotifyResult{Sent: true}, nil
}

// CheckHealth returns the configured health status
func (m *MockNotifier) CheckHealth(_ context.Context) HealthStatus {
	return m.Health
}

// Notifications returns a copy of the recorded notifications
func (m *MockNotifier) Notifications() []models.Pedido {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Pedido, len(m.notifications))
	copy(out, m.notifications)
	return out
}

// Clear removes all recorded notifications
func (m *MockNotifier) Clear() {
	m.mu.Lock()
	m.notifications = nil
	m.mu.Unlock()
}
