package notifier

import (
	"github.com/stretchr/testify/mock"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
)

// MockUnlockNotifier is a mock implementation of UnlockNotifier for testing.
// It uses testify/mock to allow test assertions on method calls.
type MockUnlockNotifier struct {
	mock.Mock
}

// NotifyUnlock mocks the grant notification.
func (m *MockUnlockNotifier) NotifyUnlock(objective domain.Objective, unlock domain.Unlock) {
	m.Called(objective, unlock)
}

// NewMockUnlockNotifier creates a new mock notifier.
func NewMockUnlockNotifier() *MockUnlockNotifier {
	return &MockUnlockNotifier{}
}
