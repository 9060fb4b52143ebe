package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockReasoner is a mock implementation of port.Reasoner.
type MockReasoner struct {
	mock.Mock
}

func (m *MockReasoner) Complete(ctx context.Context, payload, credential string) (string, error) {
	args := m.Called(ctx, payload, credential)
	return args.String(0), args.Error(1)
}
