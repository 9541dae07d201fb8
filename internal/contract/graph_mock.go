package contract

import (
	"context"

	"github.com/mquintal/graphlens/schema"
	"github.com/stretchr/testify/mock"
)

// MockGraphSource is a testify mock for the GraphSource interface.
type MockGraphSource struct {
	mock.Mock
}

var _ GraphSource = &MockGraphSource{} // Compile-time check

// Load implements the GraphSource interface.
func (m *MockGraphSource) Load(ctx context.Context) (*schema.GraphData, error) {
	args := m.Called(ctx)
	graph, _ := args.Get(0).(*schema.GraphData)
	return graph, args.Error(1)
}

// Hash implements the GraphSource interface.
func (m *MockGraphSource) Hash(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Name implements the GraphSource interface.
func (m *MockGraphSource) Name() string {
	args := m.Called()
	return args.String(0)
}
