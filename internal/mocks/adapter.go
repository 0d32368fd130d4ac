package mocks

import (
	"github.com/aweris/treefs"
	"github.com/stretchr/testify/mock"
)

// MockAdapter implements treefs.Adapter for testing decorators
type MockAdapter struct {
	mock.Mock
}

func (m *MockAdapter) Add(f treefs.File) error {
	args := m.Called(f)
	return args.Error(0)
}

func (m *MockAdapter) Get(name treefs.Name) (treefs.File, bool) {
	args := m.Called(name)

	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(treefs.File), args.Bool(1)
}

func (m *MockAdapter) Contains(name treefs.Name) bool {
	args := m.Called(name)
	return args.Bool(0)
}

func (m *MockAdapter) Remove(name treefs.Name) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockAdapter) All() ([]treefs.File, error) {
	args := m.Called()

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]treefs.File), args.Error(1)
}

var _ treefs.Adapter = (*MockAdapter)(nil)

// MockPersister is a MockAdapter that also buffers changes
type MockPersister struct {
	MockAdapter
}

func (m *MockPersister) Persist() error {
	args := m.Called()
	return args.Error(0)
}

var _ treefs.Persister = (*MockPersister)(nil)
