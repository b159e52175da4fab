package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	compute "google.golang.org/api/compute/v1"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	ports "github.com/cloudtasker/state-converger/internal/core/ports"
)

// MockComputeAPI is a mock implementation of the GCE compute API slice
type MockComputeAPI struct {
	mock.Mock
}

func (m *MockComputeAPI) ProjectID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockComputeAPI) GetInstance(ctx context.Context, zone, name string) (*compute.Instance, error) {
	args := m.Called(ctx, zone, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compute.Instance), args.Error(1)
}

func (m *MockComputeAPI) InsertInstance(ctx context.Context, zone string, instance *compute.Instance) error {
	args := m.Called(ctx, zone, instance)
	return args.Error(0)
}

func (m *MockComputeAPI) DeleteInstance(ctx context.Context, zone, name string) error {
	args := m.Called(ctx, zone, name)
	return args.Error(0)
}

func (m *MockComputeAPI) GetImage(ctx context.Context, project, name string) (*compute.Image, error) {
	args := m.Called(ctx, project, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compute.Image), args.Error(1)
}

func (m *MockComputeAPI) GetImageFromFamily(ctx context.Context, project, family string) (*compute.Image, error) {
	args := m.Called(ctx, project, family)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compute.Image), args.Error(1)
}

func (m *MockComputeAPI) GetNetwork(ctx context.Context, name string) (*compute.Network, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compute.Network), args.Error(1)
}

func (m *MockComputeAPI) GetMachineType(ctx context.Context, zone, name string) (*compute.MachineType, error) {
	args := m.Called(ctx, zone, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compute.MachineType), args.Error(1)
}

func (m *MockComputeAPI) GetDisk(ctx context.Context, zone, name string) (*compute.Disk, error) {
	args := m.Called(ctx, zone, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compute.Disk), args.Error(1)
}

func (m *MockComputeAPI) InsertDisk(ctx context.Context, zone string, disk *compute.Disk) error {
	args := m.Called(ctx, zone, disk)
	return args.Error(0)
}

// MockResourceGateway is a mock implementation of the ResourceGateway port
type MockResourceGateway struct {
	mock.Mock
}

func (m *MockResourceGateway) Kind() domain.ResourceKind {
	args := m.Called()
	return args.Get(0).(domain.ResourceKind)
}

func (m *MockResourceGateway) Fetch(ctx context.Context, name string) (domain.Resource, bool, error) {
	args := m.Called(ctx, name)
	var resource domain.Resource
	if args.Get(0) != nil {
		resource = args.Get(0).(domain.Resource)
	}
	return resource, args.Bool(1), args.Error(2)
}

func (m *MockResourceGateway) Create(ctx context.Context, desc domain.ResourceDescriptor) (domain.Resource, error) {
	args := m.Called(ctx, desc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Resource), args.Error(1)
}

func (m *MockResourceGateway) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockReporter is a mock implementation of the Reporter port
type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) Report(ctx context.Context, report domain.ConvergenceReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReporter) Fail(ctx context.Context, err error) error {
	args := m.Called(ctx, err)
	return args.Error(0)
}

// MockLogger is a mock implementation of the Logger interface
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debugf(ctx context.Context, format string, args ...interface{}) {
	varArgs := []interface{}{ctx, format}
	for _, arg := range args {
		varArgs = append(varArgs, arg)
	}
	m.Called(varArgs...)
}

func (m *MockLogger) Infof(ctx context.Context, format string, args ...interface{}) {
	varArgs := []interface{}{ctx, format}
	for _, arg := range args {
		varArgs = append(varArgs, arg)
	}
	m.Called(varArgs...)
}

func (m *MockLogger) Warnf(ctx context.Context, format string, args ...interface{}) {
	varArgs := []interface{}{ctx, format}
	for _, arg := range args {
		varArgs = append(varArgs, arg)
	}
	m.Called(varArgs...)
}

func (m *MockLogger) Errorf(ctx context.Context, err error, format string, args ...interface{}) {
	varArgs := []interface{}{ctx, err, format}
	for _, arg := range args {
		varArgs = append(varArgs, arg)
	}
	m.Called(varArgs...)
}

func (m *MockLogger) WithFields(fields map[string]any) ports.Logger {
	m.Called(fields)
	return m
}

// NoopLogger discards everything; use it where a test has no logging
// expectations.
type NoopLogger struct{}

func (NoopLogger) Debugf(ctx context.Context, format string, args ...interface{}) {}
func (NoopLogger) Infof(ctx context.Context, format string, args ...interface{})  {}
func (NoopLogger) Warnf(ctx context.Context, format string, args ...interface{}) {}
func (NoopLogger) Errorf(ctx context.Context, err error, format string, args ...interface{}) {
}

func (n NoopLogger) WithFields(fields map[string]any) ports.Logger { return n }
