package mocks

import (
	context "context"

	domain "github.com/deeponelabs/deepone-go/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// MockAttributionService is a testify mock of ports.AttributionService with mockery-style EXPECT helpers.
type MockAttributionService struct {
	mock.Mock
}

type MockAttributionService_Expecter struct {
	mock *mock.Mock
}

func (_m *MockAttributionService) EXPECT() *MockAttributionService_Expecter {
	return &MockAttributionService_Expecter{mock: &_m.Mock}
}

// CreateLink provides a mock function with given fields: ctx, params, apiKey
func (_m *MockAttributionService) CreateLink(ctx context.Context, params domain.LinkParameters, apiKey string) (string, error) {
	ret := _m.Called(ctx, params, apiKey)

	if len(ret) == 0 {
		panic("no return value specified for CreateLink")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.LinkParameters, string) (string, error)); ok {
		return rf(ctx, params, apiKey)
	}
	if rf, ok := ret.Get(0).(func(context.Context, domain.LinkParameters, string) string); ok {
		r0 = rf(ctx, params, apiKey)
	} else {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(context.Context, domain.LinkParameters, string) error); ok {
		r1 = rf(ctx, params, apiKey)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockAttributionService_CreateLink_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'CreateLink'
type MockAttributionService_CreateLink_Call struct {
	*mock.Call
}

// CreateLink is a helper method to define mock.On call
//   - ctx context.Context
//   - params domain.LinkParameters
//   - apiKey string
func (_e *MockAttributionService_Expecter) CreateLink(ctx interface{}, params interface{}, apiKey interface{}) *MockAttributionService_CreateLink_Call {
	return &MockAttributionService_CreateLink_Call{Call: _e.mock.On("CreateLink", ctx, params, apiKey)}
}

func (_c *MockAttributionService_CreateLink_Call) Run(run func(ctx context.Context, params domain.LinkParameters, apiKey string)) *MockAttributionService_CreateLink_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(domain.LinkParameters), args[2].(string))
	})
	return _c
}

func (_c *MockAttributionService_CreateLink_Call) Return(_a0 string, _a1 error) *MockAttributionService_CreateLink_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockAttributionService_CreateLink_Call) RunAndReturn(run func(context.Context, domain.LinkParameters, string) (string, error)) *MockAttributionService_CreateLink_Call {
	_c.Call.Return(run)
	return _c
}

// Verify provides a mock function with given fields: ctx, fingerprint, apiKey
func (_m *MockAttributionService) Verify(ctx context.Context, fingerprint domain.DeviceFingerprint, apiKey string) (domain.VerifyResult, error) {
	ret := _m.Called(ctx, fingerprint, apiKey)

	if len(ret) == 0 {
		panic("no return value specified for Verify")
	}

	var r0 domain.VerifyResult
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.DeviceFingerprint, string) (domain.VerifyResult, error)); ok {
		return rf(ctx, fingerprint, apiKey)
	}
	if rf, ok := ret.Get(0).(func(context.Context, domain.DeviceFingerprint, string) domain.VerifyResult); ok {
		r0 = rf(ctx, fingerprint, apiKey)
	} else {
		r0 = ret.Get(0).(domain.VerifyResult)
	}

	if rf, ok := ret.Get(1).(func(context.Context, domain.DeviceFingerprint, string) error); ok {
		r1 = rf(ctx, fingerprint, apiKey)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockAttributionService_Verify_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Verify'
type MockAttributionService_Verify_Call struct {
	*mock.Call
}

// Verify is a helper method to define mock.On call
//   - ctx context.Context
//   - fingerprint domain.DeviceFingerprint
//   - apiKey string
func (_e *MockAttributionService_Expecter) Verify(ctx interface{}, fingerprint interface{}, apiKey interface{}) *MockAttributionService_Verify_Call {
	return &MockAttributionService_Verify_Call{Call: _e.mock.On("Verify", ctx, fingerprint, apiKey)}
}

func (_c *MockAttributionService_Verify_Call) Run(run func(ctx context.Context, fingerprint domain.DeviceFingerprint, apiKey string)) *MockAttributionService_Verify_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(domain.DeviceFingerprint), args[2].(string))
	})
	return _c
}

func (_c *MockAttributionService_Verify_Call) Return(_a0 domain.VerifyResult, _a1 error) *MockAttributionService_Verify_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockAttributionService_Verify_Call) RunAndReturn(run func(context.Context, domain.DeviceFingerprint, string) (domain.VerifyResult, error)) *MockAttributionService_Verify_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockAttributionService creates a new instance of MockAttributionService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockAttributionService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAttributionService {
	mock := &MockAttributionService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
