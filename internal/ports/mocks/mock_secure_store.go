package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// MockSecureStore is a testify mock of ports.SecureStore with mockery-style EXPECT helpers.
type MockSecureStore struct {
	mock.Mock
}

type MockSecureStore_Expecter struct {
	mock *mock.Mock
}

func (_m *MockSecureStore) EXPECT() *MockSecureStore_Expecter {
	return &MockSecureStore_Expecter{mock: &_m.Mock}
}

// Delete provides a mock function with given fields: ctx, group, key
func (_m *MockSecureStore) Delete(ctx context.Context, group string, key string) error {
	ret := _m.Called(ctx, group, key)

	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) error); ok {
		r0 = rf(ctx, group, key)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockSecureStore_Delete_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Delete'
type MockSecureStore_Delete_Call struct {
	*mock.Call
}

// Delete is a helper method to define mock.On call
//   - ctx context.Context
//   - group string
//   - key string
func (_e *MockSecureStore_Expecter) Delete(ctx interface{}, group interface{}, key interface{}) *MockSecureStore_Delete_Call {
	return &MockSecureStore_Delete_Call{Call: _e.mock.On("Delete", ctx, group, key)}
}

func (_c *MockSecureStore_Delete_Call) Run(run func(ctx context.Context, group string, key string)) *MockSecureStore_Delete_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(string))
	})
	return _c
}

func (_c *MockSecureStore_Delete_Call) Return(_a0 error) *MockSecureStore_Delete_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockSecureStore_Delete_Call) RunAndReturn(run func(context.Context, string, string) error) *MockSecureStore_Delete_Call {
	_c.Call.Return(run)
	return _c
}

// Get provides a mock function with given fields: ctx, group, key
func (_m *MockSecureStore) Get(ctx context.Context, group string, key string) ([]byte, error) {
	ret := _m.Called(ctx, group, key)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 []byte
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) ([]byte, error)); ok {
		return rf(ctx, group, key)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, string) []byte); ok {
		r0 = rf(ctx, group, key)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]byte)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, string) error); ok {
		r1 = rf(ctx, group, key)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockSecureStore_Get_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Get'
type MockSecureStore_Get_Call struct {
	*mock.Call
}

// Get is a helper method to define mock.On call
//   - ctx context.Context
//   - group string
//   - key string
func (_e *MockSecureStore_Expecter) Get(ctx interface{}, group interface{}, key interface{}) *MockSecureStore_Get_Call {
	return &MockSecureStore_Get_Call{Call: _e.mock.On("Get", ctx, group, key)}
}

func (_c *MockSecureStore_Get_Call) Run(run func(ctx context.Context, group string, key string)) *MockSecureStore_Get_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(string))
	})
	return _c
}

func (_c *MockSecureStore_Get_Call) Return(_a0 []byte, _a1 error) *MockSecureStore_Get_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockSecureStore_Get_Call) RunAndReturn(run func(context.Context, string, string) ([]byte, error)) *MockSecureStore_Get_Call {
	_c.Call.Return(run)
	return _c
}

// Put provides a mock function with given fields: ctx, group, key, value
func (_m *MockSecureStore) Put(ctx context.Context, group string, key string, value []byte) error {
	ret := _m.Called(ctx, group, key, value)

	if len(ret) == 0 {
		panic("no return value specified for Put")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string, []byte) error); ok {
		r0 = rf(ctx, group, key, value)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockSecureStore_Put_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Put'
type MockSecureStore_Put_Call struct {
	*mock.Call
}

// Put is a helper method to define mock.On call
//   - ctx context.Context
//   - group string
//   - key string
//   - value []byte
func (_e *MockSecureStore_Expecter) Put(ctx interface{}, group interface{}, key interface{}, value interface{}) *MockSecureStore_Put_Call {
	return &MockSecureStore_Put_Call{Call: _e.mock.On("Put", ctx, group, key, value)}
}

func (_c *MockSecureStore_Put_Call) Run(run func(ctx context.Context, group string, key string, value []byte)) *MockSecureStore_Put_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(string), args[3].([]byte))
	})
	return _c
}

func (_c *MockSecureStore_Put_Call) Return(_a0 error) *MockSecureStore_Put_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockSecureStore_Put_Call) RunAndReturn(run func(context.Context, string, string, []byte) error) *MockSecureStore_Put_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockSecureStore creates a new instance of MockSecureStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockSecureStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSecureStore {
	mock := &MockSecureStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
