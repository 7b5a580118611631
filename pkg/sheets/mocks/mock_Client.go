// Package mocks provides test doubles for the sheets client.
package mocks

import (
	"context"

	sheets "github.com/sells-group/csat-sync/pkg/sheets"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// Append provides a mock function with given fields: ctx, row
func (_m *MockClient) Append(ctx context.Context, row sheets.Row) (string, error) {
	ret := _m.Called(ctx, row)

	if len(ret) == 0 {
		panic("no return value specified for Append")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, sheets.Row) (string, error)); ok {
		return rf(ctx, row)
	}
	if rf, ok := ret.Get(0).(func(context.Context, sheets.Row) string); ok {
		r0 = rf(ctx, row)
	} else {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(context.Context, sheets.Row) error); ok {
		r1 = rf(ctx, row)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
