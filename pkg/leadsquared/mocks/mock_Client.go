// Package mocks provides test doubles for the leadsquared client.
package mocks

import (
	"context"

	leadsquared "github.com/sells-group/csat-sync/pkg/leadsquared"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// LeadsByPhone provides a mock function with given fields: ctx, phone
func (_m *MockClient) LeadsByPhone(ctx context.Context, phone string) ([]leadsquared.Lead, error) {
	ret := _m.Called(ctx, phone)

	if len(ret) == 0 {
		panic("no return value specified for LeadsByPhone")
	}

	var r0 []leadsquared.Lead
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]leadsquared.Lead, error)); ok {
		return rf(ctx, phone)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []leadsquared.Lead); ok {
		r0 = rf(ctx, phone)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]leadsquared.Lead)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, phone)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// CreateOrUpdate provides a mock function with given fields: ctx, attrs
func (_m *MockClient) CreateOrUpdate(ctx context.Context, attrs []leadsquared.Attribute) error {
	ret := _m.Called(ctx, attrs)

	if len(ret) == 0 {
		panic("no return value specified for CreateOrUpdate")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []leadsquared.Attribute) error); ok {
		r0 = rf(ctx, attrs)
	} else {
		r0 = ret.Error(0)
	}

	return r0
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
