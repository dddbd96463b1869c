// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

// Package mocks provides hand-maintained testify mocks for the biometric
// platform interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tradelens/tradelens/internal/biometric"
)

// MockGateway is a testify mock for biometric.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) HasHardware(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockGateway) Enrolled(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockGateway) SupportedModalities(ctx context.Context) ([]biometric.Modality, error) {
	args := m.Called(ctx)
	modalities, _ := args.Get(0).([]biometric.Modality)
	return modalities, args.Error(1)
}

// NewMockGateway creates a MockGateway that asserts its expectations
// during test cleanup.
func NewMockGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGateway {
	m := &MockGateway{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
