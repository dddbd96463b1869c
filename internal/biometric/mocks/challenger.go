// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tradelens/tradelens/internal/biometric"
)

// MockChallenger is a testify mock for biometric.Challenger.
type MockChallenger struct {
	mock.Mock
}

func (m *MockChallenger) Challenge(ctx context.Context, prompt, cancelLabel string) (biometric.ChallengeResult, error) {
	args := m.Called(ctx, prompt, cancelLabel)
	result, _ := args.Get(0).(biometric.ChallengeResult)
	return result, args.Error(1)
}

// NewMockChallenger creates a MockChallenger that asserts its
// expectations during test cleanup.
func NewMockChallenger(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockChallenger {
	m := &MockChallenger{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
