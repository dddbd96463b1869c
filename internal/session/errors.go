// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package session

import "errors"

// ErrLoginInFlight is returned when a login is issued while another
// login or biometric login is still in flight. Overlapping attempts are
// rejected, never queued.
var ErrLoginInFlight = errors.New("login already in flight")

// ErrBiometricCancelled is returned when the user dismisses the platform
// biometric prompt. It is a quiet non-success: the session error field is
// left empty so the UI shows nothing for it.
var ErrBiometricCancelled = errors.New("biometric prompt cancelled")

// ErrNotAuthenticated is returned by operations that require a current user.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrInvalidCredentials is returned by backends when email or password is
// rejected.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrAccountExists is returned by LocalBackend when registering an email
// that already has an account.
var ErrAccountExists = errors.New("account already exists")
