// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package credentials

import "regexp"

// Password constraints.
const MinPasswordLength = 6

// Field names used as keys in Result.FieldErrors.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// User-facing validation messages. The login screen renders these verbatim
// next to the offending field, so they are part of the contract.
const (
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Please enter a valid email address"
	MsgPasswordRequired = "Password is required"
	MsgPasswordTooShort = "Password must be at least 6 characters"
)

// emailRegex matches a pragmatic local@domain shape. No TLD allowlist is
// enforced; "a@b" with at least one character on each side of a single dot
// in the domain is enough for a client-side gate.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Credentials is the raw login input as typed by the user.
type Credentials struct {
	Email    string
	Password string
}

// Result reports the outcome of validating one submit attempt.
// FieldErrors is nil when Valid is true.
type Result struct {
	Valid       bool
	FieldErrors map[string]string
}

// Validate checks credentials against the login format rules.
// All failing fields are reported together; validation never short-circuits
// after the first failure.
func Validate(c Credentials) Result {
	errs := make(map[string]string)

	switch {
	case c.Email == "":
		errs[FieldEmail] = MsgEmailRequired
	case !emailRegex.MatchString(c.Email):
		errs[FieldEmail] = MsgEmailInvalid
	}

	switch {
	case c.Password == "":
		errs[FieldPassword] = MsgPasswordRequired
	case len(c.Password) < MinPasswordLength:
		errs[FieldPassword] = MsgPasswordTooShort
	}

	if len(errs) > 0 {
		return Result{Valid: false, FieldErrors: errs}
	}
	return Result{Valid: true}
}
