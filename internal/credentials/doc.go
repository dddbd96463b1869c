// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

// Package credentials provides login-input validation and password hashing.
//
// Validate is a pure function: it reports every failing field in one pass
// so a form can render all errors together, and it never touches the
// network or storage. The hasher is used by the local-account login
// backend; the mock backend accepts any well-formed credentials and has no
// use for it.
package credentials
