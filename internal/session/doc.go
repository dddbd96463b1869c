// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

// Package session holds the process-wide authentication session and the
// state machine that mutates it.
//
// The Store is the only legitimate mutator of session state. Every
// operation serializes its transition under one mutex, never panics past
// the Store boundary, and folds collaborator failures into typed errors
// and the snapshot's Err field. A subset of the state (authenticated flag,
// user, token, biometric opt-in) survives process restarts through a
// Storage collaborator; everything else is transient and resets on start.
//
// Login backends implement the Backend interface. The MockBackend stands
// in for a real network API; swapping in a real HTTP backend is a drop-in
// substitution with no change to the Store contract. The LocalBackend is a
// second implementation that verifies against locally registered accounts.
package session
