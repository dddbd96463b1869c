// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

// Package biometric orchestrates platform biometric authentication.
//
// The platform is reached through two narrow collaborator interfaces:
//   - Gateway - capability queries (hardware, enrollment, modalities)
//   - Challenger - the live authentication prompt
//
// Both are normalized at this boundary: the Prober never returns an error
// (failing queries fold to "unavailable"), and the Authenticator converts
// every platform result and error shape into a closed Outcome so raw
// platform error strings never leak to callers.
package biometric
