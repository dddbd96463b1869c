// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package session

// Route names the screen subtree the navigation layer should mount.
type Route int

const (
	// RouteChecking keeps the splash mounted while the startup restore runs.
	RouteChecking Route = iota
	// RouteLogin mounts the unauthenticated subtree.
	RouteLogin
	// RouteHome mounts the authenticated subtree.
	RouteHome
)

// String returns the route name.
func (r Route) String() string {
	switch r {
	case RouteChecking:
		return "checking"
	case RouteLogin:
		return "login"
	case RouteHome:
		return "home"
	default:
		return "unknown"
	}
}

// Gate derives the mounted route from a snapshot. The restore check wins
// over everything else so a slow storage read never flashes the login
// screen at an already-authenticated user.
func Gate(snap Snapshot) Route {
	switch {
	case snap.IsCheckingAuth:
		return RouteChecking
	case snap.IsAuthenticated:
		return RouteHome
	default:
		return RouteLogin
	}
}
