// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package session

import "context"

// StorageKey names the single persisted session record.
const StorageKey = "auth-storage"

// Storage is the persistent key-value collaborator. Both operations may
// fail; the Store catches failures and degrades rather than propagating.
type Storage interface {
	// Get returns the stored value, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the value. Each write must be atomic: a crash mid-persist
	// must not leave a half-written value behind.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
