// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package session

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/tradelens/tradelens/internal/credentials"
)

// accountsKey names the persisted local-account table.
const accountsKey = "local-accounts"

// dummyPasswordHash is verified against when an email has no account, so
// lookup misses take as long as hash mismatches.
//
//nolint:gosec // G101: intentionally fake hash for timing consistency, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// localAccount is one registered account as stored on disk.
type localAccount struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// LocalBackend verifies credentials against accounts registered on this
// device. It demonstrates that a verifying backend is a drop-in
// substitution for the MockBackend behind the same interface.
type LocalBackend struct {
	storage    Storage
	hasher     credentials.PasswordHasher
	signingKey []byte
	now        func() time.Time
}

// NewLocalBackend creates a LocalBackend.
// Returns an error if storage or hasher is nil.
func NewLocalBackend(storage Storage, hasher credentials.PasswordHasher) (*LocalBackend, error) {
	if storage == nil {
		return nil, oops.Code("SESSION_NIL_DEPENDENCY").Errorf("storage is required")
	}
	if hasher == nil {
		return nil, oops.Code("SESSION_NIL_DEPENDENCY").Errorf("password hasher is required")
	}
	key, err := newSigningKey()
	if err != nil {
		return nil, err
	}
	return &LocalBackend{storage: storage, hasher: hasher, signingKey: key, now: time.Now}, nil
}

// loadAccounts reads the account table, treating an absent key as empty.
func (b *LocalBackend) loadAccounts(ctx context.Context) (map[string]localAccount, error) {
	data, err := b.storage.Get(ctx, accountsKey)
	if err != nil {
		return nil, oops.Code("SESSION_ACCOUNTS_READ_FAILED").Wrap(err)
	}
	accounts := make(map[string]localAccount)
	if len(data) == 0 {
		return accounts, nil
	}
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, oops.Code("SESSION_ACCOUNTS_CORRUPT").Wrap(err)
	}
	return accounts, nil
}

// saveAccounts writes the account table back.
func (b *LocalBackend) saveAccounts(ctx context.Context, accounts map[string]localAccount) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return oops.Code("SESSION_ACCOUNTS_ENCODE_FAILED").Wrap(err)
	}
	if err := b.storage.Set(ctx, accountsKey, data); err != nil {
		return oops.Code("SESSION_ACCOUNTS_WRITE_FAILED").Wrap(err)
	}
	return nil
}

// Register creates a local account. The email is the account key,
// compared case-insensitively.
func (b *LocalBackend) Register(ctx context.Context, name, email, password string) (*User, error) {
	if res := credentials.Validate(credentials.Credentials{Email: email, Password: password}); !res.Valid {
		return nil, oops.Code("SESSION_INVALID_CREDENTIALS").
			With("fields", res.FieldErrors).
			Wrap(ErrInvalidCredentials)
	}

	accounts, err := b.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	key := strings.ToLower(email)
	if _, exists := accounts[key]; exists {
		return nil, oops.Code("SESSION_ACCOUNT_EXISTS").With("email", email).Wrap(ErrAccountExists)
	}

	hash, err := b.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("SESSION_REGISTER_FAILED").Wrap(err)
	}

	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	account := localAccount{
		ID:           ulid.Make().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	accounts[key] = account

	if err := b.saveAccounts(ctx, accounts); err != nil {
		return nil, err
	}
	return &User{ID: account.ID, Name: account.Name, Email: account.Email}, nil
}

// Login verifies the password against the registered account. Unknown
// emails and wrong passwords return the same error.
func (b *LocalBackend) Login(ctx context.Context, email, password string) (*User, string, error) {
	accounts, err := b.loadAccounts(ctx)
	if err != nil {
		return nil, "", err
	}

	account, exists := accounts[strings.ToLower(email)]
	targetHash := account.PasswordHash
	if !exists {
		targetHash = dummyPasswordHash
	}

	valid, verifyErr := b.hasher.Verify(password, targetHash)
	if verifyErr != nil && exists {
		return nil, "", oops.Code("SESSION_LOGIN_FAILED").Wrap(verifyErr)
	}
	if !exists || !valid {
		return nil, "", oops.Code("SESSION_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	user := &User{ID: account.ID, Name: account.Name, Email: account.Email}
	token, err := mintToken(b.signingKey, user, b.now())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// BiometricExchange mints a token for the persisted identity. Without one
// there is nothing to exchange: biometric sign-in needs a prior session.
func (b *LocalBackend) BiometricExchange(_ context.Context, user *User) (*User, string, error) {
	if user == nil {
		return nil, "", oops.Code("SESSION_NO_SAVED_SESSION").
			Errorf("no saved session for biometric sign-in")
	}
	user = user.clone()
	token, err := mintToken(b.signingKey, user, b.now())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// RequestPasswordReset accepts the request without revealing whether the
// email has an account. The local variant has no mail transport, so there
// is nothing to send.
func (b *LocalBackend) RequestPasswordReset(context.Context, string) error {
	return nil
}
