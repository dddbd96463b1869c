// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package session

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Session token lifetime for locally minted tokens.
const TokenExpiry = 24 * time.Hour

// DefaultLoginDelay simulates the network round-trip of the mocked API.
const DefaultLoginDelay = 800 * time.Millisecond

// Backend authenticates credentials and issues session tokens. A real
// HTTP backend slots in here without any change to the Store contract.
type Backend interface {
	// Login authenticates raw credentials, returning the user and an
	// opaque session token.
	Login(ctx context.Context, email, password string) (*User, string, error)

	// BiometricExchange issues a session token after a successful
	// on-device biometric challenge. user is the previously persisted
	// identity and may be nil when no session was ever saved.
	BiometricExchange(ctx context.Context, user *User) (*User, string, error)

	// RequestPasswordReset starts a password-reset flow for the email.
	// Whether the email has an account is never revealed to the caller.
	RequestPasswordReset(ctx context.Context, email string) error
}

// newSigningKey generates a random per-process HMAC key for token minting.
func newSigningKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, oops.Code("SESSION_KEY_FAILED").Wrap(err)
	}
	return key, nil
}

// mintToken signs an HS256 session token for the user.
func mintToken(key []byte, u *User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenExpiry).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", oops.Code("SESSION_TOKEN_MINT_FAILED").Wrap(err)
	}
	return token, nil
}

// MockBackend simulates the trade-data API's auth endpoint: any
// well-formed credential pair is accepted after a simulated network delay
// and the user identity is derived from the email's local part.
type MockBackend struct {
	delay      time.Duration
	signingKey []byte
	now        func() time.Time
}

// NewMockBackend creates a MockBackend. A negative delay falls back to
// DefaultLoginDelay; zero disables the simulated latency (used in tests).
func NewMockBackend(delay time.Duration) (*MockBackend, error) {
	if delay < 0 {
		delay = DefaultLoginDelay
	}
	key, err := newSigningKey()
	if err != nil {
		return nil, err
	}
	return &MockBackend{delay: delay, signingKey: key, now: time.Now}, nil
}

// sleep waits out the simulated network delay, honoring cancellation.
func (b *MockBackend) sleep(ctx context.Context) error {
	if b.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(b.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return oops.Code("SESSION_LOGIN_CANCELLED").Wrap(ctx.Err())
	}
}

// Login accepts any non-empty credential pair and derives the display name
// from the email's local part.
func (b *MockBackend) Login(ctx context.Context, email, password string) (*User, string, error) {
	if err := b.sleep(ctx); err != nil {
		return nil, "", err
	}
	if email == "" || password == "" {
		return nil, "", oops.Code("SESSION_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	local, _, _ := strings.Cut(email, "@")
	user := &User{
		ID:    ulid.Make().String(),
		Name:  local,
		Email: email,
	}

	token, err := mintToken(b.signingKey, user, b.now())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// defaultBiometricUser is the identity used when a biometric login happens
// before any password login was ever persisted.
func defaultBiometricUser() *User {
	return &User{
		ID:    ulid.Make().String(),
		Name:  "John Doe",
		Email: "john.doe@example.com",
	}
}

// BiometricExchange mints a fresh token, reusing the persisted identity
// when one exists.
func (b *MockBackend) BiometricExchange(_ context.Context, user *User) (*User, string, error) {
	if user == nil {
		user = defaultBiometricUser()
	} else {
		user = user.clone()
	}
	token, err := mintToken(b.signingKey, user, b.now())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// RequestPasswordReset pretends to send a reset email after the simulated
// delay. It always reports success.
func (b *MockBackend) RequestPasswordReset(ctx context.Context, _ string) error {
	return b.sleep(ctx)
}
