// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/tradelens/tradelens/internal/biometric"
	"github.com/tradelens/tradelens/internal/credentials"
	"github.com/tradelens/tradelens/internal/observability"
)

// Startup restore retry policy: a handful of quick attempts before
// degrading to logged-out.
const (
	restoreRetryBase = 50 * time.Millisecond
	restoreRetryMax  = 3
)

// User-facing failure messages set on the snapshot's Err field.
const (
	msgLoginFailed       = "Login failed. Please try again."
	msgInvalidLogin      = "Invalid email or password."
	msgBiometricFailed   = "Biometric authentication failed."
	msgLoginInFlight     = "A sign-in attempt is already in progress."
	msgResetEmailInvalid = "Please enter a valid email address"
)

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	IsAuthenticated  bool
	User             *User
	Token            string
	BiometricEnabled bool
	IsLoading        bool
	IsCheckingAuth   bool
	Err              string
}

// Store is the session state machine. All mutations are serialized under
// one mutex; racing operations land in whichever completion order the
// lock grants, so the final state always reflects exactly one coherent
// completed attempt. No operation panics or returns a raw collaborator
// error past this boundary.
type Store struct {
	mu   sync.Mutex
	snap Snapshot

	backend       Backend
	authenticator *biometric.Authenticator
	storage       Storage
	logger        *slog.Logger
	metrics       *observability.Metrics

	restoreOnce sync.Once
}

// Config carries the Store's collaborators. Metrics is optional.
type Config struct {
	Backend       Backend
	Authenticator *biometric.Authenticator
	Storage       Storage
	Logger        *slog.Logger
	Metrics       *observability.Metrics
}

// NewStore creates a Store in the initial unauthenticated state with
// IsCheckingAuth true; CheckAuthStatus performs the one-shot restore.
// Returns an error if a required collaborator is nil.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Backend == nil {
		return nil, oops.Code("SESSION_NIL_DEPENDENCY").Errorf("backend is required")
	}
	if cfg.Authenticator == nil {
		return nil, oops.Code("SESSION_NIL_DEPENDENCY").Errorf("biometric authenticator is required")
	}
	if cfg.Storage == nil {
		return nil, oops.Code("SESSION_NIL_DEPENDENCY").Errorf("storage is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		snap:          Snapshot{IsCheckingAuth: true},
		backend:       cfg.Backend,
		authenticator: cfg.Authenticator,
		storage:       cfg.Storage,
		logger:        logger,
		metrics:       cfg.Metrics,
	}, nil
}

// Snapshot returns a defensive copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap
	snap.User = s.snap.User.clone()
	return snap
}

// beginAttempt marks a login attempt in flight, rejecting overlap.
func (s *Store) beginAttempt() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.IsLoading {
		s.snap.Err = msgLoginInFlight
		return oops.Code("SESSION_LOGIN_IN_FLIGHT").Wrap(ErrLoginInFlight)
	}
	s.snap.IsLoading = true
	s.snap.Err = ""
	return nil
}

// Login authenticates raw credentials through the backend. Validation is
// the caller's responsibility (credentials.Validate); malformed input
// still fails cleanly here rather than corrupting state. A login issued
// while another attempt is in flight is rejected, not queued.
func (s *Store) Login(ctx context.Context, email, password string) (*User, error) {
	if err := s.beginAttempt(); err != nil {
		s.metrics.RecordAuthAttempt(observability.MethodPassword, observability.OutcomeRejected)
		return nil, err
	}

	// The backend call suspends at the network boundary; the lock is not
	// held across it so Snapshot and Logout stay responsive.
	user, token, err := s.backend.Login(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.IsLoading = false

	if err != nil {
		s.snap.Err = loginFailureMessage(err)
		s.metrics.RecordAuthAttempt(observability.MethodPassword, observability.OutcomeFailure)
		return nil, oops.Code("SESSION_LOGIN_FAILED").With("email", email).Wrap(err)
	}

	s.snap.IsAuthenticated = true
	s.snap.User = user
	s.snap.Token = token
	s.snap.Err = ""
	s.persistLocked(ctx)
	s.metrics.RecordAuthAttempt(observability.MethodPassword, observability.OutcomeSuccess)
	s.logger.Info("login succeeded", "user_id", user.ID)

	return user.clone(), nil
}

// loginFailureMessage maps a backend error to the user-visible message.
func loginFailureMessage(err error) string {
	if errors.Is(err, ErrInvalidCredentials) {
		return msgInvalidLogin
	}
	return msgLoginFailed
}

// BiometricLogin runs the platform challenge for the modality and, on
// success, exchanges it for a session token. Cancellation resolves as a
// distinguishable non-success (ErrBiometricCancelled) with the snapshot's
// Err left empty, so no error UI is shown for it.
func (s *Store) BiometricLogin(ctx context.Context, modality biometric.Modality) (*User, error) {
	if err := s.beginAttempt(); err != nil {
		s.metrics.RecordAuthAttempt(observability.MethodBiometric, observability.OutcomeRejected)
		return nil, err
	}

	prompt := fmt.Sprintf("Verify with %s", modality.DisplayName())
	outcome := s.authenticator.Authenticate(ctx, modality, prompt)

	if !outcome.OK {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.snap.IsLoading = false

		if outcome.Cancelled() {
			s.metrics.RecordAuthAttempt(observability.MethodBiometric, observability.OutcomeCancelled)
			return nil, oops.Code("SESSION_BIOMETRIC_CANCELLED").Wrap(ErrBiometricCancelled)
		}

		s.snap.Err = outcome.Message
		s.metrics.RecordAuthAttempt(observability.MethodBiometric, observability.OutcomeFailure)
		return nil, oops.Code("SESSION_BIOMETRIC_FAILED").
			With("kind", outcome.Kind.String()).
			Errorf("%s", outcome.Message)
	}

	priorUser := s.Snapshot().User
	user, token, err := s.backend.BiometricExchange(ctx, priorUser)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.IsLoading = false

	if err != nil {
		s.snap.Err = msgBiometricFailed
		s.metrics.RecordAuthAttempt(observability.MethodBiometric, observability.OutcomeFailure)
		return nil, oops.Code("SESSION_BIOMETRIC_FAILED").Wrap(err)
	}

	s.snap.IsAuthenticated = true
	s.snap.User = user
	s.snap.Token = token
	s.snap.BiometricEnabled = true
	s.snap.Err = ""
	s.persistLocked(ctx)
	s.metrics.RecordAuthAttempt(observability.MethodBiometric, observability.OutcomeSuccess)
	s.logger.Info("biometric login succeeded", "modality", modality.String(), "user_id", user.ID)

	return user.clone(), nil
}

// Logout resets the session to its unauthenticated defaults and clears
// the persisted record. It has no precondition and always succeeds;
// calling it twice lands in the same terminal state.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.IsAuthenticated = false
	s.snap.User = nil
	s.snap.Token = ""
	s.snap.BiometricEnabled = false
	s.snap.Err = ""

	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		// Persistence failures stay invisible; next restore degrades to
		// whatever the record says, and an authenticated stale record is
		// replaced on the next persist.
		s.logger.Warn("failed to clear persisted session", "error", err)
	}
	s.logger.Info("logged out")
}

// EnableBiometric turns on the biometric opt-in, independent of
// authentication state.
func (s *Store) EnableBiometric(ctx context.Context) {
	s.setBiometricEnabled(ctx, true)
}

// DisableBiometric turns off the biometric opt-in.
func (s *Store) DisableBiometric(ctx context.Context) {
	s.setBiometricEnabled(ctx, false)
}

func (s *Store) setBiometricEnabled(ctx context.Context, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.BiometricEnabled = enabled
	s.persistLocked(ctx)
}

// ClearError clears the user-visible error. No-op when already clear.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Err = ""
}

// UpdateUser shallow-merges the patch into the current user.
// Returns ErrNotAuthenticated (wrapped) when no user is present.
func (s *Store) UpdateUser(ctx context.Context, patch UserPatch) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.User == nil {
		return nil, oops.Code("SESSION_NO_USER").Wrap(ErrNotAuthenticated)
	}

	s.snap.User = patch.apply(s.snap.User)
	s.persistLocked(ctx)
	return s.snap.User.clone(), nil
}

// RequestPasswordReset starts the reset flow for the email. The email
// shape is checked here; everything else is the backend's concern.
func (s *Store) RequestPasswordReset(ctx context.Context, email string) error {
	if res := credentials.Validate(credentials.Credentials{Email: email, Password: "placeholder"}); !res.Valid {
		return oops.Code("SESSION_INVALID_EMAIL").Errorf("%s", msgResetEmailInvalid)
	}
	if err := s.backend.RequestPasswordReset(ctx, email); err != nil {
		return oops.Code("SESSION_RESET_FAILED").Wrap(err)
	}
	return nil
}

// CheckAuthStatus performs the one-shot startup restore. The persisted
// record, when present and parseable, repopulates the four persisted
// fields; any read or parse failure degrades silently to logged-out.
// IsCheckingAuth ends false exactly once, no matter what. Calls after the
// first are no-ops.
func (s *Store) CheckAuthStatus(ctx context.Context) {
	s.restoreOnce.Do(func() {
		defer func() {
			s.mu.Lock()
			s.snap.IsCheckingAuth = false
			s.mu.Unlock()
		}()

		var data []byte
		backoff := retry.WithMaxRetries(restoreRetryMax, retry.NewFibonacci(restoreRetryBase))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			var readErr error
			data, readErr = s.storage.Get(ctx, StorageKey)
			if readErr != nil {
				return retry.RetryableError(readErr)
			}
			return nil
		})
		if err != nil {
			s.logger.Warn("session restore read failed, starting logged out", "error", err)
			s.metrics.RecordSessionRestore(observability.OutcomeFailure)
			return
		}
		if len(data) == 0 {
			s.metrics.RecordSessionRestore(observability.OutcomeSuccess)
			return
		}

		var record Record
		if err := json.Unmarshal(data, &record); err != nil {
			s.logger.Warn("persisted session is corrupt, starting logged out", "error", err)
			s.metrics.RecordSessionRestore(observability.OutcomeFailure)
			return
		}

		// An authenticated record without user and token is incoherent;
		// degrade instead of restoring a half-session.
		if record.IsAuthenticated && (record.User == nil || record.Token == "") {
			s.logger.Warn("persisted session is incoherent, starting logged out")
			s.metrics.RecordSessionRestore(observability.OutcomeFailure)
			return
		}

		s.mu.Lock()
		s.snap.IsAuthenticated = record.IsAuthenticated
		s.snap.User = record.User
		s.snap.Token = record.Token
		s.snap.BiometricEnabled = record.BiometricEnabled
		s.mu.Unlock()

		s.metrics.RecordSessionRestore(observability.OutcomeSuccess)
		s.logger.Info("session restored", "authenticated", record.IsAuthenticated)
	})
}

// persistLocked writes the persisted subset. Callers hold s.mu.
// Failures are logged, never surfaced: persistence is best-effort and the
// session stays valid in memory for the life of the process.
func (s *Store) persistLocked(ctx context.Context) {
	record := Record{
		IsAuthenticated:  s.snap.IsAuthenticated,
		User:             s.snap.User,
		Token:            s.snap.Token,
		BiometricEnabled: s.snap.BiometricEnabled,
	}
	data, err := json.Marshal(record)
	if err != nil {
		s.logger.Warn("failed to encode session record", "error", err)
		return
	}
	if err := s.storage.Set(ctx, StorageKey, data); err != nil {
		s.logger.Warn("failed to persist session record", "error", err)
	}
}
