// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package biometric

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/oops"
)

// Platform challenge result codes the Authenticator understands. Anything
// else is treated as a generic authentication failure.
const (
	codeUserCancel   = "user_cancel"
	codeSystemCancel = "system_cancel"
)

// CancelLabel is the dismiss-button text passed to the platform prompt.
const CancelLabel = "Cancel"

// ChallengeResult is the raw platform answer to a challenge.
type ChallengeResult struct {
	OK   bool
	Code string // platform error code when OK is false, empty otherwise
}

// Challenger presents the platform's live biometric prompt. The prompt is
// platform UI outside this process's control; the call resolves when the
// user completes, fails, or dismisses it.
type Challenger interface {
	Challenge(ctx context.Context, prompt, cancelLabel string) (ChallengeResult, error)
}

// Authenticator runs biometric challenges with capability preconditions
// checked up front, and normalizes every result into an Outcome.
type Authenticator struct {
	prober     *Prober
	challenger Challenger
	logger     *slog.Logger
}

// NewAuthenticator creates an Authenticator.
// Returns an error if any required dependency is nil.
func NewAuthenticator(prober *Prober, challenger Challenger, logger *slog.Logger) (*Authenticator, error) {
	if prober == nil {
		return nil, oops.Code("BIO_NIL_DEPENDENCY").Errorf("prober is required")
	}
	if challenger == nil {
		return nil, oops.Code("BIO_NIL_DEPENDENCY").Errorf("challenger is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{prober: prober, challenger: challenger, logger: logger}, nil
}

// Authenticate runs the ordered precondition checks and, only if all pass,
// issues the live platform challenge for the modality. The challenger is
// never invoked when a precondition fails.
func (a *Authenticator) Authenticate(ctx context.Context, modality Modality, prompt string) Outcome {
	cap := a.prober.Probe(ctx)

	switch {
	case !cap.HasHardware:
		return failure(KindHardwareUnavailable, "Biometric hardware not available")
	case !cap.Enrolled:
		return failure(KindNotEnrolled, "No biometrics enrolled")
	case !cap.Supports.Has(modality):
		return failure(KindModalityUnsupported,
			fmt.Sprintf("%s is not supported on this device", modality.DisplayName()))
	}

	if prompt == "" {
		prompt = fmt.Sprintf("Verify with %s", modality.DisplayName())
	}

	result, err := a.challenger.Challenge(ctx, prompt, CancelLabel)
	if err != nil {
		a.logger.Warn("platform challenge errored",
			"modality", modality.String(),
			"error", err,
		)
		return failure(KindPlatformError, "Biometric authentication is temporarily unavailable")
	}

	if result.OK {
		return success()
	}

	switch result.Code {
	case codeUserCancel, codeSystemCancel:
		return failure(KindUserCancelled, "Cancelled")
	default:
		a.logger.Debug("platform challenge failed",
			"modality", modality.String(),
			"code", result.Code,
		)
		return failure(KindAuthenticationFailed, "Authentication failed")
	}
}

// Preferred returns the modality to use when the caller asks for "any
// biometric". Face wins over fingerprint when both are usable; the
// tie-break is fixed and not user-configurable. The second return is false
// when no challengeable modality is usable.
func Preferred(cap Capability) (Modality, bool) {
	switch {
	case cap.CanUse(ModalityFace):
		return ModalityFace, true
	case cap.CanUse(ModalityFingerprint):
		return ModalityFingerprint, true
	default:
		return "", false
	}
}

// AuthenticateAny probes capability and challenges the preferred usable
// modality. With nothing usable it reports ModalityUnsupported without
// touching the challenger.
func (a *Authenticator) AuthenticateAny(ctx context.Context, prompt string) Outcome {
	cap := a.prober.Probe(ctx)

	switch {
	case !cap.HasHardware:
		return failure(KindHardwareUnavailable, "Biometric hardware not available")
	case !cap.Enrolled:
		return failure(KindNotEnrolled, "No biometrics enrolled")
	}

	modality, ok := Preferred(cap)
	if !ok {
		return failure(KindModalityUnsupported, "No supported biometric authentication method available")
	}

	return a.Authenticate(ctx, modality, prompt)
}
