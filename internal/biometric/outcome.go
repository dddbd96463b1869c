// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package biometric

// ErrorKind classifies why a biometric attempt did not succeed.
type ErrorKind int

// Outcome error kinds forming the closed taxonomy. Platform error strings
// never travel past this package; callers branch on Kind.
const (
	KindNone ErrorKind = iota
	KindHardwareUnavailable
	KindNotEnrolled
	KindModalityUnsupported
	KindUserCancelled
	KindAuthenticationFailed
	KindPlatformError
)

// String returns the kind name for logs.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindHardwareUnavailable:
		return "hardware_unavailable"
	case KindNotEnrolled:
		return "not_enrolled"
	case KindModalityUnsupported:
		return "modality_unsupported"
	case KindUserCancelled:
		return "user_cancelled"
	case KindAuthenticationFailed:
		return "authentication_failed"
	case KindPlatformError:
		return "platform_error"
	default:
		return "unknown"
	}
}

// Retryable reports whether re-attempting the same challenge can succeed
// without the user changing device state first.
func (k ErrorKind) Retryable() bool {
	return k == KindAuthenticationFailed || k == KindPlatformError
}

// Outcome is the normalized result of one biometric attempt.
type Outcome struct {
	OK      bool
	Kind    ErrorKind
	Message string
}

// Cancelled reports whether the user dismissed the platform prompt.
// Cancellation is a quiet non-success: the UI shows no error for it.
func (o Outcome) Cancelled() bool {
	return o.Kind == KindUserCancelled
}

func success() Outcome {
	return Outcome{OK: true, Kind: KindNone}
}

func failure(kind ErrorKind, message string) Outcome {
	return Outcome{OK: false, Kind: kind, Message: message}
}
