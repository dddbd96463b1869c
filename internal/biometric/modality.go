// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package biometric

import "github.com/samber/oops"

// Modality is a specific biometric method.
type Modality string

// Supported modalities. Iris is reported by capability probes but has no
// challenge path; the platforms this client targets expose it read-only.
const (
	ModalityFace        Modality = "face"
	ModalityFingerprint Modality = "fingerprint"
	ModalityIris        Modality = "iris"
)

// ParseModality converts a user-supplied string into a Modality.
func ParseModality(s string) (Modality, error) {
	switch Modality(s) {
	case ModalityFace:
		return ModalityFace, nil
	case ModalityFingerprint:
		return ModalityFingerprint, nil
	case ModalityIris:
		return ModalityIris, nil
	default:
		return "", oops.Code("BIO_UNKNOWN_MODALITY").
			With("input", s).
			Errorf("unknown biometric modality %q", s)
	}
}

// String returns the modality name.
func (m Modality) String() string {
	return string(m)
}

// DisplayName returns the user-facing name for prompt and error text.
func (m Modality) DisplayName() string {
	switch m {
	case ModalityFace:
		return "Face ID"
	case ModalityFingerprint:
		return "Fingerprint"
	case ModalityIris:
		return "Iris"
	default:
		return string(m)
	}
}
