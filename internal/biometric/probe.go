// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package biometric

import (
	"context"
	"log/slog"
)

// Gateway queries the platform for biometric capability. Implementations
// wrap the platform's native API; any of these calls may fail.
type Gateway interface {
	// HasHardware reports whether the device has biometric hardware.
	HasHardware(ctx context.Context) (bool, error)

	// Enrolled reports whether any biometric credential is enrolled.
	Enrolled(ctx context.Context) (bool, error)

	// SupportedModalities returns the modalities the hardware supports.
	SupportedModalities(ctx context.Context) ([]Modality, error)
}

// Supports reports which modalities the device hardware can perform.
type Supports struct {
	Face        bool
	Fingerprint bool
	Iris        bool
}

// Has returns whether the given modality is supported.
func (s Supports) Has(m Modality) bool {
	switch m {
	case ModalityFace:
		return s.Face
	case ModalityFingerprint:
		return s.Fingerprint
	case ModalityIris:
		return s.Iris
	default:
		return false
	}
}

// Capability is a point-in-time view of the device's biometric state.
// It is never cached: enrollment can change while the app is foregrounded
// (the user can add a fingerprint in Settings), so callers re-probe.
type Capability struct {
	HasHardware bool
	Enrolled    bool
	Supports    Supports
}

// Available reports whether biometric authentication can be attempted at
// all: hardware present and at least one credential enrolled.
func (c Capability) Available() bool {
	return c.HasHardware && c.Enrolled
}

// CanUse reports whether the given modality is usable right now.
func (c Capability) CanUse(m Modality) bool {
	return c.Available() && c.Supports.Has(m)
}

// Prober derives Capability from a Gateway.
type Prober struct {
	gateway Gateway
	logger  *slog.Logger
}

// NewProber creates a Prober. A nil logger falls back to slog.Default.
func NewProber(gateway Gateway, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{gateway: gateway, logger: logger}
}

// Probe queries the current biometric capability. It never returns an
// error: a failing platform query folds into false for that dimension so
// callers can always render a definite state. Failures are logged.
func (p *Prober) Probe(ctx context.Context) Capability {
	var cap Capability

	hasHardware, err := p.gateway.HasHardware(ctx)
	if err != nil {
		p.logger.Debug("hardware query failed", "error", err)
	} else {
		cap.HasHardware = hasHardware
	}

	enrolled, err := p.gateway.Enrolled(ctx)
	if err != nil {
		p.logger.Debug("enrollment query failed", "error", err)
	} else {
		cap.Enrolled = enrolled
	}

	modalities, err := p.gateway.SupportedModalities(ctx)
	if err != nil {
		p.logger.Debug("supported modalities query failed", "error", err)
		return cap
	}
	for _, m := range modalities {
		switch m {
		case ModalityFace:
			cap.Supports.Face = true
		case ModalityFingerprint:
			cap.Supports.Fingerprint = true
		case ModalityIris:
			cap.Supports.Iris = true
		}
	}

	return cap
}
