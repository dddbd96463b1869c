// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tradelens/tradelens/internal/biometric"
	"github.com/tradelens/tradelens/internal/config"
)

// configGateway reports the biometric capability declared in the CLI
// configuration. A mobile build replaces this with the platform's native
// API; the shape of the answers is identical.
type configGateway struct {
	hardware   bool
	enrolled   bool
	modalities []biometric.Modality
}

func newConfigGateway(cfg config.Config) (*configGateway, error) {
	modalities := make([]biometric.Modality, 0, len(cfg.BiometricModalities))
	for _, s := range cfg.BiometricModalities {
		m, err := biometric.ParseModality(s)
		if err != nil {
			return nil, err
		}
		modalities = append(modalities, m)
	}
	return &configGateway{
		hardware:   cfg.BiometricHardware,
		enrolled:   cfg.BiometricEnrolled,
		modalities: modalities,
	}, nil
}

func (g *configGateway) HasHardware(context.Context) (bool, error) {
	return g.hardware, nil
}

func (g *configGateway) Enrolled(context.Context) (bool, error) {
	return g.enrolled, nil
}

func (g *configGateway) SupportedModalities(context.Context) ([]biometric.Modality, error) {
	return g.modalities, nil
}

// Platform challenge codes as reported by the prompt shim. These are the
// raw codes the biometric layer normalizes; they never reach callers.
const (
	promptCodeUserCancel    = "user_cancel"
	promptCodeSystemCancel  = "system_cancel"
	promptCodeNotRecognized = "not_recognized"
)

// promptChallenger stands in for the platform's biometric prompt by
// asking on the terminal. "y" approves, "c" or an empty line dismisses,
// anything else fails the scan.
type promptChallenger struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptChallenger(in io.Reader, out io.Writer) *promptChallenger {
	return &promptChallenger{in: bufio.NewReader(in), out: out}
}

func (c *promptChallenger) Challenge(ctx context.Context, prompt, cancelLabel string) (biometric.ChallengeResult, error) {
	if err := ctx.Err(); err != nil {
		return biometric.ChallengeResult{Code: promptCodeSystemCancel}, nil
	}

	fmt.Fprintf(c.out, "%s [y = approve, c = %s]: ", prompt, cancelLabel)

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		// Input closed under the prompt; the platform reports this the
		// same way it reports an OS-interrupted scan.
		return biometric.ChallengeResult{Code: promptCodeSystemCancel}, nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return biometric.ChallengeResult{OK: true}, nil
	case "", "c", "cancel":
		return biometric.ChallengeResult{Code: promptCodeUserCancel}, nil
	default:
		return biometric.ChallengeResult{Code: promptCodeNotRecognized}, nil
	}
}
