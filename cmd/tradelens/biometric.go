// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package main

import (
	"errors"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tradelens/tradelens/internal/biometric"
	"github.com/tradelens/tradelens/internal/session"
	"github.com/tradelens/tradelens/pkg/errutil"
)

// modalityAny asks the client to pick the preferred usable modality.
const modalityAny = "any"

// NewBiometricCmd creates the biometric command group.
func NewBiometricCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "biometric",
		Short: "Probe biometric capability and sign in with biometrics",
	}

	cmd.AddCommand(NewBiometricProbeCmd())
	cmd.AddCommand(NewBiometricLoginCmd())
	cmd.AddCommand(NewBiometricEnableCmd())
	cmd.AddCommand(NewBiometricDisableCmd())

	return cmd
}

// NewBiometricProbeCmd creates the biometric probe subcommand.
func NewBiometricProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Report the device's biometric capability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			cap := app.Prober.Probe(cmd.Context())

			cmd.Printf("Hardware:  %v\n", cap.HasHardware)
			cmd.Printf("Enrolled:  %v\n", cap.Enrolled)
			cmd.Printf("Available: %v\n", cap.Available())
			for _, m := range []biometric.Modality{
				biometric.ModalityFace,
				biometric.ModalityFingerprint,
				biometric.ModalityIris,
			} {
				if cap.Supports.Has(m) {
					cmd.Printf("Supports:  %s\n", m.DisplayName())
				}
			}
			return nil
		},
	}
}

// NewBiometricLoginCmd creates the biometric login subcommand.
func NewBiometricLoginCmd() *cobra.Command {
	var modalityFlag string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a biometric challenge",
		Long: `Sign in with a biometric challenge. With --modality any the
preferred usable modality is chosen, face over fingerprint. Dismissing
the prompt is not an error state; no failure message is recorded.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			modality, err := resolveModality(cmd, app, modalityFlag)
			if err != nil {
				return err
			}

			user, err := app.Store.BiometricLogin(cmd.Context(), modality)
			if err != nil {
				if errors.Is(err, session.ErrBiometricCancelled) {
					cmd.Println("Cancelled")
					return nil
				}
				errutil.LogError(app.Logger, "biometric login failed", err)
				if msg := app.Store.Snapshot().Err; msg != "" {
					cmd.PrintErrln(msg)
				}
				return err
			}

			cmd.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&modalityFlag, "modality", modalityAny,
		"biometric modality (face, fingerprint, or any)")

	return cmd
}

// resolveModality turns the --modality flag into a concrete modality,
// probing the device when the caller asked for "any".
func resolveModality(cmd *cobra.Command, app *App, flag string) (biometric.Modality, error) {
	if flag != modalityAny {
		return biometric.ParseModality(flag)
	}

	cap := app.Prober.Probe(cmd.Context())
	if m, ok := biometric.Preferred(cap); ok {
		return m, nil
	}
	// Nothing usable; let the store report the precise precondition
	// failure for the default modality.
	return biometric.ModalityFace, nil
}

// NewBiometricEnableCmd creates the biometric enable subcommand.
func NewBiometricEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Opt the account in to biometric sign-in",
		RunE:  runBiometricToggle(true),
	}
}

// NewBiometricDisableCmd creates the biometric disable subcommand.
func NewBiometricDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Opt the account out of biometric sign-in",
		RunE:  runBiometricToggle(false),
	}
}

func runBiometricToggle(enable bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if !app.Store.Snapshot().IsAuthenticated {
			return oops.Code("BIO_NOT_SIGNED_IN").Errorf("sign in before changing the biometric preference")
		}

		if enable {
			app.Store.EnableBiometric(cmd.Context())
			cmd.Println("Biometric login enabled")
		} else {
			app.Store.DisableBiometric(cmd.Context())
			cmd.Println("Biometric login disabled")
		}
		return nil
	}
}
