// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/tradelens/tradelens/pkg/errutil"
)

// NewResetPasswordCmd creates the reset-password subcommand.
func NewResetPasswordCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Request a password reset email",
		Long: `Request a password reset email. The confirmation message is the
same whether or not an account exists for the address.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store.RequestPasswordReset(cmd.Context(), email); err != nil {
				errutil.LogError(app.Logger, "password reset request failed", err)
				return err
			}

			cmd.Println("If an account exists for that address, a reset email is on its way.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email address")

	return cmd
}
