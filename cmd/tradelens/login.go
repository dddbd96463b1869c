// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tradelens/tradelens/internal/credentials"
	"github.com/tradelens/tradelens/pkg/errutil"
)

// NewLoginCmd creates the login subcommand.
func NewLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long: `Sign in with email and password. The credentials are validated
locally before the backend is contacted; on success the session is
persisted and restored by later commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result := credentials.Validate(credentials.Credentials{
				Email:    email,
				Password: password,
			})
			if !result.Valid {
				for _, field := range []string{credentials.FieldEmail, credentials.FieldPassword} {
					if msg, ok := result.FieldErrors[field]; ok {
						cmd.PrintErrf("%s: %s\n", field, msg)
					}
				}
				return oops.Code("LOGIN_INVALID_INPUT").Errorf("credentials failed validation")
			}

			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.Store.Login(cmd.Context(), email, password)
			if err != nil {
				errutil.LogError(app.Logger, "login failed", err)
				if msg := app.Store.Snapshot().Err; msg != "" {
					cmd.PrintErrln(msg)
				}
				return err
			}

			cmd.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email address")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}
