// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tradelens/tradelens/pkg/errutil"
)

// NewRegisterCmd creates the register subcommand.
func NewRegisterCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the local backend",
		Long: `Create an account on the local backend. Registration only exists
for the local backend; the mock backend accepts any well-formed
credentials without an account.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if app.Local == nil {
				return oops.Code("REGISTER_UNSUPPORTED").
					With("backend", app.Config.Backend).
					Errorf("register requires --backend local")
			}

			user, err := app.Local.Register(cmd.Context(), name, email, password)
			if err != nil {
				errutil.LogError(app.Logger, "registration failed", err)
				return err
			}

			cmd.Printf("Registered %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (default: derived from email)")
	cmd.Flags().StringVar(&email, "email", "", "account email address")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}
