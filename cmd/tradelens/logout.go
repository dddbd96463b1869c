// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package main

import (
	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout subcommand.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the persisted session",
		Long: `Sign out and clear the persisted session. Logging out when no
session exists is not an error; the end state is the same.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			app.Store.Logout(cmd.Context())
			cmd.Println("Logged out")
			return nil
		},
	}
}
