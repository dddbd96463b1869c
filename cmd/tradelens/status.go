// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package main

import (
	"encoding/json"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tradelens/tradelens/internal/session"
)

// statusOutput is the machine-readable shape of the status command.
type statusOutput struct {
	Authenticated    bool          `json:"authenticated"`
	User             *session.User `json:"user,omitempty"`
	BiometricEnabled bool          `json:"biometricEnabled"`
	Route            string        `json:"route"`
}

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current session state",
		Long: `Show the current session state after restoring it from disk,
including the route a client would mount for it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			snap := app.Store.Snapshot()
			out := statusOutput{
				Authenticated:    snap.IsAuthenticated,
				User:             snap.User,
				BiometricEnabled: snap.BiometricEnabled,
				Route:            session.Gate(snap).String(),
			}

			if asJSON {
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return oops.Code("STATUS_ENCODE_FAILED").Wrap(err)
				}
				cmd.Println(string(data))
				return nil
			}

			if !out.Authenticated {
				cmd.Println("Not signed in")
				return nil
			}
			cmd.Printf("Signed in as %s <%s>\n", out.User.Name, out.User.Email)
			cmd.Printf("Biometric login: %s\n", enabledWord(out.BiometricEnabled))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print status as JSON")

	return cmd
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
