package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tradelens/tradelens/internal/config"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the TradeLens CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tradelens",
		Short: "TradeLens - trade data lookup client",
		Long: `TradeLens is a trade data lookup client with a persistent local
session, email/password sign-in, and biometric authentication.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Flags mirror the config file keys; a set flag wins over the file.
	defaults := config.Default()
	cmd.PersistentFlags().String("log-format", defaults.LogFormat, "log format (json or text)")
	cmd.PersistentFlags().String("state-dir", defaults.StateDir, "session state directory (default: XDG_STATE_HOME/tradelens)")
	cmd.PersistentFlags().String("metrics-addr", defaults.MetricsAddr, "metrics/health HTTP address (empty = disabled)")
	cmd.PersistentFlags().String("backend", defaults.Backend, "authentication backend (mock or local)")
	cmd.PersistentFlags().Int("login-delay-ms", defaults.LoginDelayMS, "simulated network latency of the mock backend")
	cmd.PersistentFlags().Bool("biometric-hardware", defaults.BiometricHardware, "simulate presence of biometric hardware")
	cmd.PersistentFlags().Bool("biometric-enrolled", defaults.BiometricEnrolled, "simulate an enrolled biometric credential")
	cmd.PersistentFlags().StringSlice("biometric-modalities", defaults.BiometricModalities,
		"simulated hardware modalities ("+strings.Join([]string{"face", "fingerprint", "iris"}, ", ")+")")

	// Add subcommands
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewBiometricCmd())
	cmd.AddCommand(NewRegisterCmd())
	cmd.AddCommand(NewResetPasswordCmd())

	return cmd
}
