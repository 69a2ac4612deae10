// Package cmd provides the CLI commands for the paycrypto application.
package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/paycrypto/hsmcore/internal/config"
	"github.com/paycrypto/hsmcore/internal/observability"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	cfg           *config.Config
	correlationID string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "paycrypto",
	Short: "Payment-cryptography primitives: key assembly, KCV, PIN blocks, DUKPT, TR-31",
	Long: `paycrypto is a command-line front end over a library of
payment-industry cryptographic primitives: multi-part key assembly,
Key Check Value computation, ISO 9564-1 PIN-block construction,
ANSI X9.24-1 DUKPT session-key derivation, TR-31 key-block structural
parsing, Luhn check digits, and DES key parity adjustment.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize configuration: %w", err)
		}
		v := config.GetViper()
		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
			}
		}
		_ = v.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
		_ = v.BindPFlag("log.format", cmd.Flags().Lookup("log-format"))
		if err := v.Unmarshal(config.Get()); err != nil {
			return fmt.Errorf("unable to decode into config struct: %w", err)
		}
		cfg = config.Get()
		observability.InitLogger(cfg.Log.Level, cfg.Log.Format)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// newObserver builds the per-invocation Observer every subcommand uses,
// tagging its events with the invocation's correlation id.
func newObserver() *observability.Observer {
	return observability.NewWithID(correlationID)
}

// hexCase renders a core-returned (always uppercase) hex string per the
// output.upper config setting; core packages themselves never vary
// casing, this only affects what the CLI echoes back.
func hexCase(s string) string {
	if cfg.Output.Upper {
		return s
	}

	return strings.ToLower(s)
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is $HOME/.paycrypto/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "human", "logging format (human, json)")
	rootCmd.PersistentFlags().
		StringVar(&correlationID, "correlation-id", "", "correlation id to tag this invocation's log events with (default: random)")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}
