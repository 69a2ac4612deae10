package cmd

import (
	"errors"

	"github.com/paycrypto/hsmcore/pkg/blockcipher"
	"github.com/paycrypto/hsmcore/pkg/dukpt"
	"github.com/spf13/cobra"
)

var (
	dukptBdk string
	dukptKsn string
)

var dukptCmd = &cobra.Command{
	Use:   "dukpt",
	Short: "Derive an ANSI X9.24-1 DUKPT key set from a BDK and KSN",
	Example: `  paycrypto dukpt --bdk 0123456789ABCDEFFEDCBA9876543210 --ksn FFFF9876543210E00001`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if dukptBdk == "" || dukptKsn == "" {
			return errors.New("bdk and ksn are required")
		}

		set, err := dukpt.Derive(blockcipher.New(), dukptBdk, dukptKsn, newObserver())
		if err != nil {
			return err
		}

		cmd.Printf("ipek:               %s\n", hexCase(set.IPEKHex))
		cmd.Printf("transaction key:    %s\n", hexCase(set.TransactionKeyHex))
		cmd.Printf("pin key:            %s\n", hexCase(set.PinKeyHex))
		cmd.Printf("mac request key:    %s\n", hexCase(set.MacRequestKeyHex))
		cmd.Printf("mac response key:   %s\n", hexCase(set.MacResponseKeyHex))
		cmd.Printf("data request key:   %s\n", hexCase(set.DataRequestKeyHex))
		cmd.Printf("data response key:  %s\n", hexCase(set.DataResponseKeyHex))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dukptCmd)

	dukptCmd.Flags().StringVar(&dukptBdk, "bdk", "", "Base Derivation Key hex (16 or 24 bytes)")
	dukptCmd.Flags().StringVar(&dukptKsn, "ksn", "", "Key Serial Number hex (exactly 10 bytes)")
}
