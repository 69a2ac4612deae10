package cmd

import (
	"errors"

	"github.com/paycrypto/hsmcore/pkg/hexutil"
	"github.com/paycrypto/hsmcore/pkg/miscutil"
	"github.com/spf13/cobra"
)

var parityKeyHex string

var parityCmd = &cobra.Command{
	Use:   "parity",
	Short: "Check or fix the DES odd-parity of a 16- or 24-byte key",
	Example: `  paycrypto parity --key 0123456789ABCDEFFEDCBA9876543210`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if parityKeyHex == "" {
			return errors.New("key is required")
		}

		key, err := hexutil.Decode(parityKeyHex)
		if err != nil {
			return err
		}

		if miscutil.CheckKeyParity(key) {
			cmd.Println("parity: ok")

			return nil
		}

		fixed := miscutil.FixKeyParity(key)
		cmd.Printf("parity: adjusted\nfixed key: %s\n", hexCase(hexutil.Encode(fixed)))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(parityCmd)

	parityCmd.Flags().StringVar(&parityKeyHex, "key", "", "key hex (16 or 24 bytes)")
}
