package cmd

import (
	"errors"

	"github.com/paycrypto/hsmcore/pkg/blockcipher"
	"github.com/paycrypto/hsmcore/pkg/kcv"
	"github.com/spf13/cobra"
)

var (
	kcvKeyHex string
	kcvFamily string
)

var kcvCmd = &cobra.Command{
	Use:   "kcv",
	Short: "Compute the Key Check Value of a key",
	Example: `  # 3DES KCV
  paycrypto kcv --key 0123456789ABCDEFFEDCBA9876543210 --family 3des

  # AES KCV
  paycrypto kcv --key 00112233445566778899AABBCCDDEEFF --family aes`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if kcvKeyHex == "" {
			return errors.New("key is required")
		}
		family, err := parseFamily(kcvFamily)
		if err != nil {
			return err
		}

		result, err := kcv.Compute(blockcipher.New(), kcvKeyHex, family, newObserver())
		if err != nil {
			return err
		}

		cmd.Printf("kcv: %s\n", hexCase(result))

		return nil
	},
}

func parseFamily(s string) (blockcipher.Family, error) {
	switch s {
	case "aes":
		return blockcipher.AES, nil
	case "3des":
		return blockcipher.TripleDES, nil
	default:
		return 0, errors.New("family must be \"aes\" or \"3des\"")
	}
}

func init() {
	rootCmd.AddCommand(kcvCmd)

	kcvCmd.Flags().StringVar(&kcvKeyHex, "key", "", "key in hex")
	kcvCmd.Flags().StringVar(&kcvFamily, "family", "3des", "cipher family: aes or 3des")
}
