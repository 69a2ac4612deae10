package cmd

import (
	"github.com/paycrypto/hsmcore/pkg/miscutil"
	"github.com/spf13/cobra"
)

var randomBytes int

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Generate n CSPRNG-sourced bytes, hex-encoded",
	Example: `  paycrypto random --bytes 16`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		h, err := miscutil.RandomHex(randomBytes)
		if err != nil {
			return err
		}

		cmd.Println(hexCase(h))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(randomCmd)

	randomCmd.Flags().IntVar(&randomBytes, "bytes", 16, "number of random bytes to generate")
}
