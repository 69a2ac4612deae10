package cmd

import (
	"errors"

	"github.com/paycrypto/hsmcore/pkg/miscutil"
	"github.com/spf13/cobra"
)

var (
	luhnBase   string
	luhnValidate bool
)

var luhnCmd = &cobra.Command{
	Use:   "luhn",
	Short: "Compute a Luhn check digit, or validate a full digit string",
	Example: `  paycrypto luhn --base 411111111111111
  paycrypto luhn --validate --base 4111111111111111`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if luhnBase == "" {
			return errors.New("base is required")
		}

		if luhnValidate {
			ok, err := miscutil.LuhnValidate(luhnBase)
			if err != nil {
				return err
			}

			cmd.Printf("valid: %t\n", ok)

			return nil
		}

		digit, err := miscutil.LuhnCheckDigit(luhnBase)
		if err != nil {
			return err
		}

		cmd.Printf("check digit: %d\n", digit)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(luhnCmd)

	luhnCmd.Flags().StringVar(&luhnBase, "base", "", "digit string")
	luhnCmd.Flags().BoolVar(&luhnValidate, "validate", false, "validate base as a complete number (including its check digit)")
}
