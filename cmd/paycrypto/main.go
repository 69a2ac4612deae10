// Command paycrypto is a CLI front end over the hsmcore primitives:
// key assembly, KCV, PIN-block construction, DUKPT derivation, TR-31
// parsing, Luhn arithmetic, and key parity adjustment.
package main

import (
	"os"

	"github.com/paycrypto/hsmcore/cmd/paycrypto/cmd"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
