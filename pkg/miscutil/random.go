package miscutil

import (
	"crypto/rand"

	"github.com/paycrypto/hsmcore/internal/errs"
	"github.com/paycrypto/hsmcore/pkg/hexutil"
)

const randomOp = "miscutil.random"

// RandomHex returns n CSPRNG-sourced bytes hex-encoded (uppercase).
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Wrap(errs.Internal, randomOp, err)
	}

	return hexutil.Encode(buf), nil
}

// RandomHexNibbles returns n CSPRNG hex digits (0-9A-F), one nibble
// per draw, so the result never contains a non-hex character — used
// for ISO-3 PIN filler and ISO-4 random nibbles, where the standard
// requires random nibbles, not arbitrary random bytes reinterpreted as
// hex (spec.md §9).
func RandomHexNibbles(n int) (string, error) {
	const alphabet = "0123456789ABCDEF"
	out := make([]byte, n)
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Wrap(errs.Internal, randomOp, err)
	}
	for i, b := range buf {
		out[i] = alphabet[b%16]
	}

	return string(out), nil
}
