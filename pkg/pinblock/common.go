package pinblock

import (
	"fmt"
	"strconv"

	"github.com/paycrypto/hsmcore/internal/errs"
)

const op = "pinblock"

func validatePin(pin string) error {
	if len(pin) < 4 || len(pin) > 12 {
		return errs.New(errs.InvalidLength, op, "pin must be 4-12 digits")
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return errs.New(errs.MalformedInput, op, "pin contains a non-digit character")
		}
	}

	return nil
}

// panField12 returns the 12 digits of pan immediately preceding the
// check digit: strip the rightmost (check) digit, then take the
// rightmost 12 digits of what remains. Requires len(pan) >= 13 — for
// len(pan) == 12 the standard leaves the check-digit-exclusive slice
// implementation-defined, so this package specifies length >= 13 as a
// precondition (spec.md §9 open question).
func panField12(pan string) (string, error) {
	if len(pan) < 13 || len(pan) > 19 {
		return "", errs.New(
			errs.InvalidLength,
			op,
			"pan must be 13-19 digits to exclude a check digit",
		)
	}
	for _, r := range pan {
		if r < '0' || r > '9' {
			return "", errs.New(errs.MalformedInput, op, "pan contains a non-digit character")
		}
	}

	withoutCheckDigit := pan[:len(pan)-1]

	return withoutCheckDigit[len(withoutCheckDigit)-12:], nil
}

func pinLengthNibble(pin string) string {
	return fmt.Sprintf("%X", len(pin))
}

func parsePinLengthNibble(nibble byte) (int, error) {
	n, err := strconv.ParseInt(string(nibble), 16, 64)
	if err != nil || n < 4 || n > 12 {
		return 0, errs.New(errs.StructuralMismatch, op, "decoded pin length nibble is out of range")
	}

	return int(n), nil
}
