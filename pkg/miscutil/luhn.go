package miscutil

import (
	"github.com/paycrypto/hsmcore/internal/errs"
)

const luhnOp = "miscutil.luhn"

func digitsOf(s string) ([]int, error) {
	digits := make([]int, len(s))
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, errs.New(errs.MalformedInput, luhnOp, "input contains a non-digit character")
		}
		digits[i] = int(r - '0')
	}

	return digits, nil
}

// LuhnCheckDigit computes the Luhn check digit for base, a digit
// string the check digit will be appended to. Doubling starts at the
// position the check digit will occupy (the rightmost position once
// appended), so the rightmost digit of base is doubled first.
func LuhnCheckDigit(base string) (int, error) {
	digits, err := digitsOf(base)
	if err != nil {
		return 0, err
	}

	sum := 0
	double := true // the check-digit position itself is doubled.
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return (10 - sum%10) % 10, nil
}

// LuhnValidate reports whether digits forms a valid Luhn sequence
// (its own check digit included as the last character).
func LuhnValidate(digits string) (bool, error) {
	d, err := digitsOf(digits)
	if err != nil {
		return false, err
	}

	sum := 0
	double := false
	for i := len(d) - 1; i >= 0; i-- {
		v := d[i]
		if double {
			v *= 2
			if v > 9 {
				v -= 9
			}
		}
		sum += v
		double = !double
	}

	return sum%10 == 0, nil
}
