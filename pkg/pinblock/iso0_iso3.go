package pinblock

import (
	"github.com/paycrypto/hsmcore/internal/errs"
	"github.com/paycrypto/hsmcore/internal/observability"
	"github.com/paycrypto/hsmcore/pkg/hexutil"
	"github.com/paycrypto/hsmcore/pkg/miscutil"
)

// encodeClear builds the shared ISO-0/ISO-3 structure: controlNibble +
// pin-length nibble + PIN + filler to 16 nibbles, XORed against the
// "0000"+12-PAN-digits field.
func encodeClear(pin, pan string, controlNibble byte, filler func(n int) (string, error)) (string, error) {
	if err := validatePin(pin); err != nil {
		return "", err
	}
	panDigits, err := panField12(pan)
	if err != nil {
		return "", err
	}

	fillLen := 14 - len(pin)
	fill, err := filler(fillLen)
	if err != nil {
		return "", err
	}

	pinField := string(controlNibble) + pinLengthNibble(pin) + pin + fill
	panFieldStr := "0000" + panDigits

	return hexutil.XOR(pinField, panFieldStr)
}

func decodeClear(pinBlockHex, pan string, controlNibble byte, validateFiller func(fill string) error) (string, error) {
	panDigits, err := panField12(pan)
	if err != nil {
		return "", err
	}
	panFieldStr := "0000" + panDigits

	clearPinField, err := hexutil.XOR(pinBlockHex, panFieldStr)
	if err != nil {
		return "", err
	}

	if clearPinField[0] != controlNibble {
		return "", errs.New(errs.StructuralMismatch, op, "decoded pin block has unexpected control nibble")
	}

	pinLen, err := parsePinLengthNibble(clearPinField[1])
	if err != nil {
		return "", err
	}

	pinStart, pinEnd := 2, 2+pinLen
	if pinEnd > 16 {
		return "", errs.New(errs.StructuralMismatch, op, "pin length exceeds block boundary")
	}
	pin := clearPinField[pinStart:pinEnd]

	if validateFiller != nil {
		if err := validateFiller(clearPinField[pinEnd:]); err != nil {
			return "", err
		}
	}

	return pin, nil
}

func fFiller(n int) (string, error) {
	out := make([]byte, n)
	for i := range out {
		out[i] = 'F'
	}

	return string(out), nil
}

func randomFiller(n int) (string, error) {
	return miscutil.RandomHexNibbles(n)
}

func validateFFiller(fill string) error {
	for _, r := range fill {
		if r != 'F' {
			return errs.New(errs.StructuralMismatch, op, "decoded pin block has invalid padding character")
		}
	}

	return nil
}

// EncodeISO0 constructs an ISO 9564-1 Format 0 clear PIN block.
func EncodeISO0(pin, pan string, obs *observability.Observer) (string, error) {
	obs.Enter(op+".EncodeISO0", map[string]any{"pin_len": len(pin), "pan_len": len(pan)})
	result, err := encodeClear(pin, pan, '0', fFiller)
	obs.Exit(op+".EncodeISO0", err, nil)

	return result, err
}

// DecodeISO0 recovers the PIN from an ISO 9564-1 Format 0 block.
func DecodeISO0(pinBlockHex, pan string, obs *observability.Observer) (string, error) {
	obs.Enter(op+".DecodeISO0", map[string]any{"pan_len": len(pan)})
	result, err := decodeClear(pinBlockHex, pan, '0', validateFFiller)
	obs.Exit(op+".DecodeISO0", err, nil)

	return result, err
}

// EncodeISO3 constructs an ISO 9564-1 Format 3 PIN block: identical to
// Format 0 except the control nibble is '3' and the filler is random
// hex digits from a CSPRNG rather than 'F'.
func EncodeISO3(pin, pan string, obs *observability.Observer) (string, error) {
	obs.Enter(op+".EncodeISO3", map[string]any{"pin_len": len(pin), "pan_len": len(pan)})
	result, err := encodeClear(pin, pan, '3', randomFiller)
	obs.Exit(op+".EncodeISO3", err, nil)

	return result, err
}

// DecodeISO3 recovers the PIN from an ISO 9564-1 Format 3 block. The
// filler is random, so only its length (implied by the pin length
// field) is checked, never its content.
func DecodeISO3(pinBlockHex, pan string, obs *observability.Observer) (string, error) {
	obs.Enter(op+".DecodeISO3", map[string]any{"pan_len": len(pan)})
	result, err := decodeClear(pinBlockHex, pan, '3', nil)
	obs.Exit(op+".DecodeISO3", err, nil)

	return result, err
}
