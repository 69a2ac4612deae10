package pinblock

import (
	"fmt"

	"github.com/paycrypto/hsmcore/internal/errs"
	"github.com/paycrypto/hsmcore/internal/observability"
	"github.com/paycrypto/hsmcore/pkg/blockcipher"
	"github.com/paycrypto/hsmcore/pkg/hexutil"
	"github.com/paycrypto/hsmcore/pkg/miscutil"
)

const aesBlockNibbles = 32 // 16-byte AES block, 32 hex nibbles.

// ISO4Result holds both artifacts an ISO-4 encode produces: the clear
// PIN field (useful for audit/debug) and the final encrypted block.
type ISO4Result struct {
	ClearPinField string
	EncryptedHex  string
}

func validPekLength(n int) bool {
	return n == 16 || n == 24 || n == 32
}

// pinFieldISO4 builds block A: "4" || pin-length nibble || PIN || 'A'
// fill to 16 nibbles || 16 random nibbles.
func pinFieldISO4(pin string) (string, error) {
	if err := validatePin(pin); err != nil {
		return "", err
	}

	fillLen := 14 - len(pin)
	aFill := make([]byte, fillLen)
	for i := range aFill {
		aFill[i] = 'A'
	}

	tail, err := miscutil.RandomHexNibbles(16)
	if err != nil {
		return "", err
	}

	return "4" + pinLengthNibble(pin) + pin + string(aFill) + tail, nil
}

// panFieldISO4 builds block B: hex(m) || PAN || '0' fill to 32 nibbles,
// where PAN is left-padded with '0' to at least 12 digits and
// m = len(paddedPan) - 12.
func panFieldISO4(pan string) (string, error) {
	if len(pan) == 0 || len(pan) > 19 {
		return "", errs.New(errs.InvalidLength, op, "pan must be 1-19 digits")
	}
	for _, r := range pan {
		if r < '0' || r > '9' {
			return "", errs.New(errs.MalformedInput, op, "pan contains a non-digit character")
		}
	}

	padded := pan
	for len(padded) < 12 {
		padded = "0" + padded
	}

	m := len(padded) - 12
	if m > 15 {
		return "", errs.New(errs.InvalidLength, op, "pan too long to encode its length nibble")
	}

	field := fmt.Sprintf("%X", m) + padded
	for len(field) < aesBlockNibbles {
		field += "0"
	}

	return field, nil
}

// EncodeISO4 constructs an ISO 9564-1 Format 4 PIN block using the AES
// Encrypt-XOR-Encrypt construction (spec.md §4.4.3). pekHex must decode
// to 16, 24, or 32 bytes.
func EncodeISO4(
	provider blockcipher.Provider,
	pin, pan, pekHex string,
	obs *observability.Observer,
) (ISO4Result, error) {
	obs.Enter(op+".EncodeISO4", map[string]any{"pin_len": len(pin), "pan_len": len(pan)})

	result, err := encodeISO4(provider, pin, pan, pekHex)
	obs.Exit(op+".EncodeISO4", err, nil)

	return result, err
}

func encodeISO4(provider blockcipher.Provider, pin, pan, pekHex string) (ISO4Result, error) {
	if pekHex == "" {
		return ISO4Result{}, errs.New(errs.MissingRequired, op, "iso-4 requires a pek")
	}
	pek, err := hexutil.Decode(pekHex)
	if err != nil {
		return ISO4Result{}, err
	}
	if !validPekLength(len(pek)) {
		return ISO4Result{}, errs.New(
			errs.InvalidLength,
			op,
			fmt.Sprintf("pek must be 16, 24, or 32 bytes, got %d", len(pek)),
		)
	}

	blockAHex, err := pinFieldISO4(pin)
	if err != nil {
		return ISO4Result{}, err
	}
	blockBHex, err := panFieldISO4(pan)
	if err != nil {
		return ISO4Result{}, err
	}

	blockA, err := hexutil.Decode(blockAHex)
	if err != nil {
		return ISO4Result{}, err
	}
	blockB, err := hexutil.Decode(blockBHex)
	if err != nil {
		return ISO4Result{}, err
	}

	e1, err := provider.EncryptECB(blockcipher.AES, pek, blockA)
	if err != nil {
		return ISO4Result{}, errs.Wrap(errs.CryptoFailure, op+".EncodeISO4", err)
	}
	x, err := hexutil.XORBytes(blockB, e1)
	if err != nil {
		return ISO4Result{}, err
	}
	final, err := provider.EncryptECB(blockcipher.AES, pek, x)
	if err != nil {
		return ISO4Result{}, errs.Wrap(errs.CryptoFailure, op+".EncodeISO4", err)
	}

	return ISO4Result{ClearPinField: blockAHex, EncryptedHex: hexutil.Encode(final)}, nil
}

// DecodeISO4 recovers the clear PIN field from an ISO-4 encrypted block
// by reversing the Encrypt-XOR-Encrypt construction, then extracts the
// PIN from it.
func DecodeISO4(
	provider blockcipher.Provider,
	encryptedHex, pan, pekHex string,
	obs *observability.Observer,
) (string, error) {
	obs.Enter(op+".DecodeISO4", map[string]any{"pan_len": len(pan)})

	pin, err := decodeISO4(provider, encryptedHex, pan, pekHex)
	obs.Exit(op+".DecodeISO4", err, nil)

	return pin, err
}

func decodeISO4(provider blockcipher.Provider, encryptedHex, pan, pekHex string) (string, error) {
	if pekHex == "" {
		return "", errs.New(errs.MissingRequired, op, "iso-4 requires a pek")
	}
	pek, err := hexutil.Decode(pekHex)
	if err != nil {
		return "", err
	}
	if !validPekLength(len(pek)) {
		return "", errs.New(
			errs.InvalidLength,
			op,
			fmt.Sprintf("pek must be 16, 24, or 32 bytes, got %d", len(pek)),
		)
	}

	final, err := hexutil.Decode(encryptedHex)
	if err != nil {
		return "", err
	}
	x, err := provider.DecryptECB(blockcipher.AES, pek, final)
	if err != nil {
		return "", errs.Wrap(errs.CryptoFailure, op+".DecodeISO4", err)
	}

	blockBHex, err := panFieldISO4(pan)
	if err != nil {
		return "", err
	}
	blockB, err := hexutil.Decode(blockBHex)
	if err != nil {
		return "", err
	}

	e1, err := hexutil.XORBytes(x, blockB)
	if err != nil {
		return "", err
	}
	blockA, err := provider.DecryptECB(blockcipher.AES, pek, e1)
	if err != nil {
		return "", errs.Wrap(errs.CryptoFailure, op+".DecodeISO4", err)
	}

	blockAHex := hexutil.Encode(blockA)
	if blockAHex[0] != '4' {
		return "", errs.New(errs.StructuralMismatch, op, "decoded pin field has unexpected control nibble")
	}
	pinLen, err := parsePinLengthNibble(blockAHex[1])
	if err != nil {
		return "", err
	}
	pinEnd := 2 + pinLen
	if pinEnd > 16 {
		return "", errs.New(errs.StructuralMismatch, op, "pin length exceeds block boundary")
	}

	return blockAHex[2:pinEnd], nil
}
