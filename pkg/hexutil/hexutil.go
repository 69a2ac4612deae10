// Package hexutil provides the hex<->bytes primitives every other
// core package builds on: decode/encode and equal-length N-operand
// XOR. Every public input/output elsewhere in this module is a hex
// string, a decimal-digit string, or structured data built from these
// two primitives — raw binary never crosses a package boundary.
package hexutil

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/paycrypto/hsmcore/internal/errs"
)

const op = "hexutil"

// Decode parses a case-insensitive hex string into bytes. An odd
// length or a non-hex character fails with errs.MalformedInput.
func Decode(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errs.New(errs.MalformedInput, op+".Decode", "hex string has odd length")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errs.Wrap(errs.MalformedInput, op+".Decode", err)
	}

	return b, nil
}

// Encode renders bytes as an uppercase hex string.
func Encode(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// XOR returns the bitwise XOR across all operands, which must decode
// to equal-length byte sequences. A single-operand input returns its
// operand (canonicalized to uppercase); an empty input returns "".
// Mismatched lengths fail with errs.InvalidLength — this library never
// silently zero-extends a short operand (spec §9 open question).
func XOR(operands ...string) (string, error) {
	if len(operands) == 0 {
		return "", nil
	}

	decoded := make([][]byte, len(operands))
	for i, s := range operands {
		b, err := Decode(s)
		if err != nil {
			return "", err
		}
		decoded[i] = b
	}

	n := len(decoded[0])
	for i, b := range decoded {
		if len(b) != n {
			return "", errs.New(
				errs.InvalidLength,
				op+".XOR",
				fmt.Sprintf("operand %d length %d does not match operand 0 length %d", i, len(b), n),
			)
		}
	}

	result := make([]byte, n)
	copy(result, decoded[0])
	for _, b := range decoded[1:] {
		for i := range result {
			result[i] ^= b[i]
		}
	}

	return Encode(result), nil
}

// XORBytes is the raw-byte equivalent of XOR, used internally by
// packages that already hold decoded byte slices.
func XORBytes(operands ...[]byte) ([]byte, error) {
	if len(operands) == 0 {
		return []byte{}, nil
	}
	n := len(operands[0])
	for i, b := range operands {
		if len(b) != n {
			return nil, errs.New(
				errs.InvalidLength,
				op+".XORBytes",
				fmt.Sprintf("operand %d length %d does not match operand 0 length %d", i, len(b), n),
			)
		}
	}
	result := make([]byte, n)
	copy(result, operands[0])
	for _, b := range operands[1:] {
		for i := range result {
			result[i] ^= b[i]
		}
	}

	return result, nil
}
