// Package kcv computes a Key Check Value: the first three bytes of
// the ECB-mode encryption of an all-zero block under a key, used to
// let two parties confirm they hold the same key without revealing it
// (spec.md §4.2).
package kcv

import (
	"fmt"

	"github.com/paycrypto/hsmcore/internal/errs"
	"github.com/paycrypto/hsmcore/internal/observability"
	"github.com/paycrypto/hsmcore/pkg/blockcipher"
	"github.com/paycrypto/hsmcore/pkg/hexutil"
)

const op = "kcv"

const kcvLength = 3 // bytes; 6 hex chars.

// Compute returns the 6-hex-char, uppercase KCV of keyHex under the
// given cipher family. For family=3DES, a 16-hex-char (8-byte) key is
// treated as a single DES component and concatenated with itself to
// form a 16-byte 2-key 3DES key before encryption — this rule applies
// only to KCV computation, never to actual encryption operations
// (spec.md §4.2).
func Compute(
	provider blockcipher.Provider,
	keyHex string,
	family blockcipher.Family,
	obs *observability.Observer,
) (string, error) {
	obs.Enter(op+".Compute", map[string]any{"family": family, "key_hex_len": len(keyHex)})

	key, err := hexutil.Decode(keyHex)
	if err != nil {
		obs.Exit(op+".Compute", err, nil)

		return "", err
	}

	if err := validateKeyLength(family, len(key)); err != nil {
		obs.Exit(op+".Compute", err, nil)

		return "", err
	}

	// The 3DES 8-byte-component rule: double the component to form a
	// 16-byte key, used only here.
	if family == blockcipher.TripleDES && len(key) == 8 {
		key = append(append([]byte{}, key...), key...)
	}

	zero := make([]byte, family.BlockSize())
	ct, err := provider.EncryptECB(family, key, zero)
	if err != nil {
		wrapped := errs.Wrap(errs.CryptoFailure, op+".Compute", err)
		obs.Exit(op+".Compute", wrapped, nil)

		return "", wrapped
	}

	result := hexutil.Encode(ct[:kcvLength])
	obs.Exit(op+".Compute", nil, map[string]any{"kcv": result})

	return result, nil
}

func validateKeyLength(family blockcipher.Family, n int) error {
	switch family {
	case blockcipher.AES:
		if n == 16 || n == 24 || n == 32 {
			return nil
		}
	case blockcipher.TripleDES:
		if n == 8 || n == 16 || n == 24 {
			return nil
		}
	}

	return errs.New(
		errs.InvalidLength,
		op+".validateKeyLength",
		fmt.Sprintf("key length %d bytes is invalid for family %v", n, family),
	)
}
