// Package dukpt implements ANSI X9.24-1 DUKPT key derivation: IPEK
// derivation from a Base Derivation Key and Key Serial Number, the
// 21-bit counter shift-register transaction-key walk, and the five
// session-key variants. The AES-based "BDK 2009" variant is out of
// scope (spec.md §1 Non-goals); this package is 3DES-only (spec.md
// §4.5). No implementation of this exists anywhere in the teacher
// repo's corpus; it is built directly against the standard, in the
// teacher's fixed-size-byte-array idiom rather than a big-integer one
// (spec.md §9 design note).
package dukpt

import (
	"github.com/paycrypto/hsmcore/internal/errs"
	"github.com/paycrypto/hsmcore/internal/observability"
	"github.com/paycrypto/hsmcore/pkg/blockcipher"
	"github.com/paycrypto/hsmcore/pkg/hexutil"
)

const op = "dukpt"

const (
	ksnLength   = 10
	counterBits = 21
)

// Set is the full complement of keys and metadata derived from a
// single (BDK, KSN) pair.
type Set struct {
	KSN                string
	Counter            uint32
	IPEKHex            string
	TransactionKeyHex  string
	PinKeyHex          string
	MacRequestKeyHex   string
	MacResponseKeyHex  string
	DataRequestKeyHex  string
	DataResponseKeyHex string
}

var sessionVariants = []struct {
	name    string
	variant [16]byte
}{
	{"pin", [16]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xF0}},
	{"mac_request", [16]byte{0, 0, 0, 0, 0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0}},
	{"mac_response", [16]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF}},
	{"data_request", [16]byte{0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0, 0, 0, 0, 0}},
	{"data_response", [16]byte{0, 0, 0, 0, 0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
}

// variantMask tiles the 8-byte C0C0C0C000000000 pattern to n bytes; the
// DUKPT non-reversible key-generation constant for BDKs/keys longer
// than 8 bytes is this pattern repeated (spec.md §4.5).
func variantMask(n int) []byte {
	pattern := [8]byte{0xC0, 0xC0, 0xC0, 0xC0, 0x00, 0x00, 0x00, 0x00}
	out := make([]byte, n)
	for i := range out {
		out[i] = pattern[i%8]
	}

	return out
}

func counterOf(ksn [ksnLength]byte) uint32 {
	return uint32(ksn[7]&0x1F)<<16 | uint32(ksn[8])<<8 | uint32(ksn[9])
}

func clearCounter(ksn [ksnLength]byte) [ksnLength]byte {
	out := ksn
	out[7] &^= 0x1F
	out[8] = 0
	out[9] = 0

	return out
}

func setBit(ksn *[ksnLength]byte, i int) {
	byteIdx := 9 - i/8
	bitIdx := uint(i % 8)
	ksn[byteIdx] |= 1 << bitIdx
}

func bitSet(counter uint32, i int) bool {
	return counter&(1<<uint(i)) != 0
}

func xor(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}

	return out
}

// deriveIPEK computes the IPEK per spec.md §4.5 step 2.
func deriveIPEK(provider blockcipher.Provider, bdk []byte, ksnCleared [ksnLength]byte) ([]byte, error) {
	ksn8 := ksnCleared[:8]

	ipekLeft, err := provider.EncryptECB(blockcipher.TripleDES, bdk, ksn8)
	if err != nil {
		return nil, errs.Wrap(errs.CryptoFailure, op+".deriveIPEK", err)
	}

	bdkMod := xor(bdk, variantMask(len(bdk)))
	ipekRight, err := provider.EncryptECB(blockcipher.TripleDES, bdkMod, ksn8)
	if err != nil {
		return nil, errs.Wrap(errs.CryptoFailure, op+".deriveIPEK", err)
	}

	return append(ipekLeft, ipekRight...), nil
}

// nonReversibleStep computes one non-reversible key-generation step
// (spec.md §4.5 step 3) producing the next 16-byte currentKey.
func nonReversibleStep(provider blockcipher.Provider, currentKey, ksnPortion []byte) ([]byte, error) {
	left := currentKey[:8]
	right := currentKey[8:]

	m := xor(ksnPortion, right)
	leftKey, err := blockcipher.ExpandToTripleDES(left)
	if err != nil {
		return nil, err
	}
	encLeft, err := provider.EncryptECB(blockcipher.TripleDES, leftKey, m)
	if err != nil {
		return nil, errs.Wrap(errs.CryptoFailure, op+".nonReversibleStep", err)
	}
	newLeft := xor(encLeft, right)

	currentKeyMod := xor(currentKey, variantMask(len(currentKey)))
	lPrime := currentKeyMod[:8]
	rPrime := currentKeyMod[8:]
	m2 := xor(ksnPortion, rPrime)
	rPrimeKey, err := blockcipher.ExpandToTripleDES(lPrime)
	if err != nil {
		return nil, err
	}
	encRight, err := provider.EncryptECB(blockcipher.TripleDES, rPrimeKey, m2)
	if err != nil {
		return nil, errs.Wrap(errs.CryptoFailure, op+".nonReversibleStep", err)
	}
	newRight := xor(encRight, rPrime)

	return append(newLeft, newRight...), nil
}

// Derive computes the full DUKPT Set for the given BDK and KSN, both
// hex-encoded. bdkHex must decode to 16 or 24 bytes; ksnHex must decode
// to exactly 10 bytes.
func Derive(
	provider blockcipher.Provider,
	bdkHex, ksnHex string,
	obs *observability.Observer,
) (Set, error) {
	obs.Enter(op+".Derive", map[string]any{"ksn": ksnHex})

	result, err := derive(provider, bdkHex, ksnHex)
	obs.Exit(op+".Derive", err, map[string]any{"counter": result.Counter})

	return result, err
}

func derive(provider blockcipher.Provider, bdkHex, ksnHex string) (Set, error) {
	bdk, err := hexutil.Decode(bdkHex)
	if err != nil {
		return Set{}, err
	}
	if len(bdk) != 16 && len(bdk) != 24 {
		return Set{}, errs.New(errs.InvalidLength, op, "bdk must be 16 or 24 bytes")
	}

	ksnBytes, err := hexutil.Decode(ksnHex)
	if err != nil {
		return Set{}, err
	}
	if len(ksnBytes) != ksnLength {
		return Set{}, errs.New(errs.InvalidLength, op, "ksn must be exactly 10 bytes")
	}
	var ksn [ksnLength]byte
	copy(ksn[:], ksnBytes)

	counter := counterOf(ksn)
	ksnCleared := clearCounter(ksn)

	ipek, err := deriveIPEK(provider, bdk, ksnCleared)
	if err != nil {
		return Set{}, err
	}

	currentKey := ipek
	shiftReg := ksnCleared
	for i := 0; i <= counterBits-1; i++ {
		if !bitSet(counter, i) {
			continue
		}
		setBit(&shiftReg, i)
		ksnPortion := shiftReg[2:]
		currentKey, err = nonReversibleStep(provider, currentKey, ksnPortion)
		if err != nil {
			return Set{}, err
		}
	}

	transactionKey := currentKey

	set := Set{
		KSN:               hexutil.Encode(ksn[:]),
		Counter:           counter,
		IPEKHex:           hexutil.Encode(ipek),
		TransactionKeyHex: hexutil.Encode(transactionKey),
	}

	for _, v := range sessionVariants {
		sessionKey := xor(transactionKey, v.variant[:])
		hex := hexutil.Encode(sessionKey)
		switch v.name {
		case "pin":
			set.PinKeyHex = hex
		case "mac_request":
			set.MacRequestKeyHex = hex
		case "mac_response":
			set.MacResponseKeyHex = hex
		case "data_request":
			set.DataRequestKeyHex = hex
		case "data_response":
			set.DataResponseKeyHex = hex
		}
	}

	return set, nil
}
