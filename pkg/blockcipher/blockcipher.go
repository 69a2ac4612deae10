// Package blockcipher is the one concrete implementation of the
// block-cipher provider spec.md §6 describes as an external
// collaborator: ECB-mode AES/3DES with explicit padding, built
// directly on crypto/aes and crypto/des. Every core package that needs
// to encrypt or decrypt takes a Provider as an explicit parameter —
// never a package-level global (spec.md §9 design note).
package blockcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/rand"
	"fmt"

	"github.com/paycrypto/hsmcore/internal/errs"
)

const op = "blockcipher"

// Family names the cipher family a key belongs to.
type Family int

const (
	// AES128/192/256 keys, 16-byte blocks.
	AES Family = iota
	// TripleDES (2-key or 3-key), 8-byte blocks.
	TripleDES
)

// BlockSize returns the cipher family's block size in bytes.
func (f Family) BlockSize() int {
	if f == AES {
		return aes.BlockSize
	}

	return des.BlockSize
}

// Padding names a byte-padding scheme for data whose length isn't a
// multiple of the block size.
type Padding int

const (
	NoPadding Padding = iota
	Pkcs7
	AnsiX923
	Iso10126
	ZeroPadding
)

// Provider is the block-cipher interface the rest of this module
// consumes. It never sees key material beyond the call it's given;
// nothing is cached or retained between calls.
type Provider interface {
	// EncryptECB encrypts data under key using ECB mode for the given
	// family. data must already be a multiple of the block size (apply
	// Pad first); unaligned data is rejected, no padding is added here.
	EncryptECB(family Family, key, data []byte) ([]byte, error)
	// DecryptECB is the inverse of EncryptECB.
	DecryptECB(family Family, key, data []byte) ([]byte, error)
}

// StdProvider implements Provider using the Go standard library's
// crypto/aes and crypto/des.
type StdProvider struct{}

// New returns the standard-library-backed Provider.
func New() Provider { return StdProvider{} }

func newBlock(family Family, key []byte) (cipher.Block, error) {
	switch family {
	case AES:
		b, err := aes.NewCipher(key)
		if err != nil {
			return nil, errs.Wrap(errs.CryptoFailure, op+".newBlock", err)
		}

		return b, nil
	case TripleDES:
		var k []byte
		switch len(key) {
		case 16: // double-length (K1,K2): expand to triple (K1,K2,K1).
			k = make([]byte, 24)
			copy(k, key)
			copy(k[16:], key[:8])
		case 24: // triple-length (K1,K2,K3), used as-is.
			k = key
		default:
			return nil, errs.New(
				errs.InvalidLength,
				op+".newBlock",
				fmt.Sprintf("3DES key must be 16 or 24 bytes, got %d", len(key)),
			)
		}
		b, err := des.NewTripleDESCipher(k)
		if err != nil {
			return nil, errs.Wrap(errs.CryptoFailure, op+".newBlock", err)
		}

		return b, nil
	default:
		return nil, errs.New(errs.Internal, op+".newBlock", "unknown cipher family")
	}
}

// EncryptECB implements Provider.
func (StdProvider) EncryptECB(family Family, key, data []byte) ([]byte, error) {
	block, err := newBlock(family, key)
	if err != nil {
		return nil, err
	}
	bs := block.BlockSize()
	if len(data)%bs != 0 {
		return nil, errs.New(
			errs.InvalidLength,
			op+".EncryptECB",
			fmt.Sprintf("data length %d is not a multiple of block size %d", len(data), bs),
		)
	}
	out := make([]byte, len(data))
	for off := 0; off < len(data); off += bs {
		block.Encrypt(out[off:off+bs], data[off:off+bs])
	}

	return out, nil
}

// DecryptECB implements Provider.
func (StdProvider) DecryptECB(family Family, key, data []byte) ([]byte, error) {
	block, err := newBlock(family, key)
	if err != nil {
		return nil, err
	}
	bs := block.BlockSize()
	if len(data)%bs != 0 {
		return nil, errs.New(
			errs.InvalidLength,
			op+".DecryptECB",
			fmt.Sprintf("data length %d is not a multiple of block size %d", len(data), bs),
		)
	}
	out := make([]byte, len(data))
	for off := 0; off < len(data); off += bs {
		block.Decrypt(out[off:off+bs], data[off:off+bs])
	}

	return out, nil
}

// ExpandToTripleDES extends an 8-byte (single) or 16-byte (double)
// length key to the 24-byte triple-length form (K1,K2,K1) 3DES
// encryption expects. A 24-byte key is returned unchanged. Grounded in
// the teacher's PrepareTripleDESKey/ExtendDoubleToTripleKey helpers.
func ExpandToTripleDES(key []byte) ([]byte, error) {
	switch len(key) {
	case 8:
		out := make([]byte, 24)
		copy(out, key)
		copy(out[8:], key)
		copy(out[16:], key)

		return out, nil
	case 16:
		out := make([]byte, 24)
		copy(out, key)
		copy(out[16:], key[:8])

		return out, nil
	case 24:
		return key, nil
	default:
		return nil, errs.New(
			errs.InvalidLength,
			op+".ExpandToTripleDES",
			fmt.Sprintf("key must be 8, 16, or 24 bytes, got %d", len(key)),
		)
	}
}

// Pad applies scheme to data so its length becomes a multiple of
// blockSize. NoPadding returns data unchanged and fails if it isn't
// already aligned.
func Pad(scheme Padding, data []byte, blockSize int) ([]byte, error) {
	remainder := len(data) % blockSize
	switch scheme {
	case NoPadding:
		if remainder != 0 {
			return nil, errs.New(errs.InvalidLength, op+".Pad", "data not aligned to block size for NoPadding")
		}

		return data, nil
	case ZeroPadding:
		if remainder == 0 {
			return data, nil
		}
		out := make([]byte, len(data)+blockSize-remainder)
		copy(out, data)

		return out, nil
	case Pkcs7, AnsiX923, Iso10126:
		padLen := blockSize - remainder
		if padLen == 0 {
			padLen = blockSize
		}
		out := make([]byte, len(data)+padLen)
		copy(out, data)
		switch scheme {
		case Pkcs7:
			for i := len(data); i < len(out); i++ {
				out[i] = byte(padLen)
			}
		case AnsiX923:
			out[len(out)-1] = byte(padLen)
		case Iso10126:
			if _, err := rand.Read(out[len(data) : len(out)-1]); err != nil {
				return nil, errs.Wrap(errs.Internal, op+".Pad", err)
			}
			out[len(out)-1] = byte(padLen)
		}

		return out, nil
	default:
		return nil, errs.New(errs.Internal, op+".Pad", "unknown padding scheme")
	}
}

// Unpad reverses Pad for schemes that encode recoverable padding
// length (Pkcs7/AnsiX923/Iso10126 all store the pad length in the
// final byte). NoPadding and ZeroPadding return data unchanged since
// neither encodes a recoverable boundary.
func Unpad(scheme Padding, data []byte, blockSize int) ([]byte, error) {
	switch scheme {
	case NoPadding, ZeroPadding:
		return data, nil
	case Pkcs7, AnsiX923, Iso10126:
		if len(data) == 0 {
			return nil, errs.New(errs.CryptoFailure, op+".Unpad", "empty data")
		}
		padLen := int(data[len(data)-1])
		if padLen <= 0 || padLen > blockSize || padLen > len(data) {
			return nil, errs.New(errs.CryptoFailure, op+".Unpad", "invalid padding length")
		}

		return data[:len(data)-padLen], nil
	default:
		return nil, errs.New(errs.Internal, op+".Unpad", "unknown padding scheme")
	}
}
