package kcv_test

import (
	"testing"

	"github.com/paycrypto/hsmcore/pkg/blockcipher"
	"github.com/paycrypto/hsmcore/pkg/kcv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute3DES(t *testing.T) {
	t.Parallel()

	provider := blockcipher.New()
	got, err := kcv.Compute(provider, "0123456789ABCDEFFEDCBA9876543210", blockcipher.TripleDES, nil)
	require.NoError(t, err)
	assert.Equal(t, "08D7B4", got)
}

func TestComputeAES128(t *testing.T) {
	t.Parallel()

	provider := blockcipher.New()
	got, err := kcv.Compute(provider, "00112233445566778899AABBCCDDEEFF", blockcipher.AES, nil)
	require.NoError(t, err)
	assert.Len(t, got, 6)
}

func TestCompute3DESSingleComponentRule(t *testing.T) {
	t.Parallel()

	provider := blockcipher.New()
	// An 8-byte (16 hex char) 3DES component is doubled into a 16-byte
	// 2-key 3DES key for KCV purposes only.
	got, err := kcv.Compute(provider, "0123456789ABCDEF", blockcipher.TripleDES, nil)
	require.NoError(t, err)
	assert.Len(t, got, 6)

	doubled, err := kcv.Compute(provider, "0123456789ABCDEF0123456789ABCDEF", blockcipher.TripleDES, nil)
	require.NoError(t, err)
	assert.Equal(t, got, doubled)
}

func TestComputeRejectsInvalidKeyLength(t *testing.T) {
	t.Parallel()

	provider := blockcipher.New()
	_, err := kcv.Compute(provider, "AABB", blockcipher.AES, nil)
	require.Error(t, err)
}

func TestComputeNilObserverIsSafe(t *testing.T) {
	t.Parallel()

	provider := blockcipher.New()
	_, err := kcv.Compute(provider, "00112233445566778899AABBCCDDEEFF", blockcipher.AES, nil)
	require.NoError(t, err)
}
