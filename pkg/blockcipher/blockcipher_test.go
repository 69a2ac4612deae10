package blockcipher_test

import (
	"encoding/hex"
	"testing"

	"github.com/paycrypto/hsmcore/pkg/blockcipher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECBRoundtripAES(t *testing.T) {
	t.Parallel()

	p := blockcipher.New()
	k, err := hex.DecodeString("00112233445566778899AABBCCDDEEFF")
	require.NoError(t, err)

	plain := make([]byte, 32)
	ct, err := p.EncryptECB(blockcipher.AES, k, plain)
	require.NoError(t, err)
	pt, err := p.DecryptECB(blockcipher.AES, k, ct)
	require.NoError(t, err)
	assert.Equal(t, plain, pt)
}

func TestECBRoundtripTripleDES(t *testing.T) {
	t.Parallel()

	p := blockcipher.New()
	k, err := hex.DecodeString("0123456789ABCDEFFEDCBA9876543210")
	require.NoError(t, err)

	plain := make([]byte, 16)
	ct, err := p.EncryptECB(blockcipher.TripleDES, k, plain)
	require.NoError(t, err)
	pt, err := p.DecryptECB(blockcipher.TripleDES, k, ct)
	require.NoError(t, err)
	assert.Equal(t, plain, pt)
}

func TestEncryptECBRejectsUnalignedData(t *testing.T) {
	t.Parallel()

	p := blockcipher.New()
	k, _ := hex.DecodeString("00112233445566778899AABBCCDDEEFF")
	_, err := p.EncryptECB(blockcipher.AES, k, make([]byte, 15))
	require.Error(t, err)
}

func TestExpandToTripleDES(t *testing.T) {
	t.Parallel()

	single, err := hex.DecodeString("0123456789ABCDEF")
	require.NoError(t, err)
	triple, err := blockcipher.ExpandToTripleDES(single)
	require.NoError(t, err)
	assert.Len(t, triple, 24)
	assert.Equal(t, single, triple[:8])
	assert.Equal(t, single, triple[8:16])
	assert.Equal(t, single, triple[16:])
}

func TestPadUnpadPkcs7(t *testing.T) {
	t.Parallel()

	data := []byte("hello")
	padded, err := blockcipher.Pad(blockcipher.Pkcs7, data, 8)
	require.NoError(t, err)
	assert.Len(t, padded, 8)

	unpadded, err := blockcipher.Unpad(blockcipher.Pkcs7, padded, 8)
	require.NoError(t, err)
	assert.Equal(t, data, unpadded)
}

func TestPadNoPaddingRejectsUnaligned(t *testing.T) {
	t.Parallel()

	_, err := blockcipher.Pad(blockcipher.NoPadding, []byte("odd"), 8)
	require.Error(t, err)
}
