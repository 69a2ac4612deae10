package pinblock_test

import (
	"testing"

	"github.com/paycrypto/hsmcore/pkg/blockcipher"
	"github.com/paycrypto/hsmcore/pkg/hexutil"
	"github.com/paycrypto/hsmcore/pkg/pinblock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeISO0SeedVector(t *testing.T) {
	t.Parallel()

	const pin = "1234"
	const pan = "43219876543210987"

	block, err := pinblock.EncodeISO0(pin, pan, nil)
	require.NoError(t, err)

	want, err := hexutil.XOR("041234FFFFFFFFFF", "0000987654321098")
	require.NoError(t, err)
	assert.Equal(t, want, block)
}

func TestISO0RoundTrip(t *testing.T) {
	t.Parallel()

	const pin = "1234"
	const pan = "43219876543210987"

	block, err := pinblock.EncodeISO0(pin, pan, nil)
	require.NoError(t, err)

	got, err := pinblock.DecodeISO0(block, pan, nil)
	require.NoError(t, err)
	assert.Equal(t, pin, got)
}

func TestISO3RoundTrip(t *testing.T) {
	t.Parallel()

	const pin = "98765"
	const pan = "43219876543210987"

	block, err := pinblock.EncodeISO3(pin, pan, nil)
	require.NoError(t, err)

	got, err := pinblock.DecodeISO3(block, pan, nil)
	require.NoError(t, err)
	assert.Equal(t, pin, got)
}

func TestISO3UsesRandomFillerNotF(t *testing.T) {
	t.Parallel()

	block, err := pinblock.EncodeISO3("1234", "43219876543210987", nil)
	require.NoError(t, err)
	assert.Equal(t, byte('3'), block[0])

	pinField, err := hexutil.XOR(block, "0000987654321098")
	require.NoError(t, err)
	assert.NotEqual(t, "FFFFFFFFFF", pinField[6:])
}

func TestEncodeISO4SeedVector(t *testing.T) {
	t.Parallel()

	provider := blockcipher.New()
	const pin = "1234"
	const pan = "43219876543210987"
	const pek = "00112233445566778899AABBCCDDEEFF"

	result, err := pinblock.EncodeISO4(provider, pin, pan, pek, nil)
	require.NoError(t, err)
	assert.Equal(t, "441234AAAAAAAAAA", result.ClearPinField[:16])
	assert.Len(t, result.EncryptedHex, 32)
}

func TestISO4RoundTrip(t *testing.T) {
	t.Parallel()

	provider := blockcipher.New()
	const pin = "1234"
	const pan = "43219876543210987"
	const pek = "00112233445566778899AABBCCDDEEFF"

	result, err := pinblock.EncodeISO4(provider, pin, pan, pek, nil)
	require.NoError(t, err)

	got, err := pinblock.DecodeISO4(provider, result.EncryptedHex, pan, pek, nil)
	require.NoError(t, err)
	assert.Equal(t, pin, got)
}

func TestEncodeISO4RequiresPek(t *testing.T) {
	t.Parallel()

	provider := blockcipher.New()
	_, err := pinblock.EncodeISO4(provider, "1234", "43219876543210987", "", nil)
	require.Error(t, err)
}

func TestEncodeDispatcher(t *testing.T) {
	t.Parallel()

	provider := blockcipher.New()
	resp, err := pinblock.Encode(provider, pinblock.EncodeRequest{
		Format: pinblock.ISO0,
		Pin:    "1234",
		Pan:    "43219876543210987",
	}, nil)
	require.NoError(t, err)

	pin, err := pinblock.Decode(provider, pinblock.DecodeRequest{
		Format:      pinblock.ISO0,
		PinBlockHex: resp.PinBlockHex,
		Pan:         "43219876543210987",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "1234", pin)
}

func TestPanShorterThan13DigitsRejected(t *testing.T) {
	t.Parallel()

	_, err := pinblock.EncodeISO0("1234", "123456789012", nil)
	require.Error(t, err)
}
