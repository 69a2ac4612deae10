package miscutil_test

import (
	"testing"

	"github.com/paycrypto/hsmcore/pkg/miscutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuhnCheckDigit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base string
		want int
	}{
		{name: "visa test pan", base: "411111111111111", want: 1},
		{name: "amex sample", base: "7992739871", want: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := miscutil.LuhnCheckDigit(tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLuhnValidate(t *testing.T) {
	t.Parallel()

	ok, err := miscutil.LuhnValidate("4111111111111111")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = miscutil.LuhnValidate("4111111111111112")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLuhnRoundtripProperty(t *testing.T) {
	t.Parallel()

	bases := []string{"0", "123", "411111111111111", "000000000000"}
	for _, base := range bases {
		check, err := miscutil.LuhnCheckDigit(base)
		require.NoError(t, err)
		ok, err := miscutil.LuhnValidate(base + string(rune('0'+check)))
		require.NoError(t, err)
		assert.True(t, ok, "base=%s check=%d", base, check)
	}
}

func TestLuhnRejectsNonDigit(t *testing.T) {
	t.Parallel()

	_, err := miscutil.LuhnCheckDigit("12a4")
	require.Error(t, err)

	_, err = miscutil.LuhnValidate("12a4")
	require.Error(t, err)
}

func TestCheckAndFixKeyParity(t *testing.T) {
	t.Parallel()

	key := make([]byte, 16) // all zero bytes: even parity.
	assert.False(t, miscutil.CheckKeyParity(key))

	fixed := miscutil.FixKeyParity(key)
	assert.True(t, miscutil.CheckKeyParity(fixed))
}

func TestFixKeyParityIgnoresOtherLengths(t *testing.T) {
	t.Parallel()

	key := []byte{0x00, 0x00, 0x00}
	fixed := miscutil.FixKeyParity(key)
	assert.Equal(t, key, fixed)
}

func TestRandomHexLength(t *testing.T) {
	t.Parallel()

	h, err := miscutil.RandomHex(8)
	require.NoError(t, err)
	assert.Len(t, h, 16)
}

func TestRandomHexNibblesAlphabet(t *testing.T) {
	t.Parallel()

	h, err := miscutil.RandomHexNibbles(32)
	require.NoError(t, err)
	assert.Len(t, h, 32)
	for _, r := range h {
		assert.Contains(t, "0123456789ABCDEF", string(r))
	}
}
