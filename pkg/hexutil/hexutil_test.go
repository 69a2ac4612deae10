package hexutil_test

import (
	"testing"

	"github.com/paycrypto/hsmcore/pkg/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundtrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase", in: "01ab0f", want: "01AB0F"},
		{name: "uppercase", in: "01AB0F", want: "01AB0F"},
		{name: "mixed", in: "01Ab0F", want: "01AB0F"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, err := hexutil.Decode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hexutil.Encode(b))
		})
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{name: "odd length", in: "ABC"},
		{name: "non hex char", in: "ZZ"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := hexutil.Decode(tt.in)
			require.Error(t, err)
		})
	}
}

func TestXOR(t *testing.T) {
	t.Parallel()

	t.Run("empty input returns empty", func(t *testing.T) {
		t.Parallel()
		got, err := hexutil.XOR()
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("single operand returned unchanged (uppercased)", func(t *testing.T) {
		t.Parallel()
		got, err := hexutil.XOR("0a0b")
		require.NoError(t, err)
		assert.Equal(t, "0A0B", got)
	})

	t.Run("self xor yields zeros", func(t *testing.T) {
		t.Parallel()
		got, err := hexutil.XOR("AABBCC", "AABBCC")
		require.NoError(t, err)
		assert.Equal(t, "000000", got)
	})

	t.Run("associativity", func(t *testing.T) {
		t.Parallel()
		a, b, c := "11111111", "22222222", "33333333"
		ab, err := hexutil.XOR(a, b)
		require.NoError(t, err)
		left, err := hexutil.XOR(ab, c)
		require.NoError(t, err)
		right, err := hexutil.XOR(a, b, c)
		require.NoError(t, err)
		assert.Equal(t, right, left)
	})

	t.Run("mismatched length rejected", func(t *testing.T) {
		t.Parallel()
		_, err := hexutil.XOR("AABB", "AABBCC")
		require.Error(t, err)
	})

	t.Run("known components assemble to final key", func(t *testing.T) {
		t.Parallel()
		got, err := hexutil.XOR(
			"11111111111111111111111111111111",
			"22222222222222222222222222222222",
		)
		require.NoError(t, err)
		assert.Equal(t, "33333333333333333333333333333333", got)
	})
}
