package keyassembly_test

import (
	"testing"

	"github.com/paycrypto/hsmcore/pkg/blockcipher"
	"github.com/paycrypto/hsmcore/pkg/keyassembly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aes128Profile() keyassembly.Profile {
	return keyassembly.Profile{
		Family:         blockcipher.AES,
		KeyLengthBytes: 16,
		ComponentCount: 2,
		KCVFamily:      blockcipher.AES,
	}
}

func TestAssembleTwoComponents(t *testing.T) {
	t.Parallel()

	provider := blockcipher.New()
	result, err := keyassembly.Assemble(
		provider,
		aes128Profile(),
		[]string{
			"11111111111111111111111111111111",
			"22222222222222222222222222222222",
		},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, "33333333333333333333333333333333", result.FinalKeyHex)
	assert.Len(t, result.KCVHex, 6)
}

func TestAssembleSingleComponent(t *testing.T) {
	t.Parallel()

	profile := aes128Profile()
	profile.ComponentCount = 1
	provider := blockcipher.New()
	key := "00112233445566778899AABBCCDDEEFF"

	result, err := keyassembly.Assemble(provider, profile, []string{key}, nil)
	require.NoError(t, err)
	assert.Equal(t, key, result.FinalKeyHex)
}

func TestAssembleRejectsWrongComponentCount(t *testing.T) {
	t.Parallel()

	provider := blockcipher.New()
	_, err := keyassembly.Assemble(provider, aes128Profile(), []string{"AABB"}, nil)
	require.Error(t, err)
}

func TestAssembleRejectsWrongComponentLength(t *testing.T) {
	t.Parallel()

	provider := blockcipher.New()
	_, err := keyassembly.Assemble(
		provider,
		aes128Profile(),
		[]string{"AABB", "CCDD"},
		nil,
	)
	require.Error(t, err)
}

func TestRandomComponentLength(t *testing.T) {
	t.Parallel()

	c, err := keyassembly.RandomComponent(aes128Profile())
	require.NoError(t, err)
	assert.Len(t, c, 32)
}
