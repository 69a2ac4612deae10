package tr31_test

import (
	"strings"
	"testing"

	"github.com/paycrypto/hsmcore/pkg/tr31"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeBlockVector() string {
	ks := "KS18" + strings.Repeat("A", 36)
	kc := "KC04" + strings.Repeat("B", 8)
	pb := "PB02" + strings.Repeat("C", 4)
	encKey := "0123456789ABCDEF"
	auth := "FEDCBA9876543210"
	body := ks + kc + pb + encKey + auth
	header := "B" + "0108" + "B1" + "T" + "X" + "00" + "N" + "03" + "00"

	return header + body
}

func TestParseSeedVectorShape(t *testing.T) {
	t.Parallel()

	block, err := tr31.Parse(threeBlockVector(), false, nil)
	require.NoError(t, err)

	assert.Equal(t, byte('B'), block.Header.VersionID)
	assert.Equal(t, 108, block.Header.Length)
	assert.Equal(t, "B1", block.Header.KeyUsage)
	assert.Equal(t, byte('T'), block.Header.Algorithm)
	assert.Equal(t, byte('X'), block.Header.ModeOfUse)
	assert.Equal(t, "00", block.Header.KeyVersion)
	assert.Equal(t, byte('N'), block.Header.Exportability)
	assert.Equal(t, 3, block.Header.OptionalBlocks)

	require.Len(t, block.OptionalBlocks, 3)
	assert.Equal(t, "KS", block.OptionalBlocks[0].ID)
	assert.Len(t, block.OptionalBlocks[0].Value, 36)

	assert.Equal(t, "0123456789ABCDEF", block.EncryptedKey)
	assert.Equal(t, "FEDCBA9876543210", block.Authenticator)
}

func TestParseStripsLeadingTransportMarker(t *testing.T) {
	t.Parallel()

	_, err := tr31.Parse("R"+threeBlockVector(), false, nil)
	require.NoError(t, err)

	_, err = tr31.Parse("r"+threeBlockVector(), false, nil)
	require.NoError(t, err)
}

func TestParseRejectsLengthMismatch(t *testing.T) {
	t.Parallel()

	vector := threeBlockVector() + "EXTRA"
	_, err := tr31.Parse(vector, false, nil)
	require.Error(t, err)
}

func TestParseAuthenticatorLengthByVersion(t *testing.T) {
	t.Parallel()

	encKey := "0123456789ABCDEF"
	auth := strings.Repeat("D", 64)
	body := encKey + auth
	header := "D" + "0096" + "B1" + "T" + "X" + "00" + "N" + "00" + "00"
	vector := header + body

	block, err := tr31.Parse(vector, false, nil)
	require.NoError(t, err)
	assert.Len(t, block.Authenticator, 64)
	assert.Equal(t, encKey, block.EncryptedKey)
}

func TestParseRobustnessRuleStopsOnMalformedBlock(t *testing.T) {
	t.Parallel()

	ks := "KS04" + strings.Repeat("A", 8)
	// Declares 2 optional blocks but the second is malformed (lowercase
	// id); parsing should stop after the first and treat the rest as
	// key+authenticator.
	malformed := "ks99" + "0123456789ABCDEF" + "FEDCBA9876543210"
	body := ks + malformed
	header := "B" + sprintfLen(16+len(body)) + "B1" + "T" + "X" + "00" + "N" + "02" + "00"
	vector := header + body

	block, err := tr31.Parse(vector, false, nil)
	require.NoError(t, err)
	require.Len(t, block.OptionalBlocks, 1)
	assert.Equal(t, "KS", block.OptionalBlocks[0].ID)
}

func TestParseStrictRejectsMalformedBlock(t *testing.T) {
	t.Parallel()

	ks := "KS04" + strings.Repeat("A", 8)
	malformed := "ks99" + "0123456789ABCDEF" + "FEDCBA9876543210"
	body := ks + malformed
	header := "B" + sprintfLen(16+len(body)) + "B1" + "T" + "X" + "00" + "N" + "02" + "00"
	vector := header + body

	_, err := tr31.Parse(vector, true, nil)
	require.Error(t, err)
}

func sprintfLen(n int) string {
	s := "0000" + itoa(n)
	return s[len(s)-4:]
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	return string(digits)
}
