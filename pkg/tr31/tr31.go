// Package tr31 parses the ANSI X9 TR-31 key-block wire format: a fixed
// 16-character header, a run of variable-length optional blocks, an
// encrypted key, and a version-dependent authenticator. Only
// structural parsing is in scope — MAC computation and verification
// are not (spec.md §1 Non-goals). Grounded on the teacher's
// pkg/keyblocklmk/header.go and optionalblock.go field layout, cross
// checked against the moov-io/tr31 reference file under
// other_examples/, generalized from the teacher's single Thales 'S'
// layout to the full TR-31 header this system targets.
package tr31

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paycrypto/hsmcore/internal/errs"
	"github.com/paycrypto/hsmcore/internal/observability"
)

const op = "tr31"

const headerLength = 16

// Header is the fixed 16-ASCII-character TR-31 key-block header.
type Header struct {
	VersionID      byte
	Length         int
	KeyUsage       string
	Algorithm      byte
	ModeOfUse      byte
	KeyVersion     string
	Exportability  byte
	OptionalBlocks int
}

// OptionalBlock is one variable-length optional header block: a 2-char
// ID, a 2-digit decimal byte length, and that many bytes of hex
// payload (consuming length*2 ASCII characters).
type OptionalBlock struct {
	ID    string
	Value string
}

// ParsedBlock is the full structural decomposition of a TR-31 key
// block, per spec.md §3's Tr31ParsedBlock entity.
type ParsedBlock struct {
	Header         Header
	OptionalBlocks []OptionalBlock
	EncryptedKey   string
	Authenticator  string
}

// Parse decomposes a TR-31 ASCII key block into its header, optional
// blocks, encrypted key, and authenticator (spec.md §4.6). A leading
// 'R'/'r' transport marker is stripped first. When strict is true, a
// malformed optional-block header is a hard parse error instead of the
// §4.6 robustness rule's "stop parsing, treat remainder as key data".
func Parse(input string, strict bool, obs *observability.Observer) (ParsedBlock, error) {
	obs.Enter(op+".Parse", map[string]any{"input_len": len(input), "strict": strict})

	result, err := parse(input, strict)
	obs.Exit(op+".Parse", err, nil)

	return result, err
}

func parse(input string, strict bool) (ParsedBlock, error) {
	ascii := input
	if strings.HasPrefix(ascii, "R") || strings.HasPrefix(ascii, "r") {
		ascii = ascii[1:]
	}

	if len(ascii) < headerLength {
		return ParsedBlock{}, errs.New(errs.StructuralMismatch, op, "input shorter than a tr-31 header")
	}

	header, err := parseHeader(ascii[:headerLength])
	if err != nil {
		return ParsedBlock{}, err
	}
	if header.Length != len(ascii) {
		return ParsedBlock{}, errs.New(
			errs.StructuralMismatch,
			op,
			fmt.Sprintf("declared length %d does not match actual length %d", header.Length, len(ascii)),
		)
	}

	remainder := ascii[headerLength:]
	blocks, consumed, err := parseOptionalBlocks(remainder, header.OptionalBlocks, strict)
	if err != nil {
		return ParsedBlock{}, err
	}
	remainder = remainder[consumed:]

	authLen := authenticatorLength(header.VersionID, header.Algorithm)
	if len(remainder) < authLen {
		return ParsedBlock{}, errs.New(errs.StructuralMismatch, op, "remainder shorter than authenticator")
	}

	encryptedKey := remainder[:len(remainder)-authLen]
	authenticator := remainder[len(remainder)-authLen:]
	if len(encryptedKey)%2 != 0 {
		return ParsedBlock{}, errs.New(errs.StructuralMismatch, op, "encrypted key length must be even")
	}

	return ParsedBlock{
		Header:         header,
		OptionalBlocks: blocks,
		EncryptedKey:   encryptedKey,
		Authenticator:  authenticator,
	}, nil
}

func parseHeader(h string) (Header, error) {
	if len(h) != headerLength {
		return Header{}, errs.New(errs.StructuralMismatch, op+".parseHeader", "header must be 16 characters")
	}

	length, err := strconv.Atoi(h[1:5])
	if err != nil {
		return Header{}, errs.New(errs.InvalidLength, op+".parseHeader", "declared length is not 4 decimal digits")
	}
	optionalBlocks, err := strconv.Atoi(h[12:14])
	if err != nil {
		return Header{}, errs.New(errs.InvalidLength, op+".parseHeader", "optional block count is not 2 decimal digits")
	}

	return Header{
		VersionID:      h[0],
		Length:         length,
		KeyUsage:       h[5:7],
		Algorithm:      h[7],
		ModeOfUse:      h[8],
		KeyVersion:     h[9:11],
		Exportability:  h[11],
		OptionalBlocks: optionalBlocks,
	}, nil
}

func isUpperAlnum2(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}

	return true
}

func isDecimal2(s string) bool {
	if len(s) != 2 {
		return false
	}

	return s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}

// parseOptionalBlocks walks up to n optional blocks out of remainder.
// In tolerant mode (strict=false, the default) it stops early — the
// "robustness rule", spec.md §4.6 — the moment a block-ID or length
// field doesn't match its expected shape, tolerating a header whose
// declared count exceeds what's actually present. In strict mode a
// malformed block is a hard error. Returns the parsed blocks and the
// number of ASCII characters consumed.
func parseOptionalBlocks(remainder string, n int, strict bool) ([]OptionalBlock, int, error) {
	var blocks []OptionalBlock
	consumed := 0

	for i := 0; i < n; i++ {
		rest := remainder[consumed:]
		if len(rest) < 4 {
			if strict {
				return nil, 0, errs.New(errs.StructuralMismatch, op+".parseOptionalBlocks", "truncated optional block header")
			}
			break
		}
		id := rest[:2]
		lengthField := rest[2:4]
		if !isUpperAlnum2(id) || !isDecimal2(lengthField) {
			if strict {
				return nil, 0, errs.New(errs.StructuralMismatch, op+".parseOptionalBlocks", "malformed optional block id or length")
			}
			break
		}
		lengthBytes, err := strconv.Atoi(lengthField)
		if err != nil {
			if strict {
				return nil, 0, errs.New(errs.StructuralMismatch, op+".parseOptionalBlocks", "optional block length is not decimal")
			}
			break
		}
		valueLen := lengthBytes * 2
		if len(rest) < 4+valueLen {
			if strict {
				return nil, 0, errs.New(errs.StructuralMismatch, op+".parseOptionalBlocks", "optional block value truncated")
			}
			break
		}
		blocks = append(blocks, OptionalBlock{ID: id, Value: rest[4 : 4+valueLen]})
		consumed += 4 + valueLen
	}

	return blocks, consumed, nil
}

// authenticatorLength returns the version-dependent authenticator
// length in hex characters (spec.md §4.6 step 3).
func authenticatorLength(version, algorithm byte) int {
	switch version {
	case 'D':
		return 64
	case 'C':
		if algorithm == 'A' {
			return 32
		}

		return 16
	default:
		return 16
	}
}
