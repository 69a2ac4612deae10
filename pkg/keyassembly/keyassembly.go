// Package keyassembly validates component count/length against an
// AlgorithmProfile and XORs components into a final key plus its KCV
// (spec.md §4.3).
package keyassembly

import (
	"crypto/rand"
	"fmt"

	"github.com/paycrypto/hsmcore/internal/errs"
	"github.com/paycrypto/hsmcore/internal/observability"
	"github.com/paycrypto/hsmcore/pkg/blockcipher"
	"github.com/paycrypto/hsmcore/pkg/hexutil"
	"github.com/paycrypto/hsmcore/pkg/kcv"
)

const op = "keyassembly"

// Profile describes an algorithm's key-component shape: family,
// overall key length, how many components make it up, and which KCV
// family to report against the assembled key.
type Profile struct {
	Family         blockcipher.Family
	KeyLengthBytes int
	ComponentCount int // 1, 2, or 3
	KCVFamily      blockcipher.Family
}

// ComponentLengthBytes is always equal to KeyLengthBytes per the data
// model's AlgorithmProfile invariant (spec.md §3).
func (p Profile) ComponentLengthBytes() int { return p.KeyLengthBytes }

// Result is the outcome of a successful Assemble call.
type Result struct {
	FinalKeyHex string
	KCVHex      string
}

// Assemble validates componentsHex against profile (count and
// per-component length) and XORs them into the final key, then
// computes its KCV. A single component is returned unchanged (after
// validation) per spec.md §4.3 step 2.
func Assemble(
	provider blockcipher.Provider,
	profile Profile,
	componentsHex []string,
	obs *observability.Observer,
) (Result, error) {
	obs.Enter(op+".Assemble", map[string]any{"component_count": len(componentsHex)})

	if len(componentsHex) != profile.ComponentCount {
		err := errs.New(
			errs.InvalidLength,
			op+".Assemble",
			fmt.Sprintf(
				"expected %d components, got %d",
				profile.ComponentCount,
				len(componentsHex),
			),
		)
		obs.Exit(op+".Assemble", err, nil)

		return Result{}, err
	}

	wantHexLen := profile.ComponentLengthBytes() * 2
	for i, c := range componentsHex {
		if len(c) != wantHexLen {
			err := errs.New(
				errs.InvalidLength,
				op+".Assemble",
				fmt.Sprintf(
					"component %d has length %d hex chars, want %d",
					i,
					len(c),
					wantHexLen,
				),
			)
			obs.Exit(op+".Assemble", err, nil)

			return Result{}, err
		}
	}

	finalKey, err := hexutil.XOR(componentsHex...)
	if err != nil {
		obs.Exit(op+".Assemble", err, nil)

		return Result{}, err
	}

	check, err := kcv.Compute(provider, finalKey, profile.KCVFamily, obs)
	if err != nil {
		obs.Exit(op+".Assemble", err, nil)

		return Result{}, err
	}

	result := Result{FinalKeyHex: finalKey, KCVHex: check}
	obs.Exit(op+".Assemble", nil, map[string]any{"kcv": check})

	return result, nil
}

// RandomComponent generates one CSPRNG key component of profile's
// length, for callers assembling a key from freshly generated parts
// rather than previously-issued component values.
func RandomComponent(profile Profile) (string, error) {
	buf := make([]byte, profile.ComponentLengthBytes())
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Wrap(errs.Internal, op+".RandomComponent", err)
	}

	return hexutil.Encode(buf), nil
}
