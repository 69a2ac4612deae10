package pinblock

import (
	"github.com/paycrypto/hsmcore/internal/errs"
	"github.com/paycrypto/hsmcore/internal/observability"
	"github.com/paycrypto/hsmcore/pkg/blockcipher"
)

// EncodeRequest carries every input an Encode call might need; not every
// field applies to every Format (pek is ISO-4 only).
type EncodeRequest struct {
	Format Format
	Pin    string
	Pan    string
	PekHex string
}

// EncodeResponse carries every output an Encode call might produce.
// ClearPinField is only populated for ISO-4.
type EncodeResponse struct {
	PinBlockHex   string
	ClearPinField string
}

// Encode dispatches to the requested format's construction.
func Encode(
	provider blockcipher.Provider,
	req EncodeRequest,
	obs *observability.Observer,
) (EncodeResponse, error) {
	switch req.Format {
	case ISO0:
		block, err := EncodeISO0(req.Pin, req.Pan, obs)
		return EncodeResponse{PinBlockHex: block}, err
	case ISO3:
		block, err := EncodeISO3(req.Pin, req.Pan, obs)
		return EncodeResponse{PinBlockHex: block}, err
	case ISO4:
		result, err := EncodeISO4(provider, req.Pin, req.Pan, req.PekHex, obs)
		return EncodeResponse{PinBlockHex: result.EncryptedHex, ClearPinField: result.ClearPinField}, err
	default:
		return EncodeResponse{}, errs.New(errs.MalformedInput, op, "unknown pin block format")
	}
}

// DecodeRequest carries every input a Decode call might need.
type DecodeRequest struct {
	Format      Format
	PinBlockHex string
	Pan         string
	PekHex      string
}

// Decode dispatches to the requested format's recovery.
func Decode(
	provider blockcipher.Provider,
	req DecodeRequest,
	obs *observability.Observer,
) (string, error) {
	switch req.Format {
	case ISO0:
		return DecodeISO0(req.PinBlockHex, req.Pan, obs)
	case ISO3:
		return DecodeISO3(req.PinBlockHex, req.Pan, obs)
	case ISO4:
		return DecodeISO4(provider, req.PinBlockHex, req.Pan, req.PekHex, obs)
	default:
		return "", errs.New(errs.MalformedInput, op, "unknown pin block format")
	}
}
