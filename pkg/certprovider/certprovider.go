// Package certprovider declares the X.509/PKCS#10 external
// collaborator interface the core consumes to decode certificates and
// certificate signing requests. Parsing X.509/CSR structures is
// explicitly out of scope for the core itself (spec.md §1) — this
// package has no concrete implementation, only the interface contract
// a caller must satisfy.
package certprovider

// Kind discriminates what ParseResult.Kind holds.
type Kind int

const (
	Unknown Kind = iota
	Certificate
	CSR
)

// ParseResult is a tagged union over the two structures this provider
// can decode, matching spec.md §9's discriminated-union guidance.
type ParseResult struct {
	Kind Kind
	// Subject, Issuer, and SerialNumber are populated when Kind ==
	// Certificate; Subject and PublicKeyDER are populated when Kind ==
	// CSR.
	Subject      string
	Issuer       string
	SerialNumber string
	PublicKeyDER []byte
	NotBefore    string
	NotAfter     string
}

// Provider is the X.509/CSR interface the core consumes.
type Provider interface {
	// Parse decodes a PEM or DER-encoded certificate or CSR.
	Parse(data []byte) (ParseResult, error)
}
