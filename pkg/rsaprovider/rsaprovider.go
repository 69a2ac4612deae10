// Package rsaprovider declares the RSA-OAEP/SHA-256 external
// collaborator interface the core consumes for key-pair generation,
// PKCS#8/SPKI export, and encrypt/decrypt. Asymmetric-key generation
// algorithms are explicitly delegated (spec.md §1 Non-goals) — this
// package has no concrete implementation, only the interface contract
// a caller must satisfy.
package rsaprovider

// KeySize enumerates the supported RSA modulus sizes.
type KeySize int

const (
	Size1024 KeySize = 1024
	Size2048 KeySize = 2048
	Size3072 KeySize = 3072
	Size4096 KeySize = 4096
)

// KeyPair holds a generated RSA key pair exported as PKCS#8 (private)
// and SPKI (public) DER.
type KeyPair struct {
	PrivateKeyDER []byte
	PublicKeyDER  []byte
}

// Provider is the RSA-OAEP/SHA-256 interface the core consumes; it
// never implements key generation itself (spec.md §6).
type Provider interface {
	// GenerateKeyPair creates a new RSA key pair of the requested size.
	GenerateKeyPair(size KeySize) (KeyPair, error)
	// Encrypt performs RSA-OAEP/SHA-256 encryption under the SPKI public
	// key in publicKeyDER.
	Encrypt(publicKeyDER, plaintext []byte) ([]byte, error)
	// Decrypt performs RSA-OAEP/SHA-256 decryption under the PKCS#8
	// private key in privateKeyDER.
	Decrypt(privateKeyDER, ciphertext []byte) ([]byte, error)
	// ImportPEM parses a PEM block (PUBLIC KEY or PRIVATE KEY) into its
	// DER payload.
	ImportPEM(pem []byte) (der []byte, isPrivate bool, err error)
}
