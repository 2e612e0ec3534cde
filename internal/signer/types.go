package signer

import "context"

// Type identifies the signature scheme of a Signer.
type Type int

const (
	// TypeRSA is the Arweave hash-based scheme: RSA-PSS over a prefixed
	// message digest, with the public modulus embedded in the signature.
	TypeRSA Type = iota + 1
	// TypeECDSA is the Ethereum scheme: secp256k1 personal-message
	// signatures.
	TypeECDSA
)

func (t Type) String() string {
	switch t {
	case TypeRSA:
		return "rsa"
	case TypeECDSA:
		return "ecdsa"
	default:
		return "unknown"
	}
}

// Signer signs settlement messages and reports a stable wallet identity.
// Implementations never expose their key material; the transaction builder
// borrows a Signer without owning it.
type Signer interface {
	// Sign signs an arbitrary message and returns the signature in the
	// settlement network's string encoding for the scheme.
	Sign(ctx context.Context, msg []byte) (string, error)

	// Owner returns the scheme-specific public identity (the base64url
	// RSA modulus; empty for ECDSA signers).
	Owner() (string, error)

	// WalletAddress returns the settlement account address.
	WalletAddress() (string, error)

	// Type reports the signature scheme.
	Type() Type
}

// PersonalSigner is the capability an externally negotiated wallet session
// (e.g. wallet-connect) must provide. Session establishment and QR display
// are the caller's concern.
type PersonalSigner interface {
	// PersonalSign signs msg for the given account using the Ethereum
	// personal-message convention and returns the 0x-prefixed signature.
	// May block on user interaction in an external process.
	PersonalSign(ctx context.Context, msg []byte, account string) (string, error)
}
