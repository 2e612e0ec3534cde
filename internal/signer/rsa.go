package signer

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/pkg/errors"

	"github.com/permadao/arseed-go/internal/apperrors"
)

// arweaveKeyfile is the JWK layout of an Arweave wallet file. Only the
// private fields needed to reconstruct the RSA key are read.
type arweaveKeyfile struct {
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
	D   string `json:"d"`
	P   string `json:"p"`
	Q   string `json:"q"`
}

// RSASigner signs with an owned Arweave RSA keypair. The raw message is first
// hashed with the Ethereum personal-message transform so ECDSA verifiers in
// the same ecosystem can re-derive the digest, then the digest is signed with
// RSA-PSS.
type RSASigner struct {
	key *rsa.PrivateKey
}

// NewRSA loads an Arweave JWK keyfile from disk.
func NewRSA(keyfilePath string) (*RSASigner, error) {
	raw, err := os.ReadFile(keyfilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read keyfile")
	}

	var jwk arweaveKeyfile
	if err := json.Unmarshal(raw, &jwk); err != nil {
		return nil, errors.Wrap(err, "failed to parse keyfile")
	}
	if jwk.Kty != "RSA" {
		return nil, errors.Errorf("unsupported key type %q, want RSA", jwk.Kty)
	}

	key, err := keyFromJWK(&jwk)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build RSA key from keyfile")
	}

	return NewRSAFromKey(key), nil
}

// NewRSAFromKey wraps an already-loaded RSA private key.
func NewRSAFromKey(key *rsa.PrivateKey) *RSASigner {
	return &RSASigner{key: key}
}

func keyFromJWK(jwk *arweaveKeyfile) (*rsa.PrivateKey, error) {
	n, err := b64Int(jwk.N)
	if err != nil {
		return nil, errors.Wrap(err, "invalid modulus")
	}
	e, err := b64Int(jwk.E)
	if err != nil {
		return nil, errors.Wrap(err, "invalid exponent")
	}
	d, err := b64Int(jwk.D)
	if err != nil {
		return nil, errors.Wrap(err, "invalid private exponent")
	}
	p, err := b64Int(jwk.P)
	if err != nil {
		return nil, errors.Wrap(err, "invalid prime p")
	}
	q, err := b64Int(jwk.Q)
	if err != nil {
		return nil, errors.Wrap(err, "invalid prime q")
	}

	key := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{
			N: n,
			E: int(e.Int64()),
		},
		D:      d,
		Primes: []*big.Int{p, q},
	}
	key.Precompute()

	if err := key.Validate(); err != nil {
		return nil, errors.Wrap(err, "key validation failed")
	}

	return key, nil
}

func b64Int(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.New("missing field")
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// Sign returns "<base64url signature>,<base64url modulus>". The modulus is
// embedded so the verifier can recover the public key without a lookup.
func (s *RSASigner) Sign(_ context.Context, msg []byte) (string, error) {
	prefixed := accounts.TextHash(msg)
	digest := sha256.Sum256(prefixed)

	sig, err := rsa.SignPSS(rand.Reader, s.key, crypto.SHA256, digest[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
		Hash:       crypto.SHA256,
	})
	if err != nil {
		return "", &apperrors.SigningError{Err: err}
	}

	return fmt.Sprintf("%s,%s",
		base64.RawURLEncoding.EncodeToString(sig),
		base64.RawURLEncoding.EncodeToString(s.key.PublicKey.N.Bytes()),
	), nil
}

// Owner returns the base64url public modulus.
func (s *RSASigner) Owner() (string, error) {
	return base64.RawURLEncoding.EncodeToString(s.key.PublicKey.N.Bytes()), nil
}

// WalletAddress returns the Arweave address, the base64url SHA-256 of the
// public modulus.
func (s *RSASigner) WalletAddress() (string, error) {
	h := sha256.Sum256(s.key.PublicKey.N.Bytes())
	return base64.RawURLEncoding.EncodeToString(h[:]), nil
}

func (s *RSASigner) Type() Type {
	return TypeRSA
}
