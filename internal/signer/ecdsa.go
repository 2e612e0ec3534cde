package signer

import (
	"context"
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/permadao/arseed-go/internal/apperrors"
)

// ECDSASigner signs with an owned secp256k1 key using the Ethereum
// personal-message convention.
type ECDSASigner struct {
	key *ecdsa.PrivateKey
}

// NewECDSA parses a hex-encoded secp256k1 private key (with or without 0x
// prefix).
func NewECDSA(hexKey string) (*ECDSASigner, error) {
	key, err := ethcrypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse private key")
	}
	return NewECDSAFromKey(key), nil
}

// NewECDSAFromKey wraps an already-loaded secp256k1 private key.
func NewECDSAFromKey(key *ecdsa.PrivateKey) *ECDSASigner {
	return &ECDSASigner{key: key}
}

// Sign returns the 0x-prefixed 65-byte personal-message signature with the
// recovery id mapped to 27/28 as the settlement network expects.
func (s *ECDSASigner) Sign(_ context.Context, msg []byte) (string, error) {
	sig, err := ethcrypto.Sign(accounts.TextHash(msg), s.key)
	if err != nil {
		return "", &apperrors.SigningError{Err: err}
	}
	sig[64] += 27

	return hexutil.Encode(sig), nil
}

// Owner is empty for the ECDSA scheme; the address alone identifies the
// account.
func (s *ECDSASigner) Owner() (string, error) {
	return "", nil
}

// WalletAddress returns the EIP-55 checksummed address.
func (s *ECDSASigner) WalletAddress() (string, error) {
	return ethcrypto.PubkeyToAddress(s.key.PublicKey).Hex(), nil
}

func (s *ECDSASigner) Type() Type {
	return TypeECDSA
}
