package signer

import (
	"crypto/sha512"
	"strconv"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"golang.org/x/crypto/pbkdf2"
)

// DefaultBIP44Path is the first external Ethereum account.
const DefaultBIP44Path = "m/44'/60'/0'/0/0"

// SeedFromMnemonic converts a BIP39 mnemonic and optional password to a
// 64-byte seed (PBKDF2-SHA512, 2048 rounds per the standard).
func SeedFromMnemonic(mnemonic, password string) []byte {
	const (
		pbkdf2Iterations = 2048
		pbkdf2KeyLength  = 64
	)

	return pbkdf2.Key(
		[]byte(mnemonic),
		[]byte("mnemonic"+password),
		pbkdf2Iterations,
		pbkdf2KeyLength,
		sha512.New,
	)
}

// NewECDSAFromSeed derives the secp256k1 signing key from a BIP39 seed and a
// BIP44 path.
func NewECDSAFromSeed(seed []byte, path string) (*ECDSASigner, error) {
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	indices, err := parseBIP44Path(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse BIP44 path")
	}

	key := masterKey
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	ecdsaKey, err := ethcrypto.ToECDSA(key.Key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert derived key to ECDSA")
	}

	return NewECDSAFromKey(ecdsaKey), nil
}

// parseBIP44Path parses a path like "m/44'/60'/0'/0/0" into child indices,
// with ' marking hardened derivation.
func parseBIP44Path(path string) ([]uint32, error) {
	if len(path) == 0 || path[0] != 'm' {
		return nil, errors.Errorf("invalid BIP44 path: %s", path)
	}

	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return nil, errors.Errorf("invalid BIP44 path: %s", path)
	}

	indices := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'")
		part = strings.TrimSuffix(part, "'")

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid path segment %q", part)
		}
		if hardened {
			index += uint64(bip32.FirstHardenedChild)
		}
		indices = append(indices, uint32(index))
	}

	return indices, nil
}
