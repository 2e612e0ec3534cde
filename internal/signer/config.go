package signer

import (
	"github.com/pkg/errors"

	"github.com/permadao/arseed-go/internal/config"
	"github.com/permadao/arseed-go/internal/keystore"
)

// FromConfig builds the signer selected by cfg. Exactly one key source is
// honored, checked in order: encrypted keystore, raw hex key, Arweave keyfile.
// promptPassphrase is called once when the keystore needs unlocking.
//
//nolint:ireturn
func FromConfig(cfg config.Signer, promptPassphrase func() (string, error)) (Signer, error) {
	switch {
	case cfg.EthKeystore != "":
		ks, err := keystore.Load(cfg.EthKeystore)
		if err != nil {
			return nil, err
		}

		passphrase, err := promptPassphrase()
		if err != nil {
			return nil, err
		}

		secret, err := keystore.Decrypt(ks, passphrase)
		if err != nil {
			return nil, err
		}

		return NewECDSA(secret)
	case cfg.EthPrivateKey != "":
		return NewECDSA(cfg.EthPrivateKey)
	case cfg.ArweaveKeyfile != "":
		return NewRSA(cfg.ArweaveKeyfile)
	default:
		return nil, errors.New("no signer configured, set ARSEED_ETH_KEYSTORE, ARSEED_ETH_PRIVATE_KEY or ARSEED_ARWEAVE_KEYFILE")
	}
}
