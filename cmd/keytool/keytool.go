package keytool

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/permadao/arseed-go/internal/config"
	"github.com/permadao/arseed-go/internal/keystore"
	"github.com/permadao/arseed-go/internal/signer"
	"github.com/permadao/arseed-go/internal/util"
	"github.com/permadao/arseed-go/internal/util/command"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("key",
		newEncrypt(),
		newAddress(),
	)
}

func newEncrypt() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <keystore-file>",
		Short: "Encrypts a hex signing key into a keystore file",
		Long: `Prompts for a hex-encoded ECDSA signing key and a passphrase, then writes
an encrypted keystore v3 file usable via ARSEED_ETH_KEYSTORE.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			secret, err := util.ReadPassphrase("Hex signing key: ")
			if err != nil {
				return err
			}

			// fail early on malformed key material
			if _, err := signer.NewECDSA(secret); err != nil {
				return err
			}

			passphrase, err := util.ReadPassphrase("Passphrase: ")
			if err != nil {
				return err
			}
			confirmed, err := util.ReadPassphrase("Repeat passphrase: ")
			if err != nil {
				return err
			}
			if passphrase != confirmed {
				return errors.New("passphrases do not match")
			}

			ks, err := keystore.Encrypt(secret, passphrase)
			if err != nil {
				return err
			}
			if err := keystore.Save(args[0], ks); err != nil {
				return err
			}

			fmt.Println(args[0])

			return nil
		},
	}
}

func newAddress() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Prints the address of the configured signer",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.DefaultServiceConfigFromEnv()

			sgn, err := signer.FromConfig(cfg.Signer, func() (string, error) {
				return util.ReadPassphrase("Keystore passphrase: ")
			})
			if err != nil {
				return err
			}

			addr, err := sgn.WalletAddress()
			if err != nil {
				return err
			}

			fmt.Println(addr)

			return nil
		},
	}
}
