package balance

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/permadao/arseed-go/internal/config"
	"github.com/permadao/arseed-go/internal/everpay"
	"github.com/permadao/arseed-go/internal/signer"
	"github.com/permadao/arseed-go/internal/util"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [account]",
		Short: "Prints everpay balances",
		Long: `Fetches the everpay balances of an account and prints them as JSON.
When no account is given, the address of the configured signer is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultServiceConfigFromEnv()

			account, err := resolveAccount(cfg, args)
			if err != nil {
				return err
			}

			client := everpay.NewClient(cfg.Everpay.URL, &http.Client{Timeout: cfg.HTTPTimeout})

			balances, err := client.Balances(cmd.Context(), account)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(balances, "", "  ")
			if err != nil {
				return err
			}

			fmt.Println(string(out))

			return nil
		},
	}
}

func resolveAccount(cfg config.Service, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	sgn, err := signer.FromConfig(cfg.Signer, func() (string, error) {
		return util.ReadPassphrase("Keystore passphrase: ")
	})
	if err != nil {
		return "", err
	}

	return sgn.WalletAddress()
}
