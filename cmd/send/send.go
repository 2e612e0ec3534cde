package send

import (
	"fmt"
	"net/http"
	"os"

	"github.com/dropbox/godropbox/time2"
	"github.com/spf13/cobra"

	"github.com/permadao/arseed-go/internal/arseeding"
	"github.com/permadao/arseed-go/internal/config"
	"github.com/permadao/arseed-go/internal/everpay"
	"github.com/permadao/arseed-go/internal/signer"
	"github.com/permadao/arseed-go/internal/util"
)

const (
	currencyFlag string = "currency"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <item-file>",
		Short: "Submits a pre-signed data item and pays for it",
		Long: `Reads a serialized, pre-signed data item from a file, submits it to the
bundler and settles the returned fee through everpay using the configured
signer. On a payment failure the accepted item id is printed so the payment
can be retried.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := util.LogFromContext(ctx)
			cfg := config.DefaultServiceConfigFromEnv()

			currency, err := cmd.Flags().GetString(currencyFlag)
			if err != nil {
				return err
			}

			item, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			sgn, err := signer.FromConfig(cfg.Signer, func() (string, error) {
				return util.ReadPassphrase("Keystore passphrase: ")
			})
			if err != nil {
				return err
			}

			hc := &http.Client{Timeout: cfg.HTTPTimeout}

			pay, err := everpay.NewService(ctx, everpay.NewClient(cfg.Everpay.URL, hc), sgn, time2.DefaultClock)
			if err != nil {
				return err
			}

			svc := arseeding.NewService(arseeding.NewClient(cfg.Arseeding.URL, hc), nil, pay)

			itemID, err := svc.SubmitAndPay(ctx, item, currency, cfg.Arseeding.APIKey)
			if err != nil {
				if itemID != "" {
					log.Warn().Str("itemId", itemID).Msg("Item accepted but unpaid, retry the payment with this id")
				}

				return err
			}

			fmt.Println(itemID)

			return nil
		},
	}

	cmd.Flags().String(currencyFlag, "", "Token symbol to pay the storage fee in (bundler default when empty)")

	return cmd
}
