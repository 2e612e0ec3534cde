package info

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/permadao/arseed-go/internal/config"
	"github.com/permadao/arseed-go/internal/everpay"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Prints the everpay network info",
		Long:  "Fetches the everpay network parameters (supported tokens, fee recipient) and prints them as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.DefaultServiceConfigFromEnv()
			client := everpay.NewClient(cfg.Everpay.URL, &http.Client{Timeout: cfg.HTTPTimeout})

			info, err := client.Info(cmd.Context())
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return err
			}

			fmt.Println(string(out))

			return nil
		},
	}
}
