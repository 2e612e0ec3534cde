package bundle

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/permadao/arseed-go/internal/arseeding"
	"github.com/permadao/arseed-go/internal/config"
	"github.com/permadao/arseed-go/internal/util/command"
)

const (
	cursorFlag string = "cursor"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("bundle",
		newBundler(),
		newFee(),
		newOrders(),
		newItemMeta(),
		newItemIDs(),
	)
}

func newBundler() *cobra.Command {
	return &cobra.Command{
		Use:   "bundler",
		Short: "Prints the bundler's settlement address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().GetBundler(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(res.Bundler)

			return nil
		},
	}
}

func newFee() *cobra.Command {
	return &cobra.Command{
		Use:   "fee <size> <currency>",
		Short: "Quotes the storage fee for a payload size",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid size %q: %w", args[0], err)
			}

			res, err := newClient().GetBundleFee(cmd.Context(), size, args[1])
			if err != nil {
				return err
			}

			return printJSON(res)
		},
	}
}

func newOrders() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders <signer-address>",
		Short: "Lists the orders created by a signer address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cursor, err := cmd.Flags().GetString(cursorFlag)
			if err != nil {
				return err
			}

			orders, err := newClient().GetOrders(cmd.Context(), args[0], cursor)
			if err != nil {
				return err
			}

			return printJSON(orders)
		},
	}

	cmd.Flags().String(cursorFlag, "", "Order id to continue listing after")

	return cmd
}

func newItemMeta() *cobra.Command {
	return &cobra.Command{
		Use:   "item <item-id>",
		Short: "Prints the stored metadata of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := newClient().GetItemMeta(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(meta)
		},
	}
}

func newItemIDs() *cobra.Command {
	return &cobra.Command{
		Use:   "items <ar-tx-id>",
		Short: "Lists the item ids bundled into an on-chain transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := newClient().GetItemIDs(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(ids)
		},
	}
}

func newClient() *arseeding.Client {
	cfg := config.DefaultServiceConfigFromEnv()

	return arseeding.NewClient(cfg.Arseeding.URL, &http.Client{Timeout: cfg.HTTPTimeout})
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}
