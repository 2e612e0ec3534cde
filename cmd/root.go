package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/permadao/arseed-go/cmd/balance"
	"github.com/permadao/arseed-go/cmd/bundle"
	"github.com/permadao/arseed-go/cmd/env"
	"github.com/permadao/arseed-go/cmd/info"
	"github.com/permadao/arseed-go/cmd/keytool"
	"github.com/permadao/arseed-go/cmd/send"
	"github.com/permadao/arseed-go/internal/config"
	"github.com/permadao/arseed-go/internal/util"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "arseed",
	Short: config.ModuleName,
	Long: fmt.Sprintf(`%v

Client for the arseeding bundler and the everpay settlement network.
Requires configuration through ENV.`, config.ModuleName),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cfg := config.DefaultServiceConfigFromEnv()
	setupLogger(cfg.Logger)

	// attach the subcommands
	rootCmd.AddCommand(
		balance.New(),
		bundle.New(),
		env.New(),
		info.New(),
		keytool.New(),
		send.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}

func setupLogger(cfg config.Logger) {
	zerolog.SetGlobalLevel(util.LogLevelFromString(cfg.Level))
	if cfg.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter())
	}
}
