package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// ModuleName is the stable identifier of this SDK, used in logs and the CLI.
const ModuleName = "arseed-go"

const (
	// DefaultArseedingURL is the public arseeding gateway.
	DefaultArseedingURL = "https://arseed.web3infra.dev"
	// DefaultEverpayURL is the public everpay API endpoint.
	DefaultEverpayURL = "https://api.everpay.io"
)

// Arseeding holds the bundler service client settings.
type Arseeding struct {
	URL    string `json:"url"`
	APIKey string `json:"-"` // never logged or printed
}

// Everpay holds the settlement service client settings.
type Everpay struct {
	URL string `json:"url"`
}

// Signer selects the key material for the active signer. Exactly one of the
// sources is expected to be set.
type Signer struct {
	ArweaveKeyfile string `json:"arweaveKeyfile"`
	EthKeystore    string `json:"ethKeystore"`
	EthPrivateKey  string `json:"-"` // hex, ENV only
}

// Logger holds the zerolog setup.
type Logger struct {
	Level              string `json:"level"`
	PrettyPrintConsole bool   `json:"prettyPrintConsole"`
}

// Service is the full resolved configuration of the SDK's CLI and clients.
type Service struct {
	Arseeding   Arseeding     `json:"arseeding"`
	Everpay     Everpay       `json:"everpay"`
	Signer      Signer        `json:"signer"`
	Logger      Logger        `json:"logger"`
	HTTPTimeout time.Duration `json:"httpTimeout"`
}

var (
	configOnce sync.Once
	v          *viper.Viper
)

// DefaultServiceConfigFromEnv returns the config resolved from ENV (prefix
// ARSEED_), with a .env file applied first when present. Values resolve once
// per process.
func DefaultServiceConfigFromEnv() Service {
	configOnce.Do(func() {
		// best effort, a missing .env is the normal case in production
		_ = gotenv.Load()

		v = viper.New()
		v.SetEnvPrefix("ARSEED")
		v.AutomaticEnv()

		v.SetDefault("ARSEEDING_URL", DefaultArseedingURL)
		v.SetDefault("ARSEEDING_API_KEY", "")
		v.SetDefault("EVERPAY_URL", DefaultEverpayURL)
		v.SetDefault("ARWEAVE_KEYFILE", "")
		v.SetDefault("ETH_KEYSTORE", "")
		v.SetDefault("ETH_PRIVATE_KEY", "")
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_PRETTY", false)
		v.SetDefault("HTTP_TIMEOUT", "30s")
	})

	return Service{
		Arseeding: Arseeding{
			URL:    v.GetString("ARSEEDING_URL"),
			APIKey: v.GetString("ARSEEDING_API_KEY"),
		},
		Everpay: Everpay{
			URL: v.GetString("EVERPAY_URL"),
		},
		Signer: Signer{
			ArweaveKeyfile: v.GetString("ARWEAVE_KEYFILE"),
			EthKeystore:    v.GetString("ETH_KEYSTORE"),
			EthPrivateKey:  v.GetString("ETH_PRIVATE_KEY"),
		},
		Logger: Logger{
			Level:              v.GetString("LOG_LEVEL"),
			PrettyPrintConsole: v.GetBool("LOG_PRETTY"),
		},
		HTTPTimeout: v.GetDuration("HTTP_TIMEOUT"),
	}
}
