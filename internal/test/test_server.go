// Package test provides programmable in-process stand-ins for the bundler
// and settlement services, used by the package tests.
package test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/permadao/arseed-go/internal/arseeding"
	"github.com/permadao/arseed-go/internal/everpay"
)

// Failure makes an endpoint answer with the standard error envelope.
type Failure struct {
	Status  int
	Message string
}

// BundlerFixture drives the mock bundler service. Fields may be mutated
// between requests; Last* fields record the most recent submission.
type BundlerFixture struct {
	Bundler    arseeding.BundlerRes
	Submission arseeding.ItemSubmissionRes
	Native     arseeding.NativeSubmissionRes
	Fee        arseeding.FeeRes
	Orders     []arseeding.Order
	ItemMeta   arseeding.ItemMeta
	ItemIDs    []string

	// Fail applies to every endpoint when set.
	Fail *Failure

	LastItem        []byte
	LastCurrency    string
	LastAPIKey      string
	LastContentType string
	LastQuery       map[string]string
}

// WithBundlerServer runs fn against a mock bundler service.
func WithBundlerServer(t *testing.T, fx *BundlerFixture, fn func(baseURL string)) {
	t.Helper()

	e := echo.New()
	e.HideBanner = true

	fail := func(c echo.Context) bool {
		if fx.Fail == nil {
			return false
		}
		//nolint:errcheck
		c.JSON(fx.Fail.Status, map[string]string{"error": fx.Fail.Message})
		return true
	}

	e.GET("/bundle/bundler", func(c echo.Context) error {
		if fail(c) {
			return nil
		}
		return c.JSON(http.StatusOK, fx.Bundler)
	})

	submit := func(c echo.Context) error {
		if fail(c) {
			return nil
		}
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return err
		}
		fx.LastItem = body
		fx.LastCurrency = c.Param("currency")
		fx.LastAPIKey = c.Request().Header.Get("X-API-KEY")
		fx.LastContentType = c.Request().Header.Get("Content-Type")
		return c.JSON(http.StatusOK, fx.Submission)
	}
	e.POST("/bundle/tx", submit)
	e.POST("/bundle/tx/:currency", submit)

	e.POST("/bundle/data", func(c echo.Context) error {
		if fail(c) {
			return nil
		}
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return err
		}
		fx.LastItem = body
		fx.LastAPIKey = c.Request().Header.Get("X-API-KEY")
		fx.LastContentType = c.Request().Header.Get("Content-Type")
		fx.LastQuery = map[string]string{}
		for k, v := range c.QueryParams() {
			if len(v) > 0 {
				fx.LastQuery[k] = v[0]
			}
		}
		return c.JSON(http.StatusOK, fx.Native)
	})

	e.GET("/bundle/fee/:size/:currency", func(c echo.Context) error {
		if fail(c) {
			return nil
		}
		return c.JSON(http.StatusOK, fx.Fee)
	})

	e.GET("/bundle/orders/:signer", func(c echo.Context) error {
		if fail(c) {
			return nil
		}
		return c.JSON(http.StatusOK, fx.Orders)
	})

	e.GET("/bundle/tx/:itemId", func(c echo.Context) error {
		if fail(c) {
			return nil
		}
		return c.JSON(http.StatusOK, fx.ItemMeta)
	})

	e.GET("/bundle/itemIds/:arId", func(c echo.Context) error {
		if fail(c) {
			return nil
		}
		return c.JSON(http.StatusOK, fx.ItemIDs)
	})

	srv := httptest.NewServer(e)
	defer srv.Close()

	fn(srv.URL)
}

// EverpayFixture drives the mock settlement service. Per-endpoint failures
// allow e.g. a healthy registry fetch followed by a rejected submission.
type EverpayFixture struct {
	Info         everpay.Info
	Balances     everpay.Balances
	SubmitStatus everpay.StatusRes

	FailInfo     *Failure
	FailBalances *Failure
	FailTx       *Failure

	// LastTx records the most recently submitted transaction.
	LastTx *everpay.Transaction
}

// WithEverpayServer runs fn against a mock settlement service.
func WithEverpayServer(t *testing.T, fx *EverpayFixture, fn func(baseURL string)) {
	t.Helper()

	e := echo.New()
	e.HideBanner = true

	fail := func(c echo.Context, f *Failure) bool {
		if f == nil {
			return false
		}
		//nolint:errcheck
		c.JSON(f.Status, map[string]string{"error": f.Message})
		return true
	}

	e.GET("/info", func(c echo.Context) error {
		if fail(c, fx.FailInfo) {
			return nil
		}
		return c.JSON(http.StatusOK, fx.Info)
	})

	e.GET("/balances/:accid", func(c echo.Context) error {
		if fail(c, fx.FailBalances) {
			return nil
		}
		return c.JSON(http.StatusOK, fx.Balances)
	})

	e.POST("/tx", func(c echo.Context) error {
		if fail(c, fx.FailTx) {
			return nil
		}
		var tx everpay.Transaction
		if err := c.Bind(&tx); err != nil {
			return err
		}
		fx.LastTx = &tx
		return c.JSON(http.StatusOK, fx.SubmitStatus)
	})

	srv := httptest.NewServer(e)
	defer srv.Close()

	fn(srv.URL)
}

// DefaultEverpayInfo returns a registry with the AR and USDC tokens, enough
// for most transfer scenarios.
func DefaultEverpayInfo() everpay.Info {
	return everpay.Info{
		IsSynced:     true,
		EthChainID:   "1",
		FeeRecipient: "0x6451eB7f668de69Fb4C943Db72bCF2A73DeeC6B1",
		TokenList: []everpay.Token{
			{
				Tag:         "arweave,ethereum-ar-" + everpay.ARAddress,
				ID:          everpay.ARAddress,
				Symbol:      "AR",
				Decimals:    12,
				ChainType:   everpay.ChainTypeAR,
				ChainID:     everpay.ChainIDAR,
				TransferFee: "1000",
			},
			{
				Tag:         "ethereum-usdc-0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
				ID:          "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
				Symbol:      "USDC",
				Decimals:    6,
				ChainType:   everpay.AccountTypeEVM,
				ChainID:     everpay.EthChainID,
				TransferFee: "500",
			},
		},
	}
}
