package everpay_test

import (
	"math/big"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permadao/arseed-go/internal/apperrors"
	"github.com/permadao/arseed-go/internal/everpay"
	"github.com/permadao/arseed-go/internal/signer"
	"github.com/permadao/arseed-go/internal/test"
)

func newTestSigner(t *testing.T) signer.Signer {
	t.Helper()
	s, err := signer.NewECDSA("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	require.NoError(t, err)
	return s
}

func TestResolveTokenCaseInsensitive(t *testing.T) {
	fx := &test.EverpayFixture{Info: test.DefaultEverpayInfo()}

	test.WithEverpayServer(t, fx, func(baseURL string) {
		svc, err := everpay.NewService(t.Context(), everpay.NewClient(baseURL, nil), newTestSigner(t), time2.DefaultClock)
		require.NoError(t, err)

		lower, err := svc.ResolveToken("ar")
		require.NoError(t, err)
		upper, err := svc.ResolveToken("AR")
		require.NoError(t, err)
		mixed, err := svc.ResolveToken("Ar")
		require.NoError(t, err)

		assert.Equal(t, lower, upper)
		assert.Equal(t, lower, mixed)
		assert.Equal(t, "AR", lower.Symbol)
		assert.Equal(t, "1000", lower.TransferFee)
	})
}

func TestResolveUnknownToken(t *testing.T) {
	fx := &test.EverpayFixture{Info: test.DefaultEverpayInfo()}

	test.WithEverpayServer(t, fx, func(baseURL string) {
		svc, err := everpay.NewService(t.Context(), everpay.NewClient(baseURL, nil), newTestSigner(t), time2.DefaultClock)
		require.NoError(t, err)

		before := svc.Tokens()

		_, err = svc.ResolveToken("dogecoin")
		require.Error(t, err)

		var unknownErr *apperrors.UnknownTokenError
		require.True(t, errors.As(err, &unknownErr))
		assert.Equal(t, "dogecoin", unknownErr.Symbol)

		// a failed lookup must not mutate registry state
		assert.Equal(t, before, svc.Tokens())
	})
}

func TestRefreshFailureKeepsRegistry(t *testing.T) {
	fx := &test.EverpayFixture{Info: test.DefaultEverpayInfo()}

	test.WithEverpayServer(t, fx, func(baseURL string) {
		svc, err := everpay.NewService(t.Context(), everpay.NewClient(baseURL, nil), newTestSigner(t), time2.DefaultClock)
		require.NoError(t, err)

		fx.FailInfo = &test.Failure{Status: http.StatusInternalServerError, Message: "err_internal"}

		err = svc.Refresh(t.Context())
		require.Error(t, err)

		// previous registry contents stay fully queryable
		token, err := svc.ResolveToken("usdc")
		require.NoError(t, err)
		assert.Equal(t, "USDC", token.Symbol)
		assert.Equal(t, "0x6451eB7f668de69Fb4C943Db72bCF2A73DeeC6B1", svc.FeeRecipient())
	})
}

func TestBuildTransfer(t *testing.T) {
	info := everpay.Info{
		FeeRecipient: "0xFEE",
		TokenList: []everpay.Token{
			{
				Tag:         "AR_TAG",
				ID:          everpay.ARAddress,
				Symbol:      "AR",
				Decimals:    12,
				ChainType:   "arweave",
				ChainID:     "0",
				TransferFee: "1000",
			},
		},
	}
	fx := &test.EverpayFixture{Info: info}

	test.WithEverpayServer(t, fx, func(baseURL string) {
		clock := time2.NewMockClock(time.UnixMilli(1656041394174))
		sgn := newTestSigner(t)
		svc, err := everpay.NewService(t.Context(), everpay.NewClient(baseURL, nil), sgn, clock)
		require.NoError(t, err)

		tx, err := svc.BuildTransfer(t.Context(), "ar", "RECEIVER", big.NewInt(500), "{}")
		require.NoError(t, err)

		from, err := sgn.WalletAddress()
		require.NoError(t, err)

		assert.Equal(t, "AR", tx.TokenSymbol)
		assert.Equal(t, everpay.TxActionTransfer, tx.Action)
		assert.Equal(t, from, tx.From)
		assert.Equal(t, "RECEIVER", tx.To)
		assert.Equal(t, "500", tx.Amount)
		assert.Equal(t, "1000", tx.Fee)
		assert.Equal(t, "0xFEE", tx.FeeRecipient)
		assert.Equal(t, "1656041394174", tx.Nonce)
		assert.Equal(t, everpay.ARAddress, tx.TokenID)
		assert.Equal(t, "arweave", tx.ChainType)
		assert.Equal(t, "0", tx.ChainID)
		assert.Equal(t, "{}", tx.Data)
		assert.Equal(t, everpay.TxVersionV1, tx.Version)
		assert.NotEmpty(t, tx.Sig)
		assert.True(t, strings.HasPrefix(tx.Sig, "0x"))
	})
}

func TestBuildTransferUnknownSymbol(t *testing.T) {
	fx := &test.EverpayFixture{Info: test.DefaultEverpayInfo()}

	test.WithEverpayServer(t, fx, func(baseURL string) {
		svc, err := everpay.NewService(t.Context(), everpay.NewClient(baseURL, nil), newTestSigner(t), time2.DefaultClock)
		require.NoError(t, err)

		_, err = svc.BuildTransfer(t.Context(), "nope", "RECEIVER", big.NewInt(1), "")
		var unknownErr *apperrors.UnknownTokenError
		require.True(t, errors.As(err, &unknownErr))
	})
}

func TestTransferSubmits(t *testing.T) {
	fx := &test.EverpayFixture{
		Info:         test.DefaultEverpayInfo(),
		SubmitStatus: everpay.StatusRes{Status: "ok"},
	}

	test.WithEverpayServer(t, fx, func(baseURL string) {
		svc, err := everpay.NewService(t.Context(), everpay.NewClient(baseURL, nil), newTestSigner(t), time2.DefaultClock)
		require.NoError(t, err)

		res, err := svc.Transfer(t.Context(), "usdc", "0xRECEIVER", big.NewInt(42), `{"memo":"hi"}`)
		require.NoError(t, err)
		assert.Equal(t, "ok", res.Status)

		require.NotNil(t, fx.LastTx)
		assert.Equal(t, "USDC", fx.LastTx.TokenSymbol)
		assert.Equal(t, "0xRECEIVER", fx.LastTx.To)
		assert.Equal(t, "42", fx.LastTx.Amount)
		assert.Equal(t, "500", fx.LastTx.Fee)
		assert.NotEmpty(t, fx.LastTx.Sig)
	})
}

func TestTransferSubmitRejected(t *testing.T) {
	fx := &test.EverpayFixture{
		Info:   test.DefaultEverpayInfo(),
		FailTx: &test.Failure{Status: http.StatusBadRequest, Message: "err_invalid_signature"},
	}

	test.WithEverpayServer(t, fx, func(baseURL string) {
		svc, err := everpay.NewService(t.Context(), everpay.NewClient(baseURL, nil), newTestSigner(t), time2.DefaultClock)
		require.NoError(t, err)

		_, err = svc.Transfer(t.Context(), "ar", "RECEIVER", big.NewInt(1), "")
		require.Error(t, err)

		var apiErr *apperrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "err_invalid_signature", apiErr.Message)
	})
}

func TestNewServiceFailsWhenInfoUnavailable(t *testing.T) {
	fx := &test.EverpayFixture{
		FailInfo: &test.Failure{Status: http.StatusServiceUnavailable, Message: "err_syncing"},
	}

	test.WithEverpayServer(t, fx, func(baseURL string) {
		_, err := everpay.NewService(t.Context(), everpay.NewClient(baseURL, nil), newTestSigner(t), time2.DefaultClock)
		require.Error(t, err)
	})
}
