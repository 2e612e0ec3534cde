package arseeding_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permadao/arseed-go/internal/apperrors"
	"github.com/permadao/arseed-go/internal/arseeding"
	"github.com/permadao/arseed-go/internal/test"
)

func TestGetBundler(t *testing.T) {
	fx := &test.BundlerFixture{
		Bundler: arseeding.BundlerRes{Bundler: "uDA8ZblC-lyEFfsYXKewpwaX-kkNDDw8az3IW9bDL68"},
	}

	test.WithBundlerServer(t, fx, func(baseURL string) {
		c := arseeding.NewClient(baseURL, nil)

		res, err := c.GetBundler(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "uDA8ZblC-lyEFfsYXKewpwaX-kkNDDw8az3IW9bDL68", res.Bundler)
	})
}

func TestSubmitItem(t *testing.T) {
	fx := &test.BundlerFixture{
		Submission: arseeding.ItemSubmissionRes{
			ItemID:   "item-1",
			Bundler:  "B",
			Currency: "usdc",
			Decimals: 6,
			Fee:      "1000",
		},
	}

	test.WithBundlerServer(t, fx, func(baseURL string) {
		c := arseeding.NewClient(baseURL, nil)

		res, err := c.SubmitItem(t.Context(), []byte("signed item bytes"), "usdc", "secret-key")
		require.NoError(t, err)
		assert.Equal(t, "item-1", res.ItemID)

		assert.Equal(t, []byte("signed item bytes"), fx.LastItem)
		assert.Equal(t, "usdc", fx.LastCurrency)
		assert.Equal(t, "secret-key", fx.LastAPIKey)
		assert.Equal(t, "application/octet-stream", fx.LastContentType)
	})
}

func TestSubmitItemDefaultEndpoint(t *testing.T) {
	fx := &test.BundlerFixture{
		Submission: arseeding.ItemSubmissionRes{ItemID: "item-2"},
	}

	test.WithBundlerServer(t, fx, func(baseURL string) {
		c := arseeding.NewClient(baseURL, nil)

		res, err := c.SubmitItem(t.Context(), []byte("x"), "", "")
		require.NoError(t, err)
		assert.Equal(t, "item-2", res.ItemID)
		assert.Empty(t, fx.LastCurrency)
		assert.Empty(t, fx.LastAPIKey)
	})
}

func TestSubmitNativeDataSniffsContentType(t *testing.T) {
	fx := &test.BundlerFixture{
		Native: arseeding.NativeSubmissionRes{ItemID: "native-1"},
	}

	test.WithBundlerServer(t, fx, func(baseURL string) {
		c := arseeding.NewClient(baseURL, nil)

		res, err := c.SubmitNativeData(t.Context(), []byte(`{"a":1}`), "", map[string]string{"hello": "there"}, "")
		require.NoError(t, err)
		assert.Equal(t, "native-1", res.ItemID)

		assert.NotEmpty(t, fx.LastContentType)
		assert.Equal(t, fx.LastContentType, fx.LastQuery["Content-Type"])
		assert.Equal(t, "there", fx.LastQuery["hello"])
	})
}

func TestGetBundleFee(t *testing.T) {
	fx := &test.BundlerFixture{
		Fee: arseeding.FeeRes{Currency: "USDC", Decimals: 6, FinalFee: "1573"},
	}

	test.WithBundlerServer(t, fx, func(baseURL string) {
		c := arseeding.NewClient(baseURL, nil)

		res, err := c.GetBundleFee(t.Context(), 1000, "usdc")
		require.NoError(t, err)
		assert.Equal(t, "1573", res.FinalFee)
	})
}

func TestGetOrders(t *testing.T) {
	created := time.Date(2022, 6, 24, 3, 29, 54, 174_000_000, time.UTC)
	fx := &test.BundlerFixture{
		Orders: []arseeding.Order{
			{
				ID:            7,
				CreatedAt:     &created,
				ItemID:        "item-1",
				Signer:        "2NbYHgsuI8uQcuErDsgoRUCyj9X2wZ6PBN6WTz9xyu0",
				Currency:      "AR",
				Fee:           "1000",
				PaymentStatus: "unpaid",
			},
		},
	}

	test.WithBundlerServer(t, fx, func(baseURL string) {
		c := arseeding.NewClient(baseURL, nil)

		orders, err := c.GetOrders(t.Context(), "2NbYHgsuI8uQcuErDsgoRUCyj9X2wZ6PBN6WTz9xyu0", "")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "item-1", orders[0].ItemID)
		assert.Equal(t, "unpaid", orders[0].PaymentStatus)
		require.NotNil(t, orders[0].CreatedAt)
		assert.True(t, created.Equal(*orders[0].CreatedAt))
	})
}

func TestGetItemMetaAndItemIDs(t *testing.T) {
	fx := &test.BundlerFixture{
		ItemMeta: arseeding.ItemMeta{
			ID:            "item-1",
			SignatureType: 1,
			Tags:          []arseeding.Tag{{Name: "Content-Type", Value: "text/plain"}},
		},
		ItemIDs: []string{"item-1", "item-2"},
	}

	test.WithBundlerServer(t, fx, func(baseURL string) {
		c := arseeding.NewClient(baseURL, nil)

		meta, err := c.GetItemMeta(t.Context(), "item-1")
		require.NoError(t, err)
		assert.Equal(t, "item-1", meta.ID)
		require.Len(t, meta.Tags, 1)

		ids, err := c.GetItemIDs(t.Context(), "ar-tx-id")
		require.NoError(t, err)
		assert.Equal(t, []string{"item-1", "item-2"}, ids)
	})
}

func TestClientAPIErrorEnvelope(t *testing.T) {
	fx := &test.BundlerFixture{
		Fail: &test.Failure{Status: http.StatusBadRequest, Message: "err_invalid_currency"},
	}

	test.WithBundlerServer(t, fx, func(baseURL string) {
		c := arseeding.NewClient(baseURL, nil)

		for name, call := range map[string]func() error{
			"bundler":  func() error { _, err := c.GetBundler(t.Context()); return err },
			"submit":   func() error { _, err := c.SubmitItem(t.Context(), []byte("x"), "usdc", ""); return err },
			"fee":      func() error { _, err := c.GetBundleFee(t.Context(), 1, "usdc"); return err },
			"orders":   func() error { _, err := c.GetOrders(t.Context(), "signer", ""); return err },
			"itemMeta": func() error { _, err := c.GetItemMeta(t.Context(), "id"); return err },
			"itemIds":  func() error { _, err := c.GetItemIDs(t.Context(), "id"); return err },
		} {
			err := call()
			require.Error(t, err, name)

			var apiErr *apperrors.APIError
			require.True(t, errors.As(err, &apiErr), name)
			assert.Equal(t, "err_invalid_currency", apiErr.Message, name)
		}
	})
}
