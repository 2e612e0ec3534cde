package arseeding

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/permadao/arseed-go/internal/apperrors"
	"github.com/permadao/arseed-go/internal/everpay"
	"github.com/permadao/arseed-go/internal/metrics"
	"github.com/permadao/arseed-go/internal/util"
)

// Service orchestrates bundler submissions and their settlement payments.
//
// The two phases are deliberately not atomic: the bundler keeps payment-
// pending orders independently of client state, so a submission that succeeds
// and a payment that fails leaves a valid unpaid order behind. The item id is
// returned alongside the payment error so the caller can retry the payment
// (the order-query endpoint re-derives the same fee/order state).
type Service interface {
	// BundleAndSubmit wraps data and tags into a signed data item and
	// submits it, returning the bundler's order descriptor. It does not
	// pay.
	BundleAndSubmit(ctx context.Context, data []byte, tags []Tag, currency, apiKey string) (*ItemSubmissionRes, error)

	// SubmitAndPay submits a pre-signed data item and pays the resulting
	// order through the settlement network. Returns the item id; on a
	// payment failure the item id is still returned with the error.
	SubmitAndPay(ctx context.Context, item []byte, currency, apiKey string) (string, error)

	// SendAndPay is BundleAndSubmit followed by the settlement payment.
	// Same partial-failure contract as SubmitAndPay.
	SendAndPay(ctx context.Context, currency string, tags []Tag, data []byte, apiKey string) (string, error)
}

type service struct {
	client *Client
	items  ItemSigner
	pay    everpay.Service
}

// NewService creates the submission orchestrator. itemSigner may be nil when
// only pre-signed items are submitted.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(client *Client, itemSigner ItemSigner, pay everpay.Service) Service {
	return &service{
		client: client,
		items:  itemSigner,
		pay:    pay,
	}
}

func (s *service) BundleAndSubmit(ctx context.Context, data []byte, tags []Tag, currency, apiKey string) (*ItemSubmissionRes, error) {
	if s.items == nil {
		return nil, apperrors.NewArgument("no item signer configured")
	}

	item, err := s.items.SignItem(ctx, data, tags)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign data item")
	}

	return s.client.SubmitItem(ctx, item, currency, apiKey)
}

func (s *service) SubmitAndPay(ctx context.Context, item []byte, currency, apiKey string) (string, error) {
	order, err := s.client.SubmitItem(ctx, item, currency, apiKey)
	if err != nil {
		metrics.CountPayment(metrics.PaymentSubmitFailed)
		return "", err
	}

	return s.payOrder(ctx, order)
}

func (s *service) SendAndPay(ctx context.Context, currency string, tags []Tag, data []byte, apiKey string) (string, error) {
	order, err := s.BundleAndSubmit(ctx, data, tags, currency, apiKey)
	if err != nil {
		metrics.CountPayment(metrics.PaymentSubmitFailed)
		return "", err
	}

	return s.payOrder(ctx, order)
}

// payOrder builds the payment payload referencing the order's item id and
// transfers the required fee to the bundler. No retry, no rollback.
func (s *service) payOrder(ctx context.Context, order *ItemSubmissionRes) (string, error) {
	log := util.LogFromContext(ctx).With().
		Str("item_id", order.ItemID).
		Str("currency", order.Currency).
		Str("fee", order.Fee).
		Logger()

	fee, ok := new(big.Int).SetString(order.Fee, 10)
	if !ok {
		metrics.CountPayment(metrics.PaymentPaymentFailed)
		return order.ItemID, apperrors.NewArgument(fmt.Sprintf("order fee %q is not an integer", order.Fee))
	}

	payload, err := json.Marshal(&PayOrder{
		AppName: PayAppName,
		Action:  PayActionPayment,
		ItemIDs: []string{order.ItemID},
	})
	if err != nil {
		metrics.CountPayment(metrics.PaymentPaymentFailed)
		return order.ItemID, errors.Wrap(err, "failed to marshal payment payload")
	}

	if _, err := s.pay.Transfer(ctx, order.Currency, order.Bundler, fee, string(payload)); err != nil {
		// the order stays pending server-side; the caller retries the
		// payment with the returned item id
		log.Warn().Err(err).Msg("Item accepted by bundler but payment failed")
		metrics.CountPayment(metrics.PaymentPaymentFailed)
		return order.ItemID, errors.Wrapf(err, "item %s accepted but unpaid", order.ItemID)
	}

	log.Info().Msg("Item submitted and paid")
	metrics.CountPayment(metrics.PaymentPaid)

	return order.ItemID, nil
}
