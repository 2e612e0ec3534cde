package everpay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/permadao/arseed-go/internal/apperrors"
	"github.com/permadao/arseed-go/internal/metrics"
	"github.com/permadao/arseed-go/internal/util"
)

// Client is the plain HTTP client for the settlement service.
type Client struct {
	hc  *http.Client
	url string
}

// NewClient creates a settlement client against the given base URL. A nil
// http.Client falls back to http.DefaultClient.
func NewClient(url string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		hc:  hc,
		url: strings.TrimRight(url, "/"),
	}
}

// Info fetches the token list and network parameters.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	var info Info
	if err := c.doJSON(ctx, http.MethodGet, "info", "/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Balances fetches all token balances of an account.
func (c *Client) Balances(ctx context.Context, accountID string) (*Balances, error) {
	var balances Balances
	if err := c.doJSON(ctx, http.MethodGet, "balances", "/balances/"+accountID, nil, &balances); err != nil {
		return nil, err
	}
	return &balances, nil
}

// SubmitTx posts a signed transaction and returns the server's status
// payload.
func (c *Client) SubmitTx(ctx context.Context, tx *Transaction) (*StatusRes, error) {
	body, err := json.Marshal(tx)
	if err != nil {
		return nil, &apperrors.DecodeError{Err: errors.Wrap(err, "failed to marshal transaction")}
	}

	var status StatusRes
	if err := c.doJSON(ctx, http.MethodPost, "tx", "/tx", body, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

type apiErrorRes struct {
	Error string `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, method, endpoint, path string, body []byte, out any) error {
	log := util.LogFromContext(ctx)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, reader)
	if err != nil {
		return &apperrors.NetworkError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		metrics.ObserveRequest("everpay", endpoint, 0, time.Since(start))
		return &apperrors.NetworkError{Err: err}
	}
	defer res.Body.Close()
	metrics.ObserveRequest("everpay", endpoint, res.StatusCode, time.Since(start))

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return &apperrors.NetworkError{Err: err}
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		var apiErr apiErrorRes
		if err := json.Unmarshal(raw, &apiErr); err != nil {
			return &apperrors.DecodeError{Err: errors.Wrapf(err, "unexpected status %d", res.StatusCode)}
		}
		log.Debug().Int("status", res.StatusCode).Str("endpoint", endpoint).Str("error", apiErr.Error).Msg("Settlement service returned an error")
		return apperrors.NewAPI(apiErr.Error)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &apperrors.DecodeError{Err: err}
	}

	return nil
}
