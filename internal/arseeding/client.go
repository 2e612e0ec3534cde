package arseeding

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"github.com/permadao/arseed-go/internal/apperrors"
	"github.com/permadao/arseed-go/internal/metrics"
	"github.com/permadao/arseed-go/internal/util"
)

// Client is the plain HTTP client for the bundler service.
type Client struct {
	hc  *http.Client
	url string
}

// NewClient creates a bundler client against the given base URL. A nil
// http.Client falls back to http.DefaultClient.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		hc:  hc,
		url: strings.TrimRight(baseURL, "/"),
	}
}

// GetBundler fetches the bundler's settlement address.
func (c *Client) GetBundler(ctx context.Context) (*BundlerRes, error) {
	var res BundlerRes
	if err := c.doJSON(ctx, &request{
		method:   http.MethodGet,
		endpoint: "bundler",
		path:     "/bundle/bundler",
	}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitItem posts a pre-signed data item to the per-currency submission
// endpoint (or the currency-less default when currency is empty) and returns
// the resulting order descriptor.
func (c *Client) SubmitItem(ctx context.Context, item []byte, currency, apiKey string) (*ItemSubmissionRes, error) {
	path := "/bundle/tx"
	if currency != "" {
		path += "/" + currency
	}

	var res ItemSubmissionRes
	if err := c.doJSON(ctx, &request{
		method:      http.MethodPost,
		endpoint:    "submit_item",
		path:        path,
		body:        item,
		contentType: "application/octet-stream",
		apiKey:      apiKey,
	}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitNativeData posts raw data to the native endpoint, with the content
// type and arbitrary tags carried as query parameters. An empty contentType
// is sniffed from the payload.
func (c *Client) SubmitNativeData(ctx context.Context, data []byte, contentType string, tags map[string]string, apiKey string) (*NativeSubmissionRes, error) {
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}

	query := url.Values{}
	query.Set("Content-Type", contentType)
	for k, v := range tags {
		query.Set(k, v)
	}

	var res NativeSubmissionRes
	if err := c.doJSON(ctx, &request{
		method:      http.MethodPost,
		endpoint:    "submit_native",
		path:        "/bundle/data",
		body:        data,
		contentType: contentType,
		query:       query,
		apiKey:      apiKey,
	}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetBundleFee quotes the fee for storing size bytes, paid in currency.
func (c *Client) GetBundleFee(ctx context.Context, size int64, currency string) (*FeeRes, error) {
	var res FeeRes
	if err := c.doJSON(ctx, &request{
		method:   http.MethodGet,
		endpoint: "fee",
		path:     "/bundle/fee/" + strconv.FormatInt(size, 10) + "/" + currency,
	}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetOrders lists the orders created by a signer address, newest first. An
// empty cursor starts from the top.
func (c *Client) GetOrders(ctx context.Context, signerAddr, cursor string) ([]Order, error) {
	req := &request{
		method:   http.MethodGet,
		endpoint: "orders",
		path:     "/bundle/orders/" + signerAddr,
	}
	if cursor != "" {
		req.query = url.Values{"cursor": []string{cursor}}
	}

	var res []Order
	if err := c.doJSON(ctx, req, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetItemMeta fetches the stored metadata of one item.
func (c *Client) GetItemMeta(ctx context.Context, itemID string) (*ItemMeta, error) {
	var res ItemMeta
	if err := c.doJSON(ctx, &request{
		method:   http.MethodGet,
		endpoint: "item_meta",
		path:     "/bundle/tx/" + itemID,
	}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetItemIDs lists the item ids bundled into one on-chain transaction.
func (c *Client) GetItemIDs(ctx context.Context, arID string) ([]string, error) {
	var res []string
	if err := c.doJSON(ctx, &request{
		method:   http.MethodGet,
		endpoint: "item_ids",
		path:     "/bundle/itemIds/" + arID,
	}, &res); err != nil {
		return nil, err
	}
	return res, nil
}

type request struct {
	method      string
	endpoint    string // metrics label
	path        string
	body        []byte
	contentType string
	query       url.Values
	apiKey      string
}

type apiErrorRes struct {
	Error string `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, r *request, out any) error {
	log := util.LogFromContext(ctx)

	target := c.url + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var reader io.Reader
	if r.body != nil {
		reader = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, reader)
	if err != nil {
		return &apperrors.NetworkError{Err: err}
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.apiKey != "" {
		req.Header.Set("X-API-KEY", r.apiKey)
	}

	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		metrics.ObserveRequest("arseeding", r.endpoint, 0, time.Since(start))
		return &apperrors.NetworkError{Err: err}
	}
	defer res.Body.Close()
	metrics.ObserveRequest("arseeding", r.endpoint, res.StatusCode, time.Since(start))

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return &apperrors.NetworkError{Err: err}
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		var apiErr apiErrorRes
		if err := json.Unmarshal(raw, &apiErr); err != nil {
			return &apperrors.DecodeError{Err: errors.Wrapf(err, "unexpected status %d", res.StatusCode)}
		}
		log.Debug().Int("status", res.StatusCode).Str("endpoint", r.endpoint).Str("error", apiErr.Error).Msg("Bundler service returned an error")
		return apperrors.NewAPI(apiErr.Error)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &apperrors.DecodeError{Err: err}
	}

	return nil
}
