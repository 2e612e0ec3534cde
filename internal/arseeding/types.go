package arseeding

import (
	"context"
	"time"
)

// Payment payload tags recognized by the bundler's settlement watcher.
const (
	PayAppName       = "arseeding"
	PayActionPayment = "payment"
)

// BundlerRes is the bundler's settlement address.
type BundlerRes struct {
	Bundler string `json:"bundler"`
}

// ItemSubmissionRes is the order descriptor the bundler creates for one
// accepted data item. It is consumed as-is to build the paying transfer.
type ItemSubmissionRes struct {
	ItemID             string `json:"itemId"`
	Bundler            string `json:"bundler"`
	Currency           string `json:"currency"`
	Decimals           int64  `json:"decimals"`
	Fee                string `json:"fee"`
	PaymentExpiredTime int64  `json:"paymentExpiredTime"`
	ExpectedBlock      int64  `json:"expectedBlock"`
}

// NativeSubmissionRes is the response of the currency-less native data
// endpoint (payment covered by the API key).
type NativeSubmissionRes struct {
	ItemID string `json:"itemId"`
}

// FeeRes is a fee quote for a given data size.
type FeeRes struct {
	Currency string `json:"currency"`
	Decimals int64  `json:"decimals"`
	FinalFee string `json:"finalFee"`
}

// Order is the bundler's record of one accepted, possibly-unpaid submission.
type Order struct {
	ID                 uint64     `json:"id"`
	CreatedAt          *time.Time `json:"createdAt"`
	UpdatedAt          *time.Time `json:"updatedAt"`
	ItemID             string     `json:"itemId"`
	Signer             string     `json:"signer"`
	SignType           int        `json:"signType"`
	Size               int64      `json:"size"`
	Currency           string     `json:"currency"`
	Decimals           int        `json:"decimals"`
	Fee                string     `json:"fee"`
	PaymentExpiredTime int64      `json:"paymentExpiredTime"`
	ExpectedBlock      int64      `json:"expectedBlock"`
	PaymentStatus      string     `json:"paymentStatus"`
	PaymentID          string     `json:"paymentId"`
	OnChainStatus      string     `json:"onChainStatus"`
}

// ItemMeta is the stored metadata of one bundled item.
type ItemMeta struct {
	SignatureType int64  `json:"signatureType"`
	Signature     string `json:"signature"`
	Owner         string `json:"owner"`
	Target        string `json:"target"`
	Anchor        string `json:"anchor"`
	Tags          []Tag  `json:"tags"`
	Data          string `json:"data"`
	ID            string `json:"id"`
}

// Tag is one key/value pair attached to a data item.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PayOrder is the transfer payload that links a settlement transfer to the
// bundler orders it pays for.
type PayOrder struct {
	AppName string   `json:"appName"`
	Action  string   `json:"action"`
	ItemIDs []string `json:"itemIds"`
}

// ItemSigner wraps arbitrary data and tags into a serialized, signed data
// item. Data-item construction itself is an external capability; the SDK only
// forwards its output.
type ItemSigner interface {
	SignItem(ctx context.Context, data []byte, tags []Tag) ([]byte, error)
}
