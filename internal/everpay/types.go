package everpay

import "fmt"

// Protocol version carried by every transaction.
const TxVersionV1 = "v1"

// Transaction actions.
const (
	TxActionTransfer = "transfer"
	TxActionMint     = "mint"
	TxActionBurn     = "burn"
)

// Well-known token ids.
const (
	ARAddress  = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	EVMAddress = "0x0000000000000000000000000000000000000000"
)

// Chain identities of the AR token, which lives on both chains.
const (
	AccountTypeAR  = "arweave"
	ArweaveChainID = "0"

	AccountTypeEVM = "ethereum"
	EthChainID     = "1"

	ChainTypeAR = "arweave,ethereum"
	ChainIDAR   = "0,1"
)

// Token describes one fungible asset on the settlement network. Immutable
// once fetched.
type Token struct {
	Tag                string            `json:"tag"`
	ID                 string            `json:"id"`
	Symbol             string            `json:"symbol"`
	Decimals           int               `json:"decimals"`
	TotalSupply        string            `json:"totalSupply"`
	ChainType          string            `json:"chainType"`
	ChainID            string            `json:"chainID"`
	BurnFees           map[string]string `json:"burnFees"`
	TransferFee        string            `json:"transferFee"`
	BundleFee          string            `json:"bundleFee"`
	HolderNum          int               `json:"holderNum"`
	CrossChainInfoList map[string]struct {
		TargetChainID   string `json:"targetChainId"`
		TargetChainType string `json:"targetChainType"`
		TargetDecimals  int    `json:"targetDecimals"`
		TargetTokenID   string `json:"targetTokenId"`
	} `json:"crossChainInfoList"`
}

// Info is the settlement service's /info payload.
type Info struct {
	IsSynced        bool              `json:"isSynced"`
	IsClosed        bool              `json:"isClosed"`
	BalanceRootHash string            `json:"balanceRootHash"`
	RootHash        string            `json:"rootHash"`
	EverRootHash    string            `json:"everRootHash"`
	Owner           string            `json:"owner"`
	SetActionOwner  string            `json:"setActionOwner"`
	EthChainID      string            `json:"ethChainID"`
	FeeRecipient    string            `json:"feeRecipient"`
	EthLocker       string            `json:"ethLocker"`
	ArLocker        string            `json:"arLocker"`
	Lockers         map[string]string `json:"lockers"`
	TokenList       []Token           `json:"tokenList"`
}

// Balance is one token balance of an account.
type Balance struct {
	Tag      string `json:"tag"`
	Amount   string `json:"amount"`
	Decimals int64  `json:"decimals"`
}

// Balances is the settlement service's /balances/:accid payload.
type Balances struct {
	AccID    string    `json:"accid"`
	Balances []Balance `json:"balances"`
}

// Transaction is one settlement-network operation. Sig stays empty until the
// canonical message has been signed; after that the record is
// submission-ready and must not be mutated.
type Transaction struct {
	TokenSymbol  string `json:"tokenSymbol"`
	Action       string `json:"action"`
	From         string `json:"from"`
	To           string `json:"to"`
	Amount       string `json:"amount"`
	Fee          string `json:"fee"`
	FeeRecipient string `json:"feeRecipient"`
	Nonce        string `json:"nonce"`
	TokenID      string `json:"tokenId"`
	ChainType    string `json:"chainType"`
	ChainID      string `json:"chainId"`
	Data         string `json:"data"`
	Version      string `json:"version"`
	Sig          string `json:"sig"`
}

// SigMsg is the canonical signing message: every field except the signature,
// newline-joined in this exact order and labelling. The server re-derives the
// identical string to verify the signature, so any change here breaks
// verification.
func (t *Transaction) SigMsg() string {
	return fmt.Sprintf("tokenSymbol:%s\naction:%s\nfrom:%s\nto:%s\namount:%s\nfee:%s\nfeeRecipient:%s\nnonce:%s\ntokenID:%s\nchainType:%s\nchainID:%s\ndata:%s\nversion:%s",
		t.TokenSymbol,
		t.Action,
		t.From,
		t.To,
		t.Amount,
		t.Fee,
		t.FeeRecipient,
		t.Nonce,
		t.TokenID,
		t.ChainType,
		t.ChainID,
		t.Data,
		t.Version,
	)
}

// StatusRes is the settlement service's acceptance payload. The status string
// is passed through verbatim, never validated client-side.
type StatusRes struct {
	Status string `json:"status"`
}
