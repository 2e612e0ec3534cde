package everpay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/permadao/arseed-go/internal/everpay"
)

func testTx() everpay.Transaction {
	return everpay.Transaction{
		TokenSymbol:  "AR",
		Action:       everpay.TxActionTransfer,
		From:         "2NbYHgsuI8uQcuErDsgoRUCyj9X2wZ6PBN6WTz9xyu0",
		To:           "0x6451eB7f668de69Fb4C943Db72bCF2A73DeeC6B1",
		Amount:       "500",
		Fee:          "1000",
		FeeRecipient: "0x6451eB7f668de69Fb4C943Db72bCF2A73DeeC6B1",
		Nonce:        "1656041394174",
		TokenID:      everpay.ARAddress,
		ChainType:    everpay.ChainTypeAR,
		ChainID:      everpay.ChainIDAR,
		Data:         `{"hello":"world"}`,
		Version:      everpay.TxVersionV1,
	}
}

func TestSigMsgLayout(t *testing.T) {
	tx := testTx()

	want := "tokenSymbol:AR\n" +
		"action:transfer\n" +
		"from:2NbYHgsuI8uQcuErDsgoRUCyj9X2wZ6PBN6WTz9xyu0\n" +
		"to:0x6451eB7f668de69Fb4C943Db72bCF2A73DeeC6B1\n" +
		"amount:500\n" +
		"fee:1000\n" +
		"feeRecipient:0x6451eB7f668de69Fb4C943Db72bCF2A73DeeC6B1\n" +
		"nonce:1656041394174\n" +
		"tokenID:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA\n" +
		"chainType:arweave,ethereum\n" +
		"chainID:0,1\n" +
		"data:{\"hello\":\"world\"}\n" +
		"version:v1"

	assert.Equal(t, want, tx.SigMsg())
}

func TestSigMsgDeterministic(t *testing.T) {
	tx := testTx()
	assert.Equal(t, tx.SigMsg(), tx.SigMsg())

	same := testTx()
	assert.Equal(t, tx.SigMsg(), same.SigMsg())
}

func TestSigMsgSensitivity(t *testing.T) {
	baseTx := testTx()
	base := baseTx.SigMsg()

	mutations := map[string]func(*everpay.Transaction){
		"tokenSymbol":  func(tx *everpay.Transaction) { tx.TokenSymbol = "ETH" },
		"action":       func(tx *everpay.Transaction) { tx.Action = everpay.TxActionBurn },
		"from":         func(tx *everpay.Transaction) { tx.From = "other" },
		"to":           func(tx *everpay.Transaction) { tx.To = "other" },
		"amount":       func(tx *everpay.Transaction) { tx.Amount = "501" },
		"fee":          func(tx *everpay.Transaction) { tx.Fee = "1001" },
		"feeRecipient": func(tx *everpay.Transaction) { tx.FeeRecipient = "other" },
		"nonce":        func(tx *everpay.Transaction) { tx.Nonce = "1" },
		"tokenID":      func(tx *everpay.Transaction) { tx.TokenID = "other" },
		"chainType":    func(tx *everpay.Transaction) { tx.ChainType = "moon" },
		"chainID":      func(tx *everpay.Transaction) { tx.ChainID = "5" },
		"data":         func(tx *everpay.Transaction) { tx.Data = "{}" },
		"version":      func(tx *everpay.Transaction) { tx.Version = "v2" },
	}

	for field, mutate := range mutations {
		tx := testTx()
		mutate(&tx)
		assert.NotEqual(t, base, tx.SigMsg(), "changing %s must change the signing message", field)
	}

	// the signature itself is not part of the message
	tx := testTx()
	tx.Sig = "0xdeadbeef"
	assert.Equal(t, base, tx.SigMsg())
}
