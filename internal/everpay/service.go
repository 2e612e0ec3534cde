package everpay

import (
	"context"
	"math/big"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"

	"github.com/permadao/arseed-go/internal/apperrors"
	"github.com/permadao/arseed-go/internal/signer"
	"github.com/permadao/arseed-go/internal/util"
)

// Service builds, signs and submits settlement transactions.
//
// Nonces are wall-clock milliseconds with no coordination between concurrent
// calls from the same signer; two transfers in the same millisecond collide
// and the settlement service decides their fate. Callers needing strict
// ordering must serialize their own calls.
type Service interface {
	// Refresh re-fetches the token registry. On failure the previous
	// registry stays fully intact.
	Refresh(ctx context.Context) error

	// ResolveToken maps a currency symbol (case-insensitive) to its token
	// descriptor.
	ResolveToken(symbol string) (*Token, error)

	// FeeRecipient returns the registry-wide fee recipient address.
	FeeRecipient() string

	// Tokens returns the current tag-keyed token registry snapshot.
	Tokens() map[string]Token

	// SymbolToTag returns the current lowercase-symbol index snapshot.
	SymbolToTag() map[string]string

	// Info fetches the raw settlement network info.
	Info(ctx context.Context) (*Info, error)

	// Balances fetches all token balances of an account.
	Balances(ctx context.Context, accountID string) (*Balances, error)

	// Sign signs the canonical message with the active signer.
	Sign(ctx context.Context, msg string) (string, error)

	// BuildTx builds and signs a transaction with every settlement
	// parameter supplied explicitly. It does not submit.
	BuildTx(ctx context.Context, tokenSymbol, action, fee, feeRecipient, tokenID, chainType, chainID, receiver string, amount *big.Int, data string) (*Transaction, error)

	// BuildTransfer builds and signs a transfer, resolving the token id,
	// chain identity, transfer fee and fee recipient from the registry.
	// It does not submit.
	BuildTransfer(ctx context.Context, symbol, receiver string, amount *big.Int, data string) (*Transaction, error)

	// SubmitTx submits a signed transaction.
	SubmitTx(ctx context.Context, tx *Transaction) (*StatusRes, error)

	// SignAndSendTx is BuildTx followed by SubmitTx.
	SignAndSendTx(ctx context.Context, tokenSymbol, action, fee, feeRecipient, tokenID, chainType, chainID, receiver string, amount *big.Int, data string) (*StatusRes, error)

	// Transfer is BuildTransfer followed by SubmitTx.
	Transfer(ctx context.Context, symbol, receiver string, amount *big.Int, data string) (*StatusRes, error)
}

// registry is an immutable snapshot, replaced whole on refresh so concurrent
// readers never observe a partial update.
type registry struct {
	tokens       map[string]Token
	symbolToTag  map[string]string
	feeRecipient string
}

type service struct {
	client *Client
	signer signer.Signer
	clock  time2.Clock
	reg    atomic.Pointer[registry]
}

// NewService creates the settlement service and performs the initial registry
// refresh. The registry is read-mostly afterwards; staleness is a caller
// concern.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(ctx context.Context, client *Client, sgn signer.Signer, clock time2.Clock) (Service, error) {
	s := &service{
		client: client,
		signer: sgn,
		clock:  clock,
	}
	s.reg.Store(&registry{
		tokens:      map[string]Token{},
		symbolToTag: map[string]string{},
	})

	if err := s.Refresh(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to fetch token registry")
	}

	return s, nil
}

func (s *service) Refresh(ctx context.Context) error {
	info, err := s.client.Info(ctx)
	if err != nil {
		return err
	}

	tokens := make(map[string]Token, len(info.TokenList))
	symbolToTag := make(map[string]string, len(info.TokenList))
	for _, t := range info.TokenList {
		tokens[t.Tag] = t
		symbolToTag[strings.ToLower(t.Symbol)] = t.Tag
	}

	s.reg.Store(&registry{
		tokens:       tokens,
		symbolToTag:  symbolToTag,
		feeRecipient: info.FeeRecipient,
	})

	util.LogFromContext(ctx).Debug().Int("tokens", len(tokens)).Msg("Token registry refreshed")

	return nil
}

func (s *service) ResolveToken(symbol string) (*Token, error) {
	reg := s.reg.Load()

	tag, ok := reg.symbolToTag[strings.ToLower(symbol)]
	if !ok {
		return nil, &apperrors.UnknownTokenError{Symbol: symbol}
	}

	token := reg.tokens[tag]
	return &token, nil
}

func (s *service) FeeRecipient() string {
	return s.reg.Load().feeRecipient
}

func (s *service) Tokens() map[string]Token {
	reg := s.reg.Load()
	tokens := make(map[string]Token, len(reg.tokens))
	for tag, t := range reg.tokens {
		tokens[tag] = t
	}
	return tokens
}

func (s *service) SymbolToTag() map[string]string {
	reg := s.reg.Load()
	index := make(map[string]string, len(reg.symbolToTag))
	for sym, tag := range reg.symbolToTag {
		index[sym] = tag
	}
	return index
}

func (s *service) Info(ctx context.Context) (*Info, error) {
	return s.client.Info(ctx)
}

func (s *service) Balances(ctx context.Context, accountID string) (*Balances, error) {
	return s.client.Balances(ctx, accountID)
}

func (s *service) Sign(ctx context.Context, msg string) (string, error) {
	return s.signer.Sign(ctx, []byte(msg))
}

func (s *service) BuildTx(ctx context.Context, tokenSymbol, action, fee, feeRecipient, tokenID, chainType, chainID, receiver string, amount *big.Int, data string) (*Transaction, error) {
	from, err := s.signer.WalletAddress()
	if err != nil {
		return nil, &apperrors.AddressError{Err: err}
	}

	tx := &Transaction{
		TokenSymbol:  tokenSymbol,
		Action:       action,
		From:         from,
		To:           receiver,
		Amount:       amount.String(),
		Fee:          fee,
		FeeRecipient: feeRecipient,
		Nonce:        s.nonce(),
		TokenID:      tokenID,
		ChainType:    chainType,
		ChainID:      chainID,
		Data:         data,
		Version:      TxVersionV1,
	}

	sig, err := s.Sign(ctx, tx.SigMsg())
	if err != nil {
		return nil, err
	}
	tx.Sig = sig

	return tx, nil
}

func (s *service) BuildTransfer(ctx context.Context, symbol, receiver string, amount *big.Int, data string) (*Transaction, error) {
	token, err := s.ResolveToken(symbol)
	if err != nil {
		return nil, err
	}

	return s.BuildTx(ctx,
		token.Symbol,
		TxActionTransfer,
		token.TransferFee,
		s.FeeRecipient(),
		token.ID,
		token.ChainType,
		token.ChainID,
		receiver,
		amount,
		data,
	)
}

func (s *service) SubmitTx(ctx context.Context, tx *Transaction) (*StatusRes, error) {
	return s.client.SubmitTx(ctx, tx)
}

func (s *service) SignAndSendTx(ctx context.Context, tokenSymbol, action, fee, feeRecipient, tokenID, chainType, chainID, receiver string, amount *big.Int, data string) (*StatusRes, error) {
	tx, err := s.BuildTx(ctx, tokenSymbol, action, fee, feeRecipient, tokenID, chainType, chainID, receiver, amount, data)
	if err != nil {
		return nil, err
	}

	return s.SubmitTx(ctx, tx)
}

func (s *service) Transfer(ctx context.Context, symbol, receiver string, amount *big.Int, data string) (*StatusRes, error) {
	tx, err := s.BuildTransfer(ctx, symbol, receiver, amount, data)
	if err != nil {
		return nil, err
	}

	res, err := s.SubmitTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	util.LogFromContext(ctx).Debug().
		Str("symbol", symbol).
		Str("to", receiver).
		Str("amount", amount.String()).
		Str("status", res.Status).
		Msg("Transfer submitted")

	return res, nil
}

// nonce is the current wall-clock time in milliseconds. Collisions within a
// single millisecond are possible and left to the server to arbitrate.
func (s *service) nonce() string {
	return strconv.FormatInt(s.clock.Now().UnixMilli(), 10)
}
