package signer

import (
	"context"

	"github.com/permadao/arseed-go/internal/apperrors"
)

// InteractiveSigner adapts an externally negotiated wallet session to the
// Signer interface. The account is fixed when the session is established;
// signing may block on user interaction in the external wallet.
type InteractiveSigner struct {
	session PersonalSigner
	account string
}

// NewInteractive wraps a wallet session for the given account.
func NewInteractive(session PersonalSigner, account string) *InteractiveSigner {
	return &InteractiveSigner{session: session, account: account}
}

func (s *InteractiveSigner) Sign(ctx context.Context, msg []byte) (string, error) {
	sig, err := s.session.PersonalSign(ctx, msg, s.account)
	if err != nil {
		return "", &apperrors.SigningError{Err: err}
	}
	return sig, nil
}

func (s *InteractiveSigner) Owner() (string, error) {
	return "", nil
}

func (s *InteractiveSigner) WalletAddress() (string, error) {
	return s.account, nil
}

func (s *InteractiveSigner) Type() Type {
	return TypeECDSA
}
