package identity

import (
	"context"
	"fmt"

	"github.com/hatakou1021-design/sns-site/internal/credential"
	"github.com/hatakou1021-design/sns-site/internal/domain"
)

// Local authenticates against the credential ledger's account table.
type Local struct {
	Ledger *credential.Ledger
}

func NewLocal(ledger *credential.Ledger) *Local {
	return &Local{Ledger: ledger}
}

func (p *Local) Name() string { return ModeLocal }

func (p *Local) Authenticate(ctx context.Context, c Credentials) (domain.Session, error) {
	if c.Email == "" || c.Password == "" {
		return domain.Session{}, fmt.Errorf("%w: email and password required", ErrBadCredentials)
	}
	return p.Ledger.Login(ctx, c.Email, c.Password)
}
