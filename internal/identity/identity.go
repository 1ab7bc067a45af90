// Package identity abstracts over the two ways a session can be obtained:
// locally stored credentials, or a token minted by an external identity
// provider. The active provider is selected by configuration.
package identity

import (
	"context"
	"errors"

	"github.com/hatakou1021-design/sns-site/internal/domain"
)

const (
	ModeLocal = "local"
	ModeToken = "token"
)

var ErrBadCredentials = errors.New("credentials not usable by this provider")

// Credentials carries whichever fields the selected provider consumes.
type Credentials struct {
	Email    string
	Password string
	Token    string
}

type Provider interface {
	Name() string
	// Authenticate turns provider-specific credentials into a session. The
	// session is also persisted as the active one.
	Authenticate(ctx context.Context, c Credentials) (domain.Session, error)
}
