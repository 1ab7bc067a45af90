// Package web is the demo presentation layer: a JSON surface over the core
// ledgers and the feed engine. All invariants live in the core packages;
// nothing here touches the persisted records directly.
package web

import (
	"github.com/alexedwards/scs"

	"github.com/hatakou1021-design/sns-site/internal/config"
	"github.com/hatakou1021-design/sns-site/internal/credential"
	"github.com/hatakou1021-design/sns-site/internal/identity"
	"github.com/hatakou1021-design/sns-site/internal/points"
	"github.com/hatakou1021-design/sns-site/internal/poststore"
)

const (
	LoginRoute  = "/login"
	SignUpRoute = "/signup"
	FeedRoute   = "/feed"
)

type Handler struct {
	Config         *config.Configuration
	SessionManager *scs.Manager

	credentials *credential.Ledger
	posts       *poststore.Store
	points      *points.Ledger
	provider    identity.Provider
}

func New(
	cfg *config.Configuration,
	manager *scs.Manager,
	credentials *credential.Ledger,
	posts *poststore.Store,
	pointsLedger *points.Ledger,
	provider identity.Provider,
) *Handler {
	return &Handler{
		Config:         cfg,
		SessionManager: manager,
		credentials:    credentials,
		posts:          posts,
		points:         pointsLedger,
		provider:       provider,
	}
}
