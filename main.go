package main

import (
	"encoding/gob"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/alexedwards/scs"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	zero "github.com/rs/zerolog/log"

	"github.com/hatakou1021-design/sns-site/internal/config"
	"github.com/hatakou1021-design/sns-site/internal/credential"
	"github.com/hatakou1021-design/sns-site/internal/domain"
	"github.com/hatakou1021-design/sns-site/internal/identity"
	"github.com/hatakou1021-design/sns-site/internal/initialization"
	"github.com/hatakou1021-design/sns-site/internal/points"
	"github.com/hatakou1021-design/sns-site/internal/poststore"
	"github.com/hatakou1021-design/sns-site/internal/web"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	zero.Logger = zero.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	store, closeStore, err := initialization.NewStore(&cfg)
	if err != nil {
		zero.Fatal().Err(err).Msg("unable to set up the store backend")
		os.Exit(1)
	}
	if closeStore != nil {
		defer closeStore()
	}
	zero.Info().Str("backend", cfg.StoreBackend).Msg("store ready")

	gob.Register(domain.Session{})
	manager := scs.NewCookieManager(cfg.SessionSecret)

	credentials := credential.New(store)
	posts := poststore.New(store)
	pointsLedger := points.New(store)

	var provider identity.Provider
	switch cfg.AuthMode {
	case identity.ModeLocal:
		provider = identity.NewLocal(credentials)
	case identity.ModeToken:
		provider = identity.NewToken(credentials)
	default:
		zero.Fatal().Str("auth_mode", cfg.AuthMode).Msg("unknown auth mode")
		os.Exit(1)
	}
	zero.Info().Str("provider", provider.Name()).Msg("identity provider selected")

	handler := web.New(&cfg, manager, credentials, posts, pointsLedger, provider)
	router := chi.NewRouter()
	handler.Mount(router)

	s := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	zero.Info().Uint16("port", cfg.Port).Str("site", cfg.SiteName).Msg("started server")
	err = s.ListenAndServe()
	if err != nil {
		log.Fatal(err)
	}
}
