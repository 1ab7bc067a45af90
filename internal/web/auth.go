package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hatakou1021-design/sns-site/internal/domain"
	"github.com/hatakou1021-design/sns-site/internal/identity"
	"github.com/hatakou1021-design/sns-site/internal/points"
)

const SessionKey = "user"

type key struct{}

// GetSession returns the session attached to the request context by
// SessionMiddleware.
func GetSession(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(key{}).(domain.Session)
	return s, ok
}

func SessionMiddleware(handler *Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			zero := domain.Session{}
			session := handler.SessionManager.Load(r)
			var s domain.Session
			err := session.GetObject(SessionKey, &s)
			if s != zero && err == nil {
				ctx := r.Context()
				ctx = context.WithValue(ctx, key{}, s)
				r = r.WithContext(ctx)
			}

			h.ServeHTTP(w, r)
		})
	}
}

func AuthenticatedMiddleware() func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetSession(r.Context()); !ok {
				renderJSON(w, http.StatusUnauthorized, errorResponse{Error: "ログインが必要です"})
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

type loginResponse struct {
	Session domain.Session `json:"session"`
	Bonus   points.Award   `json:"bonus"`
}

// Login hands the submitted credentials to the configured identity provider
// and, on success, mirrors the session into the cookie and grants the daily
// login bonus.
func Login(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		session, err := handler.provider.Authenticate(ctx, identity.Credentials{
			Email:    req.Email,
			Password: req.Password,
			Token:    req.Token,
		})
		if err != nil {
			renderError(w, err)
			return
		}

		handler.establish(w, r, session)

		bonus, err := handler.points.AwardDailyBonus(ctx, session.Email)
		if err != nil {
			log.Error().Err(err).Msg("awarding login bonus")
		}

		renderJSON(w, http.StatusOK, loginResponse{Session: session, Bonus: bonus})
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func SignUp(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req signUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		session, err := handler.credentials.Register(ctx, req.Name, req.Email, req.Password)
		if err != nil {
			renderError(w, err)
			return
		}

		handler.establish(w, r, session)

		bonus, err := handler.points.AwardDailyBonus(ctx, session.Email)
		if err != nil {
			log.Error().Err(err).Msg("awarding login bonus")
		}

		renderJSON(w, http.StatusCreated, loginResponse{Session: session, Bonus: bonus})
	}
}

func Logout(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handler.credentials.Logout(r.Context()); err != nil {
			renderError(w, err)
			return
		}

		s := handler.SessionManager.Load(r)
		if err := s.Destroy(w); err != nil {
			log.Error().Err(err).Msg("destroying cookie session")
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func CurrentSession(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := handler.credentials.Current(r.Context())
		if err != nil {
			renderError(w, err)
			return
		}
		renderJSON(w, http.StatusOK, session)
	}
}

type profileRequest struct {
	Name string `json:"name"`
}

// UpdateProfile edits the display name on the active session only.
func UpdateProfile(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		session, err := handler.credentials.UpdateProfileName(r.Context(), req.Name)
		if err != nil {
			renderError(w, err)
			return
		}

		handler.establish(w, r, session)
		renderJSON(w, http.StatusOK, session)
	}
}

// establish mirrors the core session into the cookie session.
func (h *Handler) establish(w http.ResponseWriter, r *http.Request, session domain.Session) {
	s := h.SessionManager.Load(r)
	if err := s.PutObject(w, SessionKey, session); err != nil {
		log.Error().Err(err).Msg("writing cookie session")
	}
}
