package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hatakou1021-design/sns-site/internal/credential"
	"github.com/hatakou1021-design/sns-site/internal/identity"
	"github.com/hatakou1021-design/sns-site/internal/points"
	"github.com/hatakou1021-design/sns-site/internal/poststore"
)

type errorResponse struct {
	Error string `json:"error"`
}

func renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

func renderError(w http.ResponseWriter, err error) {
	renderJSON(w, GetCode(err), errorResponse{Error: err.Error()})
}

// GetCode maps core errors onto HTTP statuses.
func GetCode(err error) int {
	switch {
	case errors.Is(err, credential.ErrInvalidCredentials),
		errors.Is(err, credential.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, credential.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, credential.ErrInvalidInput),
		errors.Is(err, poststore.ErrInvalidContent),
		errors.Is(err, points.ErrInvalidInput),
		errors.Is(err, identity.ErrBadCredentials):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
