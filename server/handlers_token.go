package server

import (
	"net/http"

	"github.com/jrsteele09/go-school-insights/auth"
)

// TokenHandler exchanges form-encoded username and password for a bearer token.
// grant_type is optional but must be "password" when sent.
func (s *Server) TokenHandler() http.HandlerFunc {
	validator := auth.NewValidator()

	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			s.writeError(w, r, malformedBody("failed to parse form data"))
			return
		}

		for _, field := range []string{"username", "password"} {
			if !r.PostForm.Has(field) {
				s.writeError(w, r, unprocessable("field required: %s", field))
				return
			}
		}
		if err := validator.ValidateGrantType(r.PostForm.Get("grant_type")); err != nil {
			s.writeError(w, r, unprocessable("%s", err.Error()))
			return
		}

		tokenResponse, err := s.services.Auth.Login(r.PostForm.Get("username"), r.PostForm.Get("password"))
		if err != nil {
			s.logger.Debug().Err(err).Str("username", r.PostForm.Get("username")).Msg("login rejected")
			s.writeError(w, r, err)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		writeJSON(w, http.StatusOK, tokenResponse)
	}
}
