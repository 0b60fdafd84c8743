package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/farhanrmdhni/portfolio-backend/auth"
	"github.com/farhanrmdhni/portfolio-backend/errs"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      *auth.Service
}

func newAuthHandler(authService *auth.Service) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		auth:      authService,
	}
}

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f loginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, is.EmailFormat),
		validation.Field(&f.Password, validation.Required),
	)
}

// loginResponse carries the session token the admin panel stores and
// sends back as a bearer token.
type loginResponse struct {
	Token     string     `json:"token"`
	User      *auth.User `json:"user"`
	ExpiresIn int        `json:"expires_in"`
}

// login checks the admin credentials and issues a session token.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var form loginForm
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&form); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode login request body")
			h.responder.WriteError(w, errs.Malformed("login payload"))
			return
		}
		if err := form.Validate(); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		token, user, err := h.auth.SignIn(form.Email, form.Password)
		if err != nil {
			if errs.IsInvalidCredentialsError(err) {
				h.logger.Warn().Str("email", form.Email).Msg("Rejected sign-in attempt")
			}
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, loginResponse{
			Token:     token,
			User:      user,
			ExpiresIn: int(h.auth.SessionTTL().Seconds()),
		})
	}
}

// me returns the identity attached by the auth middleware.
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())
		if user == nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// logout acknowledges the sign-out. Sessions are stateless tokens, so
// the client dropping the token is what actually ends the session.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user := ctxGetUser(r.Context()); user != nil {
			h.logger.Info().Str("email", user.Email).Msg("Admin signed out")
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "signed out",
		})
	}
}
