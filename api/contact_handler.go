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

	"github.com/farhanrmdhni/portfolio-backend/database"
	"github.com/farhanrmdhni/portfolio-backend/errs"
	"github.com/farhanrmdhni/portfolio-backend/services"
)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
	config      map[string]string
}

func newContactHandler(profileRepo *database.ProfileRepo, c map[string]string) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
		config:      c,
	}
}

type contactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (f contactForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.Email, validation.Required, is.EmailFormat),
		validation.Field(&f.Message, validation.Required, validation.Length(1, 5000)),
	)
}

// submitContact relays a visitor message to the address on the saved
// profile.
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var form contactForm
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&form); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode contact request body")
			h.responder.WriteError(w, errs.Malformed("contact payload"))
			return
		}
		if err := form.Validate(); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		profile, err := h.profileRepo.FindFirst()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}

		recipient := ""
		if profile != nil {
			recipient = profile.Email
		}

		if err := services.SendContactEmail(h.config, recipient, services.ContactMessage{
			Name:    form.Name,
			Email:   form.Email,
			Message: form.Message,
		}); err != nil {
			h.logger.Error().Err(err).Msg("Failed to relay contact message")
			h.responder.WriteError(w, errs.NewApiErr(http.StatusBadGateway, "failed to send message"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "message sent",
		})
	}
}
