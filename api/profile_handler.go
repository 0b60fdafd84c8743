package api

import (
	"bytes"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/farhanrmdhni/portfolio-backend/database"
	"github.com/farhanrmdhni/portfolio-backend/errs"
	"github.com/farhanrmdhni/portfolio-backend/models"
	"github.com/farhanrmdhni/portfolio-backend/storage"
)

type profileHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
	storage     *storage.Client
}

func newProfileHandler(profileRepo *database.ProfileRepo, storageClient *storage.Client) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
		storage:     storageClient,
	}
}

type profileForm struct {
	Name      string
	Bio       string
	Email     string
	Phone     string
	Github    string
	Linkedin  string
	Instagram string
	Website   string
	PhotoURL  string
}

func (f profileForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.Email, is.EmailFormat),
		validation.Field(&f.Github, is.URL),
		validation.Field(&f.Linkedin, is.URL),
		validation.Field(&f.Instagram, is.URL),
		validation.Field(&f.Website, is.URL),
	)
}

// getProfile returns the singleton profile. The about, contact and
// footer sections all render from this one response.
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profileRepo.FindFirst()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}
		if profile == nil {
			// Nothing saved yet: respond with an empty profile rather
			// than a 404 so the public sections degrade gracefully.
			h.responder.WriteJSON(w, models.Profile{})
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}

// saveProfile creates the profile on first save, updates it afterwards.
// Multipart: text fields plus an optional `photo` file part that is
// uploaded to the profile photo bucket before the record is written.
func (h profileHandler) saveProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.logger.Error().Err(err).Msg("Failed to parse multipart form")
			h.responder.WriteError(w, errs.Malformed("profile form"))
			return
		}

		form := profileForm{
			Name:      r.FormValue("name"),
			Bio:       r.FormValue("bio"),
			Email:     r.FormValue("email"),
			Phone:     r.FormValue("phone"),
			Github:    r.FormValue("github"),
			Linkedin:  r.FormValue("linkedin"),
			Instagram: r.FormValue("instagram"),
			Website:   r.FormValue("website"),
			PhotoURL:  r.FormValue("photo_url"),
		}
		if err := form.Validate(); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		photoURL := form.PhotoURL
		if headers := r.MultipartForm.File["photo"]; len(headers) > 0 {
			header := headers[0]
			file, err := header.Open()
			if err != nil {
				h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to open uploaded photo")
				h.responder.WriteError(w, errs.NewBadRequestError("unreadable photo upload"))
				return
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to read uploaded photo")
				h.responder.WriteError(w, errs.NewBadRequestError("unreadable photo upload"))
				return
			}

			uploadedURL, err := h.storage.UploadProfilePhoto(r.Context(), header.Filename, header.Header.Get("Content-Type"), bytes.NewReader(data))
			if err != nil {
				h.logger.Error().Err(err).Msg("Profile photo upload failed, profile not saved")
				h.responder.WriteError(w, err)
				return
			}
			photoURL = uploadedURL
		}

		profile := models.Profile{
			Name:      form.Name,
			Bio:       form.Bio,
			Email:     form.Email,
			Phone:     form.Phone,
			Github:    form.Github,
			Linkedin:  form.Linkedin,
			Instagram: form.Instagram,
			Website:   form.Website,
			PhotoURL:  photoURL,
		}

		if err := h.profileRepo.Save(&profile); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save", "profile", err))
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}
