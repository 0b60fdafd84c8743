package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/farhanrmdhni/portfolio-backend/database"
	"github.com/farhanrmdhni/portfolio-backend/errs"
	"github.com/farhanrmdhni/portfolio-backend/models"
	"github.com/farhanrmdhni/portfolio-backend/services"
	"github.com/farhanrmdhni/portfolio-backend/storage"
)

// maxUploadMemory caps the in-memory portion of a multipart parse.
const maxUploadMemory = 32 << 20

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	storage     *storage.Client
}

func newProjectHandler(projectRepo *database.ProjectRepo, storageClient *storage.Client) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		storage:     storageClient,
	}
}

// projectForm carries the text fields of the multipart create/update
// request. Images travel separately: `existing_images` values for
// retained URLs and `images` file parts for new uploads.
type projectForm struct {
	Title        string
	Description  string
	Detail       string
	Technologies string
	ImageURL     string
	IsFeatured   bool
}

func (f projectForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.Description, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.Detail, validation.Required),
		validation.Field(&f.Technologies, validation.Required),
		validation.Field(&f.ImageURL, is.URL),
	)
}

// ProjectCollection represents multiple projects
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total"`
}

// getAllProjects retrieves all projects, or only featured ones with ?featured=true
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			projects []*models.Project
			err      error
		)
		if featured, _ := strconv.ParseBool(r.URL.Query().Get("featured")); featured {
			projects, err = h.projectRepo.FindFeatured()
		} else {
			projects, err = h.projectRepo.FindAll()
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// getProject retrieves a specific project by ID
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project from a multipart form, uploading
// any attached gallery images first. No record is written when an
// upload fails.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, pending, existing, apiErr := h.parseProjectForm(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		builder := services.NewGalleryBuilder(h.storage, existing)
		if err := builder.AddFiles(pending...); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		gallery, err := builder.Commit(r.Context(), form.ImageURL)
		if err != nil {
			h.logger.Error().Err(err).Msg("Gallery commit failed, project not saved")
			h.responder.WriteError(w, err)
			return
		}

		project := models.Project{
			Title:        form.Title,
			Description:  form.Description,
			Detail:       form.Detail,
			Technologies: datatypes.NewJSONSlice(services.SplitTechnologies(form.Technologies)),
			ImageURL:     gallery.Thumbnail,
			Images:       datatypes.NewJSONSlice(gallery.Images),
			IsFeatured:   form.IsFeatured,
		}

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject updates an existing project. The final gallery is the
// retained `existing_images` followed by freshly uploaded files, in
// selection order; the thumbnail follows the first gallery entry.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		form, pending, existing, formErr := h.parseProjectForm(r)
		if formErr != nil {
			h.responder.WriteError(w, formErr)
			return
		}

		builder := services.NewGalleryBuilder(h.storage, existing)
		if err := builder.AddFiles(pending...); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		gallery, err := builder.Commit(r.Context(), form.ImageURL)
		if err != nil {
			h.logger.Error().Err(err).Msg("Gallery commit failed, project not updated")
			h.responder.WriteError(w, err)
			return
		}

		project.Title = form.Title
		project.Description = form.Description
		project.Detail = form.Detail
		project.Technologies = datatypes.NewJSONSlice(services.SplitTechnologies(form.Technologies))
		project.ImageURL = gallery.Thumbnail
		project.Images = datatypes.NewJSONSlice(gallery.Images)
		project.IsFeatured = form.IsFeatured

		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// parseProjectForm reads the multipart body: text fields, the retained
// existing image URLs, and the pending file uploads in selection order.
func (h projectHandler) parseProjectForm(r *http.Request) (projectForm, []services.PendingImage, []string, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse multipart form")
		return projectForm{}, nil, nil, errs.Malformed("project form")
	}

	form := projectForm{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		Detail:       r.FormValue("detail"),
		Technologies: r.FormValue("technologies"),
		ImageURL:     r.FormValue("image_url"),
	}
	form.IsFeatured, _ = strconv.ParseBool(r.FormValue("is_featured"))

	if err := form.Validate(); err != nil {
		return projectForm{}, nil, nil, validationError(err)
	}

	var existing []string
	if r.MultipartForm != nil {
		existing = r.MultipartForm.Value["existing_images"]
	}

	var pending []services.PendingImage
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			file, err := header.Open()
			if err != nil {
				h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to open uploaded file")
				return projectForm{}, nil, nil, errs.NewBadRequestError("unreadable file upload")
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to read uploaded file")
				return projectForm{}, nil, nil, errs.NewBadRequestError("unreadable file upload")
			}
			pending = append(pending, services.PendingImage{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}

	return form, pending, existing, nil
}

// parseIDParam extracts and parses a uuid URL parameter.
func parseIDParam(r *http.Request, name string) (uuid.UUID, *errs.ApiErr) {
	idStr := chi.URLParam(r, name)
	if idStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}
