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
	"github.com/farhanrmdhni/portfolio-backend/models"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
}

func newSkillHandler(skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
	}
}

type skillForm struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    int    `json:"level"`
	Icon     string `json:"icon"`
	URL      string `json:"url"`
}

func (f skillForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&f.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&f.Level, validation.Min(0), validation.Max(100)),
		validation.Field(&f.Icon, validation.Required, validation.By(validIcon)),
		validation.Field(&f.URL, is.URL),
	)
}

func validIcon(value interface{}) error {
	icon, _ := value.(string)
	if !models.SkillIcon(icon).Valid() {
		return errs.ErrInvalidIcon
	}
	return nil
}

// SkillCollection represents multiple skills
type SkillCollection struct {
	Skills []*models.Skill `json:"skills"`
	Total  int             `json:"total"`
}

// getAllSkills retrieves all skills for the marquee and the admin list
func (h skillHandler) getAllSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}

		h.responder.WriteJSON(w, SkillCollection{
			Skills: skills,
			Total:  len(skills),
		})
	}
}

// createSkill creates a new skill
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, apiErr := h.decodeSkillForm(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		skill := models.Skill{
			Name:     form.Name,
			Category: form.Category,
			Level:    form.Level,
			Icon:     models.SkillIcon(form.Icon),
		}
		if form.URL != "" {
			skill.URL = &form.URL
		}

		if err := h.skillRepo.Add(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "skill", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, skill)
	}
}

// updateSkill updates an existing skill
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, idErr := parseIDParam(r, "skillID")
		if idErr != nil {
			h.responder.WriteError(w, idErr)
			return
		}

		skill, err := h.skillRepo.FindByID(skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skill", err))
			return
		}
		if skill == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("skill not found"))
			return
		}

		form, apiErr := h.decodeSkillForm(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		skill.Name = form.Name
		skill.Category = form.Category
		skill.Level = form.Level
		skill.Icon = models.SkillIcon(form.Icon)
		skill.URL = nil
		if form.URL != "" {
			skill.URL = &form.URL
		}

		if err := h.skillRepo.Update(skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "skill", err))
			return
		}

		h.responder.WriteJSON(w, skill)
	}
}

// deleteSkill deletes a skill by ID
func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, idErr := parseIDParam(r, "skillID")
		if idErr != nil {
			h.responder.WriteError(w, idErr)
			return
		}

		skill, err := h.skillRepo.FindByID(skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skill", err))
			return
		}
		if skill == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("skill not found"))
			return
		}

		if err := h.skillRepo.Delete(skillID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "skill", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "skill deleted successfully",
		})
	}
}

func (h skillHandler) decodeSkillForm(r *http.Request) (skillForm, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read request body")
		return skillForm{}, errs.NewBadRequestError("failed to read request body")
	}

	var form skillForm
	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&form); err != nil {
		h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode skill request body")
		return skillForm{}, errs.Malformed("skill payload")
	}

	if err := form.Validate(); err != nil {
		return skillForm{}, validationError(err)
	}
	return form, nil
}
