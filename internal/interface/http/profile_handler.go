package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/application"
	"github.com/devlinkhq/devlink/pkg/response"
	"github.com/devlinkhq/devlink/pkg/validation"
)

type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

type socialRequest struct {
	Youtube   *string `json:"youtube" binding:"omitempty,url"`
	Twitter   *string `json:"twitter" binding:"omitempty,url"`
	Facebook  *string `json:"facebook" binding:"omitempty,url"`
	Linkedin  *string `json:"linkedin" binding:"omitempty,url"`
	Instagram *string `json:"instagram" binding:"omitempty,url"`
}

type upsertProfileRequest struct {
	Handle         *string       `json:"handle" binding:"omitempty,handle"`
	Company        *string       `json:"company"`
	Website        *string       `json:"website" binding:"omitempty,url"`
	Location       *string       `json:"location"`
	Bio            *string       `json:"bio"`
	Status         *string       `json:"status"`
	GithubUsername *string       `json:"github_username"`
	Skills         *string       `json:"skills"`
	Social         socialRequest `json:"social"`
}

type experienceRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from" binding:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type educationRequest struct {
	School       string     `json:"school" binding:"required"`
	Degree       string     `json:"degree" binding:"required"`
	FieldOfStudy string     `json:"field_of_study" binding:"required"`
	From         time.Time  `json:"from" binding:"required"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// GetOwn GET /api/profile
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	p, err := h.Svc.GetOwn(c.Request.Context(), identityFromCtx(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}

// GetAll GET /api/profile/all
func (h *ProfileHandler) GetAll(c *gin.Context) {
	profiles, err := h.Svc.GetAll(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profiles, "profiles", gin.H{"count": len(profiles)})
}

// GetByHandle GET /api/profile/handle/:handle
func (h *ProfileHandler) GetByHandle(c *gin.Context) {
	p, err := h.Svc.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}

// GetByUser GET /api/profile/user/:user_id
func (h *ProfileHandler) GetByUser(c *gin.Context) {
	p, err := h.Svc.GetByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}

// Upsert POST /api/profile
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.UpsertProfileInput{
		Handle:         req.Handle,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Social: application.SocialInput{
			Youtube:   req.Social.Youtube,
			Twitter:   req.Social.Twitter,
			Facebook:  req.Social.Facebook,
			Linkedin:  req.Social.Linkedin,
			Instagram: req.Social.Instagram,
		},
	}

	p, err := h.Svc.Upsert(c.Request.Context(), identityFromCtx(c), in)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile saved", nil)
}

// AddExperience POST /api/profile/experience
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.AddExperience(c.Request.Context(), identityFromCtx(c), application.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "experience added", nil)
}

// RemoveExperience DELETE /api/profile/experience/:exp_id
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	p, err := h.Svc.RemoveExperience(c.Request.Context(), identityFromCtx(c), c.Param("exp_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "experience removed", nil)
}

// AddEducation POST /api/profile/education
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.AddEducation(c.Request.Context(), identityFromCtx(c), application.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "education added", nil)
}

// RemoveEducation DELETE /api/profile/education/:edu_id
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	p, err := h.Svc.RemoveEducation(c.Request.Context(), identityFromCtx(c), c.Param("edu_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "education removed", nil)
}

// DeleteAccount DELETE /api/profile — removes profile and user together.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	if err := h.Svc.DeleteAccount(c.Request.Context(), identityFromCtx(c)); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "account deleted", nil)
}

// Search GET /api/profile/search?q=&size=
func (h *ProfileHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	res, err := h.Svc.SearchProfiles(c.Request.Context(), q, size)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "search results", gin.H{"count": len(res)})
}

func (h *ProfileHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrProfileNotFound):
		response.Error(c, http.StatusNotFound, "profile not found", gin.H{"profile": "there is no profile for this user"})
	case errors.Is(err, application.ErrHandleExists):
		response.Error(c, http.StatusBadRequest, "profile save failed", gin.H{"handle": "that handle already exists"})
	case errors.Is(err, application.ErrHandleRequired):
		response.Error(c, http.StatusBadRequest, "profile save failed", gin.H{"handle": "handle is required"})
	case errors.Is(err, application.ErrExperienceNotFound):
		response.Error(c, http.StatusNotFound, "experience not found", gin.H{"experience": "no experience entry with that id"})
	case errors.Is(err, application.ErrEducationNotFound):
		response.Error(c, http.StatusNotFound, "education not found", gin.H{"education": "no education entry with that id"})
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "user not found", gin.H{"user": "user not found"})
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("profile operation failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}
