package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/application"
	"github.com/devlinkhq/devlink/internal/domain/entity"
	"github.com/devlinkhq/devlink/internal/interface/middleware"
	"github.com/devlinkhq/devlink/pkg/helpers"
	"github.com/devlinkhq/devlink/pkg/response"
	"github.com/devlinkhq/devlink/pkg/validation"
)

// identityFromCtx rebuilds the acting identity the Auth middleware put
// into the request context.
func identityFromCtx(c *gin.Context) application.Identity {
	return application.Identity{
		UserID:    c.GetString(middleware.CtxUserIDKey),
		Name:      c.GetString(middleware.CtxUserNameKey),
		AvatarURL: c.GetString(middleware.CtxUserAvatarKey),
	}
}

type UsersHandler struct {
	Svc     *application.AccountService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUsersHandler(svc *application.AccountService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UsersHandler {
	return &UsersHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userView(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt,
	}
}

// Register POST /api/users/register
func (h *UsersHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailExists) {
			response.Error(c, http.StatusBadRequest, "registration failed", gin.H{"email": "email already exists"})
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("register failed")
		}
		response.Error(c, http.StatusInternalServerError, "registration failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, userView(u), "registered", nil)
}

// Login POST /api/users/login
func (h *UsersHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "login failed", gin.H{"email": "user not found"})
		case errors.Is(err, application.ErrPasswordIncorrect):
			response.Error(c, http.StatusBadRequest, "login failed", gin.H{"password": "password incorrect"})
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("login failed")
			}
			response.Error(c, http.StatusInternalServerError, "login failed", nil)
		}
		return
	}

	h.Cookies.SetToken(c, token, exp)
	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user":  userView(u),
	}, "login successful", gin.H{"expires_at": exp})
}

// Logout POST /api/users/logout
func (h *UsersHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Current GET /api/users/current
func (h *UsersHandler) Current(c *gin.Context) {
	u, err := h.Svc.Current(c.Request.Context(), identityFromCtx(c))
	if err != nil {
		response.Error(c, http.StatusNotFound, "user not found", gin.H{"user": "user not found"})
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	}, "current user", nil)
}

// UploadAvatar POST /api/users/avatar (multipart field "avatar")
func (h *UsersHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", gin.H{"avatar": "avatar file is required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", gin.H{"avatar": "cannot read avatar file"})
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), identityFromCtx(c), f, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("avatar upload failed")
		}
		response.Error(c, http.StatusInternalServerError, "avatar upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar updated", nil)
}

// Search GET /api/users/search?q=&size=
func (h *UsersHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	res, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "search results", gin.H{"count": len(res)})
}
