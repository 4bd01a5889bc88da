package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/notesapp/notes-api/internal/application"
	"github.com/notesapp/notes-api/pkg/helpers"
	"github.com/notesapp/notes-api/pkg/response"
)

type AuthHandler struct {
	Service *application.AuthService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewAuthHandler(service *application.AuthService, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Service: service, Cookies: cookies, Logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Incomplete data.")
		return
	}
	u, err := h.Service.Signup(c.Request.Context(), req.Email, req.Name, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{
			"userId": u.ID,
			"name":   u.Name,
			"email":  u.Email,
		})
	case errors.Is(err, application.ErrIncompleteData):
		response.BadRequest(c, "Incomplete data.")
	case errors.Is(err, application.ErrEmailTaken):
		response.BadRequest(c, "User already exists.")
	default:
		response.ServerError(c, h.Logger, err)
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Incomplete data.")
		return
	}
	_, pair, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		h.Cookies.SetRefresh(c, pair.RefreshToken, pair.RefreshTokenExpiry)
		c.JSON(http.StatusOK, gin.H{"accessToken": pair.AccessToken})
	case errors.Is(err, application.ErrIncompleteData):
		response.BadRequest(c, "Incomplete data.")
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Unauthorized(c)
	default:
		response.ServerError(c, h.Logger, err)
	}
}

// Refresh GET /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookieName)
	if err != nil || refresh == "" {
		response.Unauthorized(c)
		return
	}
	access, err := h.Service.Refresh(c.Request.Context(), refresh)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"accessToken": access})
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Unauthorized(c)
	default:
		response.ServerError(c, h.Logger, err)
	}
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, err := c.Cookie(helpers.RefreshCookieName); err != nil {
		c.Status(http.StatusNoContent)
		return
	}
	h.Cookies.ClearRefresh(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}
