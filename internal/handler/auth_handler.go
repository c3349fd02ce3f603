package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/response"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Authenticate a staff member
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "credentials"
// @Success 200 {object} response.Envelope{data=models.LoginResponse}
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Refresh godoc
// @Summary Rotate a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body models.RefreshTokenRequest true "refresh token"
// @Success 200 {object} response.Envelope{data=models.RefreshTokenResponse}
// @Failure 401 {object} response.Envelope
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()

	result, err := h.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Logout godoc
// @Summary Revoke the caller's refresh tokens
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), callerID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Me godoc
// @Summary Return the authenticated profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope{data=models.UserInfo}
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.auth.Me(c.Request.Context(), callerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Param payload body models.ChangePasswordRequest true "passwords"
// @Success 204
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), callerID(c), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
