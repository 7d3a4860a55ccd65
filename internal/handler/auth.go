package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/model"
	"github.com/taskhub/backend/internal/service"
)

const bearerTokenType = "Bearer"

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register godoc
// @Summary Register a new account
// @Description Creates the account and issues a bearer token immediately.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Username, email and password"
// @Success 201 {object} model.AuthResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, categoryInvalidRequest, "invalid request body")
		return
	}

	user, token, expiresIn, err := h.svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.AuthResponse{
		Token:     token,
		TokenType: bearerTokenType,
		ExpiresIn: expiresIn,
		Account:   user.Summary(),
	})
}

// Login godoc
// @Summary Login
// @Description Identifier may be a username or an email address.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Identifier and password"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, categoryInvalidRequest, "invalid request body")
		return
	}

	user, token, expiresIn, err := h.svc.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.AuthResponse{
		Token:     token,
		TokenType: bearerTokenType,
		ExpiresIn: expiresIn,
		Account:   user.Summary(),
	})
}

// Me godoc
// @Summary Get current account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AccountSummary
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		writeError(c, http.StatusUnauthorized, categoryUnauthorized, "invalid or expired token")
		return
	}
	c.JSON(http.StatusOK, model.AccountSummary{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// ChangePassword godoc
// @Summary Change password
// @Description Requires the current password. Outstanding tokens stay valid
// @Description until their own expiry.
// @Tags auth
// @Accept json
// @Security BearerAuth
// @Param request body model.ChangePasswordRequest true "Current and new password"
// @Success 204
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		writeError(c, http.StatusUnauthorized, categoryUnauthorized, "invalid or expired token")
		return
	}

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, categoryInvalidRequest, "invalid request body")
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAccount godoc
// @Summary Delete the current account
// @Description Owned projects and tasks are removed with it.
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/account [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		writeError(c, http.StatusUnauthorized, categoryUnauthorized, "invalid or expired token")
		return
	}

	if err := h.svc.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
