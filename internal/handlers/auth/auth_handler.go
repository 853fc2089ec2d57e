// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"insurance-service/internal/domain/auth"
	"insurance-service/internal/middleware"
	"insurance-service/internal/pkg/response"
	authUsecase "insurance-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *authUsecase.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *authUsecase.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles user login (public endpoint).
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	req.IPAddress = c.ClientIP()

	loginResp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.logger.Warn("login failed",
			zap.String("username", req.Username),
			zap.String("ip", req.IPAddress),
		)
		response.FromError(c, err)
		return
	}

	h.logger.Info("user logged in",
		zap.Int64("user_id", loginResp.UserID),
		zap.String("username", loginResp.Username),
	)

	response.JSON(c, http.StatusOK, loginResp)
}

// Refresh exchanges a refresh token for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

// Logout revokes the caller's refresh tokens (requires auth).
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		h.logger.Error("logout failed", zap.Int64("user_id", userID), zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "logged out"})
}

// ChangePassword changes the caller's password (requires auth).
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "password changed"})
}

// Me echoes the authenticated identity (requires auth).
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	username, _ := middleware.GetUsername(c)
	role, _ := middleware.GetRole(c)

	response.JSON(c, http.StatusOK, auth.MeResponse{
		UserID:   userID,
		Username: username,
		Role:     role,
	})
}
