package handler

import (
	"errors"
	"net/http"

	"reviewhub/internal/dto"
	"reviewhub/internal/service"
	"reviewhub/internal/validator"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a username/email pair and emails a confirmation code.
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validator.ValidateUsername(req.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.authService.Signup(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrSignupConflict) {
			// structured code instead of the raw constraint error
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
				"code":  "user_create_failed",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	// both the fresh-signup and already-registered paths echo the payload
	c.JSON(http.StatusOK, req)
}

// Token exchanges a confirmation code for an access token.
// POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, err := h.authService.IssueToken(req.Username, req.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidConfirmationCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: accessToken})
}
