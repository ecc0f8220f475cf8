package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

// GoogleOAuthHandler handles Google OAuth related requests.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
	}
}

// ExchangeCodeRequest defines the expected JSON body for the /google/exchange-code endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ExchangeCodeResponse defines the successful response for the /google/exchange-code endpoint.
type ExchangeCodeResponse struct {
	Token string `json:"token"`
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuth, services.User, services.Token)
	googleRoutes := rg.Group("/google")
	{
		googleRoutes.GET("/login", h.LoginGoogle)
		googleRoutes.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}

// LoginGoogle returns the Google consent URL with a freshly generated CSRF
// state, which is also set as a short-lived cookie for the callback check.
// @Summary Get Google login URL
// @Description Returns the Google OAuth consent URL for the frontend to redirect to.
// @Tags oauth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start Google login"})
		return
	}

	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"url": h.googleOAuthService.GetGoogleLoginURL(ctx, state)})
}

// ExchangeCodeGoogle handles the POST request from the frontend containing the
// authorization code from Google. It exchanges the code for Google tokens,
// validates the ID token, resolves the local user, and returns an
// application JWT.
// @Summary Exchange authorization code for access token
// @Description Exchange authorization code for access token
// @Tags oauth
// @Accept  json
// @Produce  json
// @Param   code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} ExchangeCodeResponse
// @Failure 400 {object} map[string]string "Invalid authorization code"
// @Failure 500 {object} map[string]string "Failed to exchange authorization code for access token"
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for exchange code request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired authorization code"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to communicate with Google"})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ID token from Google"})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || payload.Subject == "" {
		logger.Error("Essential claims missing from Google ID token payload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Essential user information missing from Google token"})
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{
		ID:            payload.Subject,
		Email:         email,
		VerifiedEmail: emailVerified,
		Name:          name,
		Picture:       picture,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to resolve Google user", slog.String("error", err.Error()), slog.String("google_user_id", payload.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process user authentication"})
		return
	}
	logger.Info("User signed in via Google OAuth", slog.String("user_id", user.UserID))

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate application access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": ExchangeCodeResponse{
			Token: accessToken,
		},
	})
}
