package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/dompetku/dompetku_backend/internal/platform/config"
	"github.com/dompetku/dompetku_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.Token, cfg)

	// Define rate limit: 5 requests per minute
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", middleware.AuthMiddleware(cfg.JWTSecret), h.Logout)
		auth.POST("/forgot-password", limitMiddleware, h.ForgotPassword)
		auth.POST("/reset-password", limitMiddleware, h.ResetPassword)
	}

	registerGoogleOAuthRoutes(auth, services)
}

// issueTokens generates the access token and rotates the refresh token,
// storing its hash and setting the HTTPOnly cookie.
func (h *AuthHandler) issueTokens(c *gin.Context, userID string) (string, error) {
	ctx := c.Request.Context()

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return "", err
	}

	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return "", err
	}
	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		return "", err
	}

	// Cookie value carries the user ID so the refresh endpoint can look up
	// the stored hash without an access token.
	maxAge := int(time.Until(refreshExpiry).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, user.UserID+":"+refreshToken,
		maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)

	return accessToken, nil
}

// Login godoc
// @Summary User login
// @Description Authenticates a user by email and password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			// Unknown email and wrong password are indistinguishable here.
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		if errors.Is(err, apperrors.ErrTimeout) {
			logger.Error("Login credential check timed out", slog.String("error", err.Error()))
			c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "Login timed out, please try again"})
			return
		}
		logger.Error("Failed to authenticate user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in"})
		return
	}

	accessToken, err := h.issueTokens(c, user.UserID)
	if err != nil {
		logger.Error("Failed to issue tokens", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken, User: dto.ToUserResponse(user)})
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (email already registered)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
			return
		}
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// Refresh godoc
// @Summary Refresh access token
// @Description Rotates the refresh token cookie and returns a fresh JWT access token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token missing"})
		return
	}
	userID, rawToken, found := strings.Cut(cookie, ":")
	if !found || userID == "" || rawToken == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), userID, rawToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrRefreshTokenExpired) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token expired, please log in again"})
			return
		}
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
			return
		}
		logger.Error("Failed to validate refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh token"})
		return
	}

	accessToken, err := h.issueTokens(c, user.UserID)
	if err != nil {
		logger.Error("Failed to issue tokens on refresh", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh token"})
		return
	}

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: accessToken})
}

// Logout godoc
// @Summary Log out
// @Description Invalidates the stored refresh token and clears the cookie.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
		logger.Error("Failed to clear refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log out"})
		return
	}

	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
	c.Status(http.StatusNoContent)
}

// ForgotPassword godoc
// @Summary Start password reset
// @Description Issues a password reset token for the given email. The response is identical whether or not the email exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgot body dto.ForgotPasswordRequest true "Account email"
// @Success 202 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	token, err := h.userService.InitiatePasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		logger.Error("Failed to initiate password reset", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start password reset"})
		return
	}

	// Token delivery goes out by email. The reset link is logged outside
	// production so the flow can be exercised without a mail provider.
	if !h.cfg.IsProduction {
		logger.Info("Password reset token issued", slog.String("reset_url", h.cfg.FrontendBaseURL+"/reset-password?token="+token))
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "If that email is registered, a reset link has been sent"})
}

// ResetPassword godoc
// @Summary Complete password reset
// @Description Sets a new password using a previously issued reset token.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid or expired token"
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired reset token"})
			return
		}
		logger.Error("Failed to reset password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reset password"})
		return
	}

	c.Status(http.StatusNoContent)
}
