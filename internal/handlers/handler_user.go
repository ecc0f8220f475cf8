package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes. Every route operates
// on the authenticated user; there is no cross-user access.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.PUT("/me", h.updateMe)
		users.PUT("/me/password", h.updatePassword)
		users.DELETE("/me", h.deleteMe)
	}
}

// getMe godoc
// @Summary Get the logged-in user
// @Description Retrieves the profile of the authenticated user
// @Tags users
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to retrieve user"
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("User not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			logger.Error("Failed to get user from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateMe godoc
// @Summary Update the logged-in user
// @Description Updates the authenticated user's profile (name, avatar)
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.UpdateUserRequest true "Profile fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to update user"
// @Security BearerAuth
// @Router /users/me [put]
func (h *userHandler) updateMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to update user")

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("User not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			logger.Error("Failed to update user in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	logger.Info("User updated successfully")
	c.JSON(http.StatusOK, dto.ToUserResponse(updatedUser))
}

// updatePassword godoc
// @Summary Change password
// @Description Changes the authenticated user's password after verifying the current one
// @Tags users
// @Accept  json
// @Produce  json
// @Param   passwords body dto.UpdatePasswordRequest true "Current and new password"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Current password incorrect"
// @Failure 500 {object} map[string]string "Failed to update password"
// @Security BearerAuth
// @Router /users/me/password [put]
func (h *userHandler) updatePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePassword", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.userService.UpdatePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Warn("Current password incorrect for password change")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		} else {
			logger.Error("Failed to update password in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		}
		return
	}

	logger.Info("Password updated successfully")
	c.Status(http.StatusNoContent)
}

// deleteMe godoc
// @Summary Delete the logged-in user
// @Description Marks the authenticated user as deleted (soft delete)
// @Tags users
// @Produce  json
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to delete user"
// @Security BearerAuth
// @Router /users/me [delete]
func (h *userHandler) deleteMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to delete user")

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("User not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			logger.Error("Failed to delete user in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		}
		return
	}

	logger.Info("User deleted successfully")
	c.Status(http.StatusNoContent)
}
