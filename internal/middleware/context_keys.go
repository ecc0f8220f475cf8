package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the request context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		// This should not happen if the auth middleware sets it correctly
		return "", false
	}

	return userID, true
}
