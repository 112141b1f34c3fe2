package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated caller's account ID.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated account ID from the Gin
// context. It returns the ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
