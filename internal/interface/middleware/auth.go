package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/notesapp/notes-api/internal/domain/repository"
	"github.com/notesapp/notes-api/pkg/helpers"
	"github.com/notesapp/notes-api/pkg/response"
)

// CtxUserIDKey is where the resolved caller id lives in the Gin context.
const CtxUserIDKey = "userID"

// Auth resolves the caller from the Authorization bearer header. The
// token must validate and the referenced user must still exist in the
// credential store; every failure is a plain 401 with no detail about
// which check tripped.
func Auth(users repository.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		// The password hash stays here; handlers only ever see the id.
		if _, err := users.GetByID(c.Request.Context(), claims.UserID); err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
