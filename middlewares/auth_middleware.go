package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ardiansyahdev/mechanic-shop/utils"
	"github.com/gin-gonic/gin"
)

const (
	ContextSubjectID = "subject_id"
	ContextRole      = "role"
)

// AuthMiddleware requires a valid bearer token and stores the subject id
// and role claim in the request context. It never touches the store, so a
// token can outlive its principal; handlers that load the principal fail
// closed with 404 in that case.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token is missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid authorization header format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		subjectID, err := claims.SubjectID()
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		c.Set(ContextSubjectID, subjectID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// MechanicOnly rejects tokens without the mechanic role claim. Must run
// after AuthMiddleware.
func MechanicOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists || role != utils.RoleMechanic {
			utils.RespondError(c, http.StatusForbidden, errors.New("mechanic access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// SubjectID returns the authenticated principal id set by AuthMiddleware.
func SubjectID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextSubjectID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Role returns the role claim set by AuthMiddleware; customer tokens
// carry the empty role.
func Role(c *gin.Context) string {
	v, exists := c.Get(ContextRole)
	if !exists {
		return ""
	}
	role, _ := v.(string)
	return role
}
