package middleware

import (
	"chaos_backend/internal/config"
	"chaos_backend/internal/repository"
	"chaos_backend/internal/util"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// AdminMiddleware restricts a route to platform admins.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !user.IsAdmin {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OrgMemberMiddleware restricts a route (with an :orgId param) to members of
// that organisation. Platform admins pass.
func OrgMemberMiddleware(orgRepo *repository.OrganisationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if user.IsAdmin {
			c.Next()
			return
		}

		orgID, err := strconv.Atoi(c.Param("orgId"))
		if err != nil {
			util.BadRequest(c, "invalid organisation id")
			c.Abort()
			return
		}

		if _, err := orgRepo.FindMember(uint(orgID), user.UserID); err != nil {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
