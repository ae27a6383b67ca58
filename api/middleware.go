package api

import (
	"net/http"
	"slices"
	"strings"
	"venuebook/db"
	"venuebook/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Keys under which the verified identity is stored in the request context
const (
	ContextAccountID = "account_id"
	ContextRole      = "role"
)

// CORS middleware
func (server *Server) CORSMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		// Handle preflight and return immediately so Gin doesn't respond 404 for OPTIONS
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusOK)
			return
		}

		ctx.Next()
	}
}

// Authorize verifies the bearer token and requires one of the given roles
func (server *Server) Authorize(roles ...db.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{"Missing or malformed Authorization header"})
			return
		}

		claims, err := server.jwtService.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			util.LOGGER.Warn("token verification failed", "error", err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{"Invalid or expired token"})
			return
		}

		if !slices.Contains(roles, claims.Role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{"Insufficient permissions"})
			return
		}

		ctx.Set(ContextAccountID, claims.ID)
		ctx.Set(ContextRole, claims.Role)
		ctx.Next()
	}
}

// accountID reads the verified account ID set by Authorize
func accountID(ctx *gin.Context) uuid.UUID {
	return ctx.MustGet(ContextAccountID).(uuid.UUID)
}

// optionalUserID extracts the user identity from the bearer token when one is
// present and valid. Public catalog endpoints use it: anonymous callers get
// uuid.Nil, which matches no bookings in the visibility rule.
func (server *Server) optionalUserID(ctx *gin.Context) uuid.UUID {
	header := ctx.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return uuid.Nil
	}

	claims, err := server.jwtService.VerifyToken(strings.TrimSpace(token))
	if err != nil || claims.Role != db.RoleUser {
		return uuid.Nil
	}
	return claims.ID
}
