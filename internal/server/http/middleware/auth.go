package middleware

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/logging"
	"github.com/dmitrijs2005/pmdadmin/internal/server/auth"
	"github.com/dmitrijs2005/pmdadmin/internal/server/http/response"
	"github.com/gin-gonic/gin"
)

const adminEmailKey = "adminEmail"

type AuthMiddleware struct {
	log    logging.Logger
	secret []byte
}

// NewAuthMiddleware verifies HS256 bearer tokens signed with secret. An
// empty secret disables verification.
func NewAuthMiddleware(log logging.Logger, secret string) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "auth"), secret: []byte(secret)}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(am.secret) == 0 {
			c.Next()
			return
		}
		token, ok := auth.BearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
			return
		}
		email, err := auth.GetEmailFromToken(token, am.secret)
		if err != nil {
			am.log.Debug(c.Request.Context(), "token rejected", "error", err)
			msg := "invalid token"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "token expired"
			}
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New(msg))
			return
		}
		c.Set(adminEmailKey, email)
		c.Next()
	}
}

// AdminEmail is the email of the authenticated admin, empty when auth is
// disabled.
func AdminEmail(c *gin.Context) string {
	return c.GetString(adminEmailKey)
}
