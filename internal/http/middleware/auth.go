package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenAuthenticator validates a bearer token and returns the user id it
// was issued to.
type TokenAuthenticator interface {
	Authenticate(token string) (string, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer"
// token with 401 and the standard error envelope. On success the user id is
// stored under UserIDKey and added to the request-scoped logger.
func RequireAuth(a TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "missing bearer token")
			return
		}
		uid, err := a.Authenticate(token)
		if err != nil || uid == "" {
			LoggerFrom(c).Debug().Err(err).Msg("token rejected")
			unauthorized(c, "invalid or expired token")
			return
		}
		setUser(c, uid)
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" outside RequireAuth.
func UserID(c *gin.Context) string {
	v, _ := c.Get(UserIDKey)
	return asString(v)
}

func setUser(c *gin.Context, uid string) {
	c.Set(UserIDKey, uid)
	l := LoggerFrom(c).With().Str("user_id", uid).Logger()
	attachLogger(c, &l)
}

func bearerToken(h string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *gin.Context, msg string) {
	v, _ := c.Get(requestIDKey)
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": asString(v),
		"code":       "unauthorized",
		"message":    msg,
	})
}
