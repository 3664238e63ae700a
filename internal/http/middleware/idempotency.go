package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey carries the client's idempotency key on unsafe requests.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotencyReplayed is set to "true" on responses served from a
// previously recorded result.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

const (
	ctxKeyIdemKey      = "idem.key"
	ctxKeyIdemScope    = "idem.scope"
	ctxKeyIdemResource = "idem.resource"
	ctxKeyRateBypass   = "rate.bypass"
)

var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// IdempotencyLookup returns the resource id recorded for (userID, scope, key)
// if the record is still valid at now. Errors are logged and treated as a
// miss.
type IdempotencyLookup func(ctx context.Context, userID, scope, key string, now time.Time) (resourceID string, found bool, err error)

// ScopeFunc names the operation a key applies to.
type ScopeFunc func(*gin.Context) string

// DefaultScope is "<METHOD> <route>" plus ":<id>" when the route has an :id
// parameter, e.g. "POST /api/v1/jobs/:id/feedback:42".
func DefaultScope(c *gin.Context) string {
	s := c.Request.Method + " " + routeOf(c)
	if id := c.Param("id"); id != "" {
		s += ":" + id
	}
	return s
}

// IdempotencyOptions configures IdempotencyValidator.
type IdempotencyOptions struct {
	// MaxLen caps the key length; <= 0 means 200.
	MaxLen int
	// Pattern restricts key characters; nil means ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
	// Scope names the operation; nil means DefaultScope.
	Scope ScopeFunc
}

// IdempotencyValidator validates the Idempotency-Key header and, when a
// lookup is given, checks for a previous result. Without the header it is a
// no-op. An invalid key gets 400. A hit stores the recorded resource id
// (ReplayResourceID) and exempts the request from rate limiting; the handler
// decides how to serve the replay.
//
// It must run after RequireAuth so the lookup is scoped to the caller.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}
	scopeFn := opts.Scope
	if scopeFn == nil {
		scopeFn = DefaultScope
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			v, _ := c.Get(requestIDKey)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": asString(v),
				"code":       "bad_idempotency_key",
				"message":    "invalid Idempotency-Key",
			})
			return
		}

		scope := scopeFn(c)
		c.Set(ctxKeyIdemKey, key)
		c.Set(ctxKeyIdemScope, scope)

		if lookup != nil {
			rid, found, err := lookup(c.Request.Context(), UserID(c), scope, key, time.Now().UTC())
			switch {
			case err != nil:
				LoggerFrom(c).Warn().Err(err).Str("scope", scope).Msg("idempotency lookup failed")
			case found:
				c.Set(ctxKeyIdemResource, rid)
				c.Set(ctxKeyRateBypass, true)
			}
		}
		c.Next()
	}
}

// GetIdempotencyKey returns the validated key and its scope.
func GetIdempotencyKey(c *gin.Context) (key, scope string, ok bool) {
	k, _ := c.Get(ctxKeyIdemKey)
	s, _ := c.Get(ctxKeyIdemScope)
	key, scope = asString(k), asString(s)
	return key, scope, key != ""
}

// ReplayResourceID returns the resource recorded for this request's key.
func ReplayResourceID(c *gin.Context) (string, bool) {
	v, _ := c.Get(ctxKeyIdemResource)
	id := asString(v)
	return id, id != ""
}

// IsReplay reports whether the request repeats a recorded operation.
func IsReplay(c *gin.Context) bool {
	_, ok := ReplayResourceID(c)
	return ok
}
