package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RedactOptions configures RedactingLogger.
//
// MaskHeaders lists extra header names (case-insensitive) whose values are
// replaced with "[REDACTED]", on top of Authorization, Cookie and Set-Cookie.
// MaskParams lists extra query parameter names whose values are masked, on
// top of password, token and secret.
type RedactOptions struct {
	MaskHeaders []string
	MaskParams  []string
}

var (
	// UUIDs go first so the phone pattern cannot eat their digit groups.
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

var defaultMaskedHeaders = []string{"authorization", "cookie", "set-cookie"}
var defaultMaskedParams = []string{"password", "token", "secret"}

// RedactingLogger is the access logger used in production. It never logs
// bodies, masks credentials in headers and query strings, and scrubs emails,
// phone numbers and UUIDs from the remaining header values and query. Like
// Logger it attaches a request-scoped logger for LoggerFrom and zerolog.Ctx.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := make(map[string]struct{}, len(defaultMaskedHeaders)+len(opts.MaskHeaders))
	for _, h := range append(append([]string{}, defaultMaskedHeaders...), opts.MaskHeaders...) {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			maskHeaders[h] = struct{}{}
		}
	}
	params := make([]string, 0, len(defaultMaskedParams)+len(opts.MaskParams))
	for _, p := range append(append([]string{}, defaultMaskedParams...), opts.MaskParams...) {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, regexp.QuoteMeta(p))
		}
	}
	paramRE := regexp.MustCompile(`(?i)(^|&)(` + strings.Join(params, "|") + `)=[^&]*`)

	scrub := func(s string) string {
		if s == "" {
			return s
		}
		s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
		s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
		return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := routeOf(c)
		query := scrub(paramRE.ReplaceAllString(c.Request.URL.RawQuery, "${1}${2}=[REDACTED]"))
		query = truncate(query, maxQueryLogLength)

		headers := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				headers[k] = "[REDACTED]"
				continue
			}
			headers[k] = scrub(strings.Join(vv, ", "))
		}

		rid, _ := c.Get(requestIDKey)
		reqID := asString(rid)
		if reqID == "" {
			reqID = c.GetHeader(requestIDHeader)
		}
		scoped := log.With().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Logger()
		attachLogger(c, &scoped)

		c.Next()

		status := c.Writer.Status()
		ev := LoggerFrom(c).Info()
		switch {
		case status >= 500:
			ev = LoggerFrom(c).Error()
		case status >= 400:
			ev = LoggerFrom(c).Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("query", query).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Msg("http_request")
	}
}
