package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"pkt.systems/pslog"

	"github.com/fflap/portfolio/internal/logx"
	"github.com/fflap/portfolio/internal/visitor"
)

// VisitorCookie holds the id that scopes preferences and console state.
const VisitorCookie = "visitor_id"

const visitorCookieMaxAge = 365 * 24 * 60 * 60

const visitorKey = "visitor"

func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		pslog.Ctx(c.Request.Context()).Error("http panic", "path", c.Request.URL.Path, "err", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}
		logger := pslog.Ctx(c.Request.Context()).With("remote", c.ClientIP())
		logger.Info("http request", "method", c.Request.Method, "path", path, "status", c.Writer.Status(), "bytes", c.Writer.Size(), "duration_ms", time.Since(start).Milliseconds())
		logger.Debug("http request details", "ua", c.Request.UserAgent())
	}
}

// visitorCookie loads the visitor named by the cookie, issuing a new id
// when the cookie is missing or malformed.
func (s *Server) visitorCookie() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(VisitorCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookie, id, visitorCookieMaxAge, "/", "", false, true)
		}
		ctx := logx.ContextWithVisitor(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Set(visitorKey, s.registry.Get(ctx, id))
		c.Next()
	}
}

func currentVisitor(c *gin.Context) *visitor.Visitor {
	return c.MustGet(visitorKey).(*visitor.Visitor)
}
