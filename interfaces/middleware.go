package interfaces

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-align/domain"
)

const sessionKey = "session"

// Authenticate decodes the stored credential into the request's session.
// A credential that does not decode is removed from the store.
func (h *HTTPHandler) Authenticate(c *gin.Context) {
	var sess domain.Session

	cred, err := h.Sessions.Load(c.Request)
	if err != nil {
		slog.Error("failed to load session", slog.Any("error", err))
	}

	if cred != "" {
		sess, err = domain.DecodeCredential(cred)
		if err != nil {
			slog.Info("dropping stored credential", slog.Any("error", err))
			if err := h.Sessions.Clear(c.Writer, c.Request); err != nil {
				slog.Error("failed to clear session", slog.Any("error", err))
			}
		}
	}

	c.Set(sessionKey, sess)
	c.Next()
}

// RequireView redirects requests the route guard does not allow for v.
func RequireView(v domain.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, to := domain.Authorize(v, currentSession(c)); !ok {
			c.Redirect(http.StatusSeeOther, to.Path())
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) domain.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(domain.Session); ok {
			return s
		}
	}
	return domain.Session{}
}
