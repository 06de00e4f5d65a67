package interfaces

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cv-align/domain"
	"cv-align/infrastructure"
)

const loginFailed = "Login failed. Check your credentials."

func (h *HTTPHandler) LoginForm(c *gin.Context) {
	h.render(c, "login.html", gin.H{"Title": "Login to CvAlign"})
}

// Login exchanges the submitted credentials for an access token and stores it.
func (h *HTTPHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	fail := func(msg string) {
		h.render(c, "login.html", gin.H{
			"Title":    "Login to CvAlign",
			"Username": username,
			"Messages": messages(msg),
		})
	}

	token, err := h.API.Login(c.Request.Context(), username, password)
	if err != nil {
		slog.Info("login rejected", slog.String("username", username), slog.Any("error", err))
		fail(loginFailed)
		return
	}

	sess, err := domain.DecodeCredential(token)
	if err != nil {
		slog.Warn("login returned an unusable token", slog.String("username", username), slog.Any("error", err))
		fail(loginFailed)
		return
	}

	if err := h.Sessions.Save(c.Writer, c.Request, token); err != nil {
		slog.Error("failed to save session", slog.Any("error", err))
		fail("Login failed. Please try again.")
		return
	}

	h.publish(c, domain.NewActivity(domain.ActivityLogin, sess))
	c.Redirect(http.StatusSeeOther, domain.AfterLogin(sess).Path())
}

func (h *HTTPHandler) RegisterForm(c *gin.Context) {
	h.render(c, "register.html", gin.H{
		"Title": "Register for CvAlign",
		"Roles": domain.Roles,
		"Role":  domain.RoleJobSeeker,
	})
}

// Register creates an account and points the user back to the login page.
func (h *HTTPHandler) Register(c *gin.Context) {
	in := infrastructure.RegisterRequest{
		Username: strings.TrimSpace(c.PostForm("username")),
		Password: c.PostForm("password"),
		Role:     domain.Role(c.DefaultPostForm("role", string(domain.RoleJobSeeker))),
	}

	data := gin.H{
		"Title": "Register for CvAlign",
		"Roles": domain.Roles,
		"Role":  in.Role,
	}

	if _, err := h.API.Register(c.Request.Context(), in); err != nil {
		slog.Info("registration rejected", slog.String("username", in.Username), slog.Any("error", err))
		data["Username"] = in.Username
		data["Messages"] = messages(infrastructure.DetailOr(err, "Registration failed."))
		h.render(c, "register.html", data)
		return
	}

	h.publish(c, domain.NewActivity(domain.ActivityRegistered, domain.Session{Username: in.Username, Role: in.Role}))

	data["Role"] = domain.RoleJobSeeker
	data["RedirectToLogin"] = true
	data["Messages"] = messages("Registration successful! Redirecting to login...")
	h.render(c, "register.html", data)
}

// Logout forgets the stored credential.
func (h *HTTPHandler) Logout(c *gin.Context) {
	sess := currentSession(c)
	if err := h.Sessions.Clear(c.Writer, c.Request); err != nil {
		slog.Error("failed to clear session", slog.Any("error", err))
	}
	if sess.Authenticated() {
		h.publish(c, domain.NewActivity(domain.ActivityLogout, sess))
	}
	c.Set(sessionKey, domain.Session{})
	c.Redirect(http.StatusSeeOther, domain.ViewLogin.Path())
}
