package interfaces

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-align/domain"
	"cv-align/infrastructure"
)

// CvAlignAPI is the part of the CvAlign API the web front-end uses.
type CvAlignAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, in infrastructure.RegisterRequest) (string, error)
	ListJobDescriptions(ctx context.Context, token string) ([]domain.JobDescription, error)
	CreateJobDescription(ctx context.Context, token string, in domain.JobDescriptionInput) (string, error)
	ListCVs(ctx context.Context, token string) ([]domain.CvSubmission, error)
	ListEvaluations(ctx context.Context, token string) ([]domain.Evaluation, error)
	EvaluateCV(ctx context.Context, token, username string, jobID domain.JobID) (domain.EvaluationResult, error)
	UploadCV(ctx context.Context, token, filename string, file io.Reader, jobID domain.JobID) (domain.UploadResult, error)
}

type HTTPHandler struct {
	API             CvAlignAPI
	Sessions        infrastructure.SessionStore
	Activity        infrastructure.ActivityPublisher
	ReferenceSkills []string
}

func NewHTTPHandler(router *gin.Engine, h *HTTPHandler) {
	if h.Activity == nil {
		h.Activity = infrastructure.NopPublisher{}
	}
	if h.ReferenceSkills == nil {
		h.ReferenceSkills = domain.DefaultReferenceSkills
	}

	router.SetHTMLTemplate(loadTemplates())
	router.Use(h.Authenticate)

	router.GET("/", h.Home)
	router.GET("/login", h.LoginForm)
	router.POST("/login", h.Login)
	router.GET("/register", h.RegisterForm)
	router.POST("/register", h.Register)
	router.POST("/logout", h.Logout)

	jd := router.Group(domain.ViewJobDescription.Path(), RequireView(domain.ViewJobDescription))
	jd.GET("", h.JobDescriptionForm)
	jd.POST("", h.CreateJobDescription)

	jo := router.Group(domain.ViewJobOpenings.Path(), RequireView(domain.ViewJobOpenings))
	jo.GET("", h.JobOpenings)
	jo.POST("/apply", h.Apply)

	db := router.Group(domain.ViewDashboard.Path(), RequireView(domain.ViewDashboard))
	db.GET("", h.Dashboard)
	db.POST("/evaluate", h.EvaluateCV)
}

// Home sends the visitor to the landing page for their role.
func (h *HTTPHandler) Home(c *gin.Context) {
	_, to := domain.Authorize(domain.ViewHome, currentSession(c))
	c.Redirect(http.StatusFound, to.Path())
}

func (h *HTTPHandler) render(c *gin.Context, name string, data gin.H) {
	sess := currentSession(c)
	data["Session"] = sess
	data["Nav"] = domain.Navigation(sess)
	c.HTML(http.StatusOK, name, data)
}

func (h *HTTPHandler) publish(c *gin.Context, a domain.Activity) {
	if err := h.Activity.Publish(c.Request.Context(), a); err != nil {
		slog.Warn("failed to publish activity",
			slog.String("kind", string(a.Kind)),
			slog.Any("error", err),
		)
	}
}

func messages(msgs ...string) []string {
	var out []string
	for _, m := range msgs {
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}
