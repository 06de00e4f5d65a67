package interfaces

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"cv-align/domain"
	"cv-align/infrastructure"
)

// Dashboard lists every submission with its evaluation. ?username= and
// ?job_id= open the detail of one evaluated candidate.
func (h *HTTPHandler) Dashboard(c *gin.Context) {
	var selected *domain.SubmissionKey
	if username := c.Query("username"); username != "" {
		if jobID, err := domain.ParseJobID(c.Query("job_id")); err == nil && jobID.Valid {
			selected = &domain.SubmissionKey{Username: username, JobID: jobID}
		}
	}
	h.renderDashboard(c, selected)
}

// EvaluateCV requests an evaluation and re-renders the dashboard with fresh
// evaluations.
func (h *HTTPHandler) EvaluateCV(c *gin.Context) {
	sess := currentSession(c)
	username := strings.TrimSpace(c.PostForm("username"))
	jobID, jobErr := domain.ParseJobID(c.PostForm("job_id"))

	switch {
	case username == "":
		h.renderDashboard(c, nil, "Cannot evaluate CV: Username is missing.")
		return
	case jobErr != nil || !jobID.Valid:
		h.renderDashboard(c, nil, "Cannot evaluate CV: Job ID is missing.")
		return
	}

	res, err := h.API.EvaluateCV(c.Request.Context(), sess.Credential, username, jobID)
	if err != nil {
		slog.Warn("evaluation failed",
			slog.String("candidate", username),
			slog.String("job_id", jobID.String()),
			slog.Any("error", err),
		)
		h.renderDashboard(c, nil, infrastructure.MessageOr(err, "Error evaluating CV."))
		return
	}

	a := domain.NewActivity(domain.ActivityCVEvaluated, sess)
	a.JobID = jobID
	a.Detail = username
	h.publish(c, a)

	msg := res.Message
	if msg == "" {
		msg = "CV evaluated successfully!"
	}
	h.renderDashboard(c, nil, msg)
}

func (h *HTTPHandler) renderDashboard(c *gin.Context, selected *domain.SubmissionKey, msgs ...string) {
	sess := currentSession(c)
	ctx := c.Request.Context()

	// the two collections are independent; a failure of one still shows the other
	var (
		cvs            []domain.CvSubmission
		evaluations    []domain.Evaluation
		cvErr, evalErr error
		g              errgroup.Group
	)
	g.Go(func() error {
		cvs, cvErr = h.API.ListCVs(ctx, sess.Credential)
		return cvErr
	})
	g.Go(func() error {
		evaluations, evalErr = h.API.ListEvaluations(ctx, sess.Credential)
		return evalErr
	})
	if err := g.Wait(); err != nil {
		slog.Warn("failed to fetch dashboard data", slog.Any("error", err))
	}
	// a collection that failed to load is shown as empty
	if cvErr != nil {
		cvs = nil
		msgs = append(msgs, infrastructure.DetailOr(cvErr, "Error fetching CVs."))
	}
	if evalErr != nil {
		evaluations = nil
		msgs = append(msgs, infrastructure.DetailOr(evalErr, "Error fetching evaluations."))
	}

	data := gin.H{
		"Title":    "CvAlign: Candidate Dashboard",
		"Rows":     domain.Reconcile(cvs, evaluations),
		"Messages": messages(msgs...),
	}

	if selected != nil {
		if e, ok := domain.FindEvaluation(evaluations, *selected); ok {
			data["Detail"] = domain.NewCandidateDetail(e, cvs, h.ReferenceSkills)
		}
	}

	h.render(c, "dashboard.html", data)
}
