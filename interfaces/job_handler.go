package interfaces

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"cv-align/domain"
	"cv-align/infrastructure"
)

func (h *HTTPHandler) JobDescriptionForm(c *gin.Context) {
	h.render(c, "job_description.html", gin.H{
		"Title": "Create Job Description",
		"Form":  domain.JobDescriptionInput{},
	})
}

// CreateJobDescription submits the authoring form. The form is cleared only
// when the API accepts it.
func (h *HTTPHandler) CreateJobDescription(c *gin.Context) {
	sess := currentSession(c)
	data := gin.H{"Title": "Create Job Description"}

	var in domain.JobDescriptionInput
	if err := c.ShouldBind(&in); err != nil {
		data["Form"] = in
		data["Messages"] = messages("Please fill in all required fields.")
		h.render(c, "job_description.html", data)
		return
	}

	msg, err := h.API.CreateJobDescription(c.Request.Context(), sess.Credential, in)
	if err != nil {
		slog.Warn("failed to save job description", slog.String("username", sess.Username), slog.Any("error", err))
		data["Form"] = in
		data["Messages"] = messages(infrastructure.DetailOr(err, "Error saving job description."))
		h.render(c, "job_description.html", data)
		return
	}

	a := domain.NewActivity(domain.ActivityJobDescriptionCreated, sess)
	a.Detail = in.JobTitle
	h.publish(c, a)

	data["Form"] = domain.JobDescriptionInput{}
	data["Messages"] = messages(msg)
	h.render(c, "job_description.html", data)
}

// JobOpenings lists the open jobs, with the detail of the one named by ?job=.
func (h *HTTPHandler) JobOpenings(c *gin.Context) {
	selected, _ := domain.ParseJobID(c.Query("job"))
	h.renderJobOpenings(c, selected)
}

// Apply uploads a CV for one job. Missing input is reported without calling
// the API.
func (h *HTTPHandler) Apply(c *gin.Context) {
	sess := currentSession(c)
	jobID, jobErr := domain.ParseJobID(c.PostForm("job_id"))

	file, err := c.FormFile("file")
	switch {
	case err != nil:
		h.renderJobOpenings(c, jobID, "Please select a file.")
		return
	case jobErr != nil || !jobID.Valid:
		h.renderJobOpenings(c, jobID, "Error: Job ID is missing.")
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open uploaded file", slog.Any("error", err))
		h.renderJobOpenings(c, jobID, "Error submitting application.")
		return
	}
	defer f.Close()

	res, err := h.API.UploadCV(c.Request.Context(), sess.Credential, file.Filename, f, jobID)
	if err != nil {
		slog.Warn("failed to upload CV",
			slog.String("username", sess.Username),
			slog.String("job_id", jobID.String()),
			slog.Any("error", err),
		)
		h.renderJobOpenings(c, jobID, infrastructure.DetailOr(err, "Error submitting application."))
		return
	}

	a := domain.NewActivity(domain.ActivityCVUploaded, sess)
	a.JobID = jobID
	a.Detail = res.CloudURL
	h.publish(c, a)

	h.renderJobOpenings(c, jobID, "Application submitted successfully! Cloud URL: "+res.CloudURL)
}

func (h *HTTPHandler) renderJobOpenings(c *gin.Context, selected domain.JobID, msgs ...string) {
	sess := currentSession(c)
	data := gin.H{
		"Title":    "Job Openings",
		"CanApply": sess.Role == domain.RoleJobSeeker,
	}

	jobs, err := h.API.ListJobDescriptions(c.Request.Context(), sess.Credential)
	if err != nil {
		slog.Warn("failed to fetch job openings", slog.Any("error", err))
		msgs = append(msgs, "Error fetching job openings: "+infrastructure.DetailOr(err, "Unknown error"))
	}
	data["Jobs"] = jobs

	if job, ok := domain.FindJob(jobs, selected); ok {
		data["Selected"] = job
	}

	data["Messages"] = messages(msgs...)
	h.render(c, "job_openings.html", data)
}
