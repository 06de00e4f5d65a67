package domain

// StructuredContent is the sectioned text the API extracts from a CV.
type StructuredContent struct {
	Skills                    []string `json:"skills,omitempty"`
	Experience                []string `json:"experience,omitempty"`
	Education                 []string `json:"education,omitempty"`
	PositionsOfResponsibility []string `json:"positions_of_responsibility,omitempty"`
}

// CvSubmission is one candidate's application to one job.
type CvSubmission struct {
	Username          string            `json:"username"`
	JobID             JobID             `json:"job_id"`
	JobTitle          string            `json:"job_title"`
	Filename          string            `json:"filename"`
	CloudURL          string            `json:"cloud_url"`
	StructuredContent StructuredContent `json:"structured_content"`
}

// Key returns the composite key shared with evaluations.
func (s CvSubmission) Key() SubmissionKey {
	return SubmissionKey{Username: s.Username, JobID: s.JobID}
}

// SubmissionKey joins submissions to evaluations.
type SubmissionKey struct {
	Username string
	JobID    JobID
}

// Complete reports whether the key can match anything. A key without a job
// id never matches, not even another key without one.
func (k SubmissionKey) Complete() bool {
	return k.JobID.Valid
}

// UploadResult is returned by the API after a CV upload.
type UploadResult struct {
	Message  string `json:"message"`
	CloudURL string `json:"cloud_url"`
}
