package domain

import "fmt"

// Evaluation is the API's relevance verdict for one submission.
type Evaluation struct {
	Username       string  `json:"username"`
	JobID          JobID   `json:"job_id"`
	JobTitle       string  `json:"job_title"`
	Filename       string  `json:"filename"`
	RelevanceScore float64 `json:"relevance_score"`
	Feedback       string  `json:"feedback"`
}

// Key returns the composite key shared with submissions.
func (e Evaluation) Key() SubmissionKey {
	return SubmissionKey{Username: e.Username, JobID: e.JobID}
}

// Score formats the relevance score for display.
func (e Evaluation) Score() string {
	return fmt.Sprintf("%.2f", e.RelevanceScore)
}

// EvaluationResult is returned by the API after an evaluate request.
type EvaluationResult struct {
	Message    string      `json:"message"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}
