package domain

import "fmt"

const notEvaluated = "Not evaluated"

// CandidateRow is one line of the recruiter dashboard.
type CandidateRow struct {
	Submission CvSubmission
	Evaluation *Evaluation
}

// Evaluated reports whether an evaluation exists for the row.
func (r CandidateRow) Evaluated() bool {
	return r.Evaluation != nil
}

// Score is the formatted relevance score, or "Not evaluated".
func (r CandidateRow) Score() string {
	if r.Evaluation == nil {
		return notEvaluated
	}
	return r.Evaluation.Score()
}

// Feedback is the evaluation feedback, or "Not evaluated".
func (r CandidateRow) Feedback() string {
	if r.Evaluation == nil {
		return notEvaluated
	}
	return r.Evaluation.Feedback
}

// JobTitle falls back to "Not specified" when the submission has none.
func (r CandidateRow) JobTitle() string {
	return jobTitleOrDefault(r.Submission.JobTitle)
}

// Summary renders the score and feedback as "0.90/Strong".
func (r CandidateRow) Summary() string {
	if r.Evaluation == nil {
		return notEvaluated
	}
	return fmt.Sprintf("%s/%s", r.Score(), r.Feedback())
}

// Reconcile pairs each submission with its evaluation, if any. Submissions
// keep their order; when several evaluations share a key the first one wins.
func Reconcile(cvs []CvSubmission, evaluations []Evaluation) []CandidateRow {
	byKey := make(map[SubmissionKey]*Evaluation, len(evaluations))
	for i := range evaluations {
		k := evaluations[i].Key()
		if !k.Complete() {
			continue
		}
		if _, ok := byKey[k]; !ok {
			byKey[k] = &evaluations[i]
		}
	}

	rows := make([]CandidateRow, 0, len(cvs))
	for _, cv := range cvs {
		row := CandidateRow{Submission: cv}
		if k := cv.Key(); k.Complete() {
			row.Evaluation = byKey[k]
		}
		rows = append(rows, row)
	}
	return rows
}

// FindEvaluation looks up the evaluation for key.
func FindEvaluation(evaluations []Evaluation, key SubmissionKey) (Evaluation, bool) {
	if !key.Complete() {
		return Evaluation{}, false
	}
	for _, e := range evaluations {
		if e.Key() == key {
			return e, true
		}
	}
	return Evaluation{}, false
}

// FindSubmission looks up the submission for key.
func FindSubmission(cvs []CvSubmission, key SubmissionKey) (CvSubmission, bool) {
	if !key.Complete() {
		return CvSubmission{}, false
	}
	for _, cv := range cvs {
		if cv.Key() == key {
			return cv, true
		}
	}
	return CvSubmission{}, false
}

func jobTitleOrDefault(title string) string {
	if title == "" {
		return "Not specified"
	}
	return title
}
