package domain

import (
	"fmt"
	"strings"
)

const bulletSeparator = "•"

// Section headings that end the skills list in extracted CV text.
var skillBoundaries = []string{"achievements", "positions of responsibility", "courses taken"}

// DefaultReferenceSkills is the skill list the dashboard compares candidates
// against unless configured otherwise.
var DefaultReferenceSkills = []string{"leadership", "agile"}

// ExtractSkills pulls skill tokens out of the skills section of a CV.
//
// Entries are read in order until one mentions a boundary heading. Only
// entries with a bullet contribute, and only the text after their last
// bullet. Commas become spaces and the text is split on whitespace, so
// multi-word skills come out as separate words.
func ExtractSkills(content StructuredContent) []string {
	var skills []string
	for _, entry := range content.Skills {
		if isSkillBoundary(entry) {
			break
		}
		i := strings.LastIndex(entry, bulletSeparator)
		if i < 0 {
			continue
		}
		part := strings.TrimSpace(entry[i+len(bulletSeparator):])
		for _, tok := range strings.Fields(strings.ReplaceAll(part, ",", " ")) {
			skills = append(skills, strings.ReplaceAll(tok, "*", ""))
		}
	}
	return skills
}

func isSkillBoundary(entry string) bool {
	lower := strings.ToLower(entry)
	for _, b := range skillBoundaries {
		if strings.Contains(lower, b) {
			return true
		}
	}
	return false
}

// SkillMatch compares a candidate's skills with a reference list.
type SkillMatch struct {
	Matching []string
	Missing  []string
}

// MatchSkills splits the reference list into skills the candidate has and
// skills they lack. Comparison ignores case; results use the reference spelling.
func MatchSkills(reference, candidate []string) SkillMatch {
	have := make(map[string]struct{}, len(candidate))
	for _, s := range candidate {
		have[strings.ToLower(s)] = struct{}{}
	}

	var m SkillMatch
	for _, r := range reference {
		if _, ok := have[strings.ToLower(r)]; ok {
			m.Matching = append(m.Matching, r)
		} else {
			m.Missing = append(m.Missing, r)
		}
	}
	return m
}

// CandidateDetail is everything the dashboard shows for one evaluated candidate.
type CandidateDetail struct {
	Evaluation Evaluation
	Submission CvSubmission
	Skills     SkillMatch
}

// NewCandidateDetail builds the detail view for an evaluation. The submission
// may be missing, in which case the CV sections are empty.
func NewCandidateDetail(e Evaluation, cvs []CvSubmission, reference []string) CandidateDetail {
	cv, _ := FindSubmission(cvs, e.Key())
	return CandidateDetail{
		Evaluation: e,
		Submission: cv,
		Skills:     MatchSkills(reference, ExtractSkills(cv.StructuredContent)),
	}
}

// JobTitle falls back to "Not specified" when the evaluation has none.
func (d CandidateDetail) JobTitle() string {
	return jobTitleOrDefault(d.Evaluation.JobTitle)
}

// MatchingSkills joins the matching skills for display.
func (d CandidateDetail) MatchingSkills() string {
	return joinOrNone(d.Skills.Matching)
}

// MissingSkills joins the missing skills for display.
func (d CandidateDetail) MissingSkills() string {
	return joinOrNone(d.Skills.Missing)
}

// ExperienceSummary counts the experience entries of the CV.
func (d CandidateDetail) ExperienceSummary() string {
	n := len(d.Submission.StructuredContent.Experience)
	if n == 0 {
		return "No experience entries found."
	}
	return fmt.Sprintf("%d entries found, including internships and projects.", n)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
