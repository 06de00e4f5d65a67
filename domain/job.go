package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// JobID identifies a job description. The API sends it as a number, but older
// records carry it as a string and some carry none at all.
type JobID struct {
	Value int
	Valid bool
}

// NewJobID returns a present JobID.
func NewJobID(v int) JobID {
	return JobID{Value: v, Valid: true}
}

// ParseJobID reads a job id from form input. Empty input is an absent id.
func ParseJobID(s string) (JobID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return JobID{}, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return JobID{}, fmt.Errorf("invalid job id %q: %w", s, err)
	}
	return NewJobID(v), nil
}

func (id JobID) String() string {
	if !id.Valid {
		return ""
	}
	return strconv.Itoa(id.Value)
}

func (id JobID) MarshalJSON() ([]byte, error) {
	if !id.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(id.Value)), nil
}

func (id *JobID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = JobID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseJobID(s)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid job id %s: %w", data, err)
	}
	*id = NewJobID(v)
	return nil
}

// JobDescription is a job opening as authored by a recruiter.
type JobDescription struct {
	ID         JobID  `json:"id"`
	JobTitle   string `json:"jobTitle"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
	Traits     string `json:"traits"`
	CreatedBy  string `json:"created_by"`
}

// JobDescriptionInput is what the authoring form submits.
type JobDescriptionInput struct {
	JobTitle   string `json:"jobTitle" form:"jobTitle" binding:"required"`
	Skills     string `json:"skills" form:"skills" binding:"required"`
	Experience string `json:"experience" form:"experience" binding:"required"`
	Traits     string `json:"traits" form:"traits"`
}

// FindJob returns the job with the given id.
func FindJob(jobs []JobDescription, id JobID) (JobDescription, bool) {
	if !id.Valid {
		return JobDescription{}, false
	}
	for _, j := range jobs {
		if j.ID == id {
			return j, true
		}
	}
	return JobDescription{}, false
}
