package domain

import "time"

// ActivityKind names a user action worth announcing.
type ActivityKind string

const (
	ActivityLogin                 ActivityKind = "login"
	ActivityLogout                ActivityKind = "logout"
	ActivityRegistered            ActivityKind = "registered"
	ActivityJobDescriptionCreated ActivityKind = "job_description_created"
	ActivityCVUploaded            ActivityKind = "cv_uploaded"
	ActivityCVEvaluated           ActivityKind = "cv_evaluated"
)

// Activity is emitted after a user action succeeds.
type Activity struct {
	Kind       ActivityKind `json:"kind"`
	Username   string       `json:"username,omitempty"`
	Role       Role         `json:"role,omitempty"`
	JobID      JobID        `json:"job_id"`
	Detail     string       `json:"detail,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewActivity stamps an activity for the session's user.
func NewActivity(kind ActivityKind, s Session) Activity {
	return Activity{
		Kind:       kind,
		Username:   s.Username,
		Role:       s.Role,
		OccurredAt: time.Now().UTC(),
	}
}
