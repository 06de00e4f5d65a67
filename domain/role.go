package domain

// Role governs which views a user may open.
type Role string

const (
	RoleJobSeeker     Role = "job_seeker"
	RoleRecruiter     Role = "recruiter"
	RoleHiringManager Role = "hiring_manager"
	RoleAdmin         Role = "admin"
)

// Roles lists every role in the order the registration form offers them.
var Roles = []Role{RoleJobSeeker, RoleRecruiter, RoleHiringManager, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleRecruiter, RoleHiringManager, RoleAdmin:
		return true
	}
	return false
}

// Label is the human readable name used on forms.
func (r Role) Label() string {
	switch r {
	case RoleJobSeeker:
		return "Job Seeker"
	case RoleRecruiter:
		return "Recruiter"
	case RoleHiringManager:
		return "Hiring Manager"
	case RoleAdmin:
		return "Admin"
	}
	return string(r)
}
