package domain

// View is a page of the application.
type View string

const (
	ViewHome           View = "home"
	ViewLogin          View = "login"
	ViewRegister       View = "register"
	ViewJobDescription View = "job-description"
	ViewJobOpenings    View = "job-openings"
	ViewDashboard      View = "dashboard"
)

// Path returns the URL path serving v.
func (v View) Path() string {
	if v == ViewHome {
		return "/"
	}
	return "/" + string(v)
}

var viewRoles = map[View][]Role{
	ViewJobDescription: {RoleRecruiter, RoleHiringManager, RoleAdmin},
	ViewJobOpenings:    {RoleJobSeeker, RoleAdmin},
	ViewDashboard:      {RoleRecruiter, RoleAdmin},
}

// Protected reports whether v requires a role.
func (v View) Protected() bool {
	_, ok := viewRoles[v]
	return ok
}

// Permits reports whether s may open the protected view v.
func Permits(v View, s Session) bool {
	if !s.Authenticated() {
		return false
	}
	for _, r := range viewRoles[v] {
		if r == s.Role {
			return true
		}
	}
	return false
}

// Authorize decides a navigation to v. When access is denied the returned
// view is where the user is sent instead.
func Authorize(v View, s Session) (bool, View) {
	if v == ViewHome {
		return false, Landing(s)
	}
	if !v.Protected() {
		return true, v
	}
	if Permits(v, s) {
		return true, v
	}
	return false, ViewLogin
}

// Landing is where "/" sends the session.
func Landing(s Session) View {
	if !s.Authenticated() {
		return ViewLogin
	}
	if s.Role == RoleJobSeeker {
		return ViewJobOpenings
	}
	return ViewDashboard
}

// AfterLogin is the first page shown once a login succeeds.
func AfterLogin(s Session) View {
	switch s.Role {
	case RoleJobSeeker:
		return ViewJobOpenings
	case RoleRecruiter, RoleAdmin:
		return ViewDashboard
	}
	return ViewJobDescription
}

// NavLink is an entry of the page navigation bar.
type NavLink struct {
	Title string
	Path  string
}

var navOrder = []struct {
	view  View
	title string
}{
	{ViewJobDescription, "Job Description"},
	{ViewDashboard, "Dashboard"},
	{ViewJobOpenings, "Job Openings"},
}

// Navigation lists the links the session is allowed to follow.
func Navigation(s Session) []NavLink {
	var links []NavLink
	for _, n := range navOrder {
		if Permits(n.view, s) {
			links = append(links, NavLink{Title: n.title, Path: n.view.Path()})
		}
	}
	return links
}
