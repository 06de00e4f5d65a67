package interfaces

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-align/domain"
	"cv-align/infrastructure"
)

func TestLogin_RedirectsByRole(t *testing.T) {
	tests := []struct {
		role domain.Role
		want string
	}{
		{domain.RoleJobSeeker, "/job-openings"},
		{domain.RoleRecruiter, "/dashboard"},
		{domain.RoleAdmin, "/dashboard"},
		{domain.RoleHiringManager, "/job-description"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			api := newFakeAPI()
			api.token = tokenFor(t, "alice", tt.role)
			router, pub := newTestRouter(api)

			w := postForm(router, "/login", "", url.Values{"username": {"alice"}, "password": {"pw"}})
			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))

			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, infrastructure.SessionCookie, cookies[0].Name)
			assert.Equal(t, api.token, cookies[0].Value)
			assert.Equal(t, []domain.ActivityKind{domain.ActivityLogin}, pub.kinds())
		})
	}
}

func TestLogin_Failure(t *testing.T) {
	api := newFakeAPI()
	api.loginErr = &infrastructure.APIError{StatusCode: http.StatusUnauthorized, Detail: json.RawMessage(`"Invalid credentials"`)}
	router, pub := newTestRouter(api)

	w := postForm(router, "/login", "", url.Values{"username": {"alice"}, "password": {"bad"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login failed. Check your credentials.")
	assert.Contains(t, w.Body.String(), `value="alice"`)
	assert.Empty(t, w.Result().Cookies())
	assert.Empty(t, pub.kinds())
}

func TestLogin_UndecodableToken(t *testing.T) {
	api := newFakeAPI()
	api.token = "not-a-jwt"
	router, _ := newTestRouter(api)

	w := postForm(router, "/login", "", url.Values{"username": {"alice"}, "password": {"pw"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login failed. Check your credentials.")
	assert.Empty(t, w.Result().Cookies())
}

func TestLoginPage(t *testing.T) {
	router, _ := newTestRouter(newFakeAPI())

	w := get(router, "/login", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login to CvAlign")
	assert.NotContains(t, w.Body.String(), "Logout")
}

func TestRegister(t *testing.T) {
	api := newFakeAPI()
	router, pub := newTestRouter(api)

	w := postForm(router, "/register", "", url.Values{"username": {"bob"}, "password": {"pw"}, "role": {"recruiter"}})
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Registration successful! Redirecting to login...")
	assert.Contains(t, body, `http-equiv="refresh"`)

	require.Len(t, api.registered, 1)
	assert.Equal(t, domain.RoleRecruiter, api.registered[0].Role)
	assert.Equal(t, []domain.ActivityKind{domain.ActivityRegistered}, pub.kinds())
}

func TestRegister_Failure(t *testing.T) {
	api := newFakeAPI()
	api.registerErr = &infrastructure.APIError{StatusCode: http.StatusBadRequest, Detail: json.RawMessage(`"Username already exists"`)}
	router, _ := newTestRouter(api)

	w := postForm(router, "/register", "", url.Values{"username": {"bob"}, "password": {"pw"}, "role": {"admin"}})
	body := w.Body.String()
	assert.Contains(t, body, "Username already exists")
	assert.NotContains(t, body, `http-equiv="refresh"`)
	assert.Contains(t, body, `<option value="admin" selected>`)
}

func TestRegister_GenericFailure(t *testing.T) {
	api := newFakeAPI()
	api.registerErr = &infrastructure.APIError{StatusCode: http.StatusInternalServerError}
	router, _ := newTestRouter(api)

	w := postForm(router, "/register", "", url.Values{"username": {"bob"}, "password": {"pw"}})
	assert.Contains(t, w.Body.String(), "Registration failed.")
}

func TestLogout(t *testing.T) {
	router, pub := newTestRouter(newFakeAPI())

	w := postForm(router, "/logout", tokenFor(t, "alice", domain.RoleAdmin), url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Equal(t, []domain.ActivityKind{domain.ActivityLogout}, pub.kinds())
}
