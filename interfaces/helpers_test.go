package interfaces

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"cv-align/domain"
	"cv-align/infrastructure"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	token    string
	loginErr error

	registerErr error
	registered  []infrastructure.RegisterRequest

	jobs    []domain.JobDescription
	jobsErr error

	createMsg string
	createErr error
	created   []domain.JobDescriptionInput

	cvs    []domain.CvSubmission
	cvsErr error

	evals    []domain.Evaluation
	evalsErr error

	evaluateRes domain.EvaluationResult
	evaluateErr error
	onEvaluate  func(f *fakeAPI)

	uploadRes   domain.UploadResult
	uploadErr   error
	uploadToken string
	uploaded    map[string]string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}, uploaded: map[string]string{}}
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) Login(_ context.Context, _, _ string) (string, error) {
	f.record("Login")
	return f.token, f.loginErr
}

func (f *fakeAPI) Register(_ context.Context, in infrastructure.RegisterRequest) (string, error) {
	f.record("Register")
	if f.registerErr != nil {
		return "", f.registerErr
	}
	f.registered = append(f.registered, in)
	return "User registered successfully", nil
}

func (f *fakeAPI) ListJobDescriptions(context.Context, string) ([]domain.JobDescription, error) {
	f.record("ListJobDescriptions")
	return f.jobs, f.jobsErr
}

func (f *fakeAPI) CreateJobDescription(_ context.Context, _ string, in domain.JobDescriptionInput) (string, error) {
	f.record("CreateJobDescription")
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, in)
	return f.createMsg, nil
}

func (f *fakeAPI) ListCVs(context.Context, string) ([]domain.CvSubmission, error) {
	f.record("ListCVs")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cvs, f.cvsErr
}

func (f *fakeAPI) ListEvaluations(context.Context, string) ([]domain.Evaluation, error) {
	f.record("ListEvaluations")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.evals, f.evalsErr
}

func (f *fakeAPI) EvaluateCV(context.Context, string, string, domain.JobID) (domain.EvaluationResult, error) {
	f.record("EvaluateCV")
	if f.evaluateErr != nil {
		return domain.EvaluationResult{}, f.evaluateErr
	}
	if f.onEvaluate != nil {
		f.mu.Lock()
		f.onEvaluate(f)
		f.mu.Unlock()
	}
	return f.evaluateRes, nil
}

func (f *fakeAPI) UploadCV(_ context.Context, token, filename string, file io.Reader, _ domain.JobID) (domain.UploadResult, error) {
	f.record("UploadCV")
	if f.uploadErr != nil {
		return domain.UploadResult{}, f.uploadErr
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return domain.UploadResult{}, err
	}
	f.uploadToken = token
	f.uploaded[filename] = string(data)
	return f.uploadRes, nil
}

type recordingPublisher struct {
	mu         sync.Mutex
	activities []domain.Activity
}

func (p *recordingPublisher) Publish(_ context.Context, a domain.Activity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activities = append(p.activities, a)
	return nil
}

func (p *recordingPublisher) kinds() []domain.ActivityKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.ActivityKind
	for _, a := range p.activities {
		out = append(out, a.Kind)
	}
	return out
}

func newTestRouter(api *fakeAPI) (*gin.Engine, *recordingPublisher) {
	pub := &recordingPublisher{}
	router := gin.New()
	NewHTTPHandler(router, &HTTPHandler{
		API:      api,
		Sessions: infrastructure.NewCookieStore(infrastructure.SessionConfig{}),
		Activity: pub,
	})
	return router, pub
}

func tokenFor(t *testing.T, username string, role domain.Role) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  username,
		"role": string(role),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func withToken(req *http.Request, token string) *http.Request {
	if token != "" {
		req.AddCookie(&http.Cookie{Name: infrastructure.SessionCookie, Value: token})
	}
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router http.Handler, target, token string) *httptest.ResponseRecorder {
	return serve(router, withToken(httptest.NewRequest(http.MethodGet, target, nil), token))
}

func postForm(router http.Handler, target, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return serve(router, withToken(req, token))
}

func postMultipart(t *testing.T, router http.Handler, target, token string, fields map[string]string, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return serve(router, withToken(req, token))
}

// section returns the part of body starting at marker up to the next end.
func section(t *testing.T, body, marker, end string) string {
	t.Helper()
	i := strings.Index(body, marker)
	require.GreaterOrEqual(t, i, 0, "marker %q not found", marker)
	rest := body[i:]
	if j := strings.Index(rest, end); j >= 0 {
		return rest[:j]
	}
	return rest
}

func newRouterWithSkills(api *fakeAPI, skills []string) *gin.Engine {
	router := gin.New()
	NewHTTPHandler(router, &HTTPHandler{
		API:             api,
		Sessions:        infrastructure.NewCookieStore(infrastructure.SessionConfig{}),
		ReferenceSkills: skills,
	})
	return router
}
