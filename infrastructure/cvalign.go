package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cv-align/domain"
)

// APIError is a non-2xx answer from the CvAlign API.
type APIError struct {
	StatusCode int
	// Detail is the raw "detail" field of the error body, if any.
	Detail json.RawMessage
}

func (e *APIError) Error() string {
	if msg := e.DetailMessage(); msg != "" {
		return fmt.Sprintf("cvalign api: status %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("cvalign api: status %d", e.StatusCode)
}

// DetailString returns the detail when the API sent it as a plain string.
func (e *APIError) DetailString() string {
	var s string
	if len(e.Detail) == 0 || json.Unmarshal(e.Detail, &s) != nil {
		return ""
	}
	return s
}

// DetailMessage returns the most specific message in the detail: the "msg"
// of a structured detail, a plain string detail, or the "msg" of the first
// entry of a validation error list.
func (e *APIError) DetailMessage() string {
	if len(e.Detail) == 0 {
		return ""
	}

	var obj struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(e.Detail, &obj) == nil && obj.Msg != "" {
		return obj.Msg
	}
	if s := e.DetailString(); s != "" {
		return s
	}
	var list []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(e.Detail, &list) == nil && len(list) > 0 {
		return list[0].Msg
	}
	return ""
}

// DetailOr returns the string detail of err, or fallback when err carries none.
func DetailOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if s := apiErr.DetailString(); s != "" {
			return s
		}
	}
	return fallback
}

// MessageOr returns the most specific detail message of err, or fallback.
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if s := apiErr.DetailMessage(); s != "" {
			return s
		}
	}
	return fallback
}

// Client talks to the CvAlign REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new CvAlign API client
func NewClient(cfg APIConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// RegisterRequest is the body of a registration.
type RegisterRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/login", "", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("cvalign api: login response has no access token")
	}
	return out.AccessToken, nil
}

// Register creates a user account.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (string, error) {
	var out messageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/register", "", in, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ListJobDescriptions returns the job openings visible to the caller.
func (c *Client) ListJobDescriptions(ctx context.Context, token string) ([]domain.JobDescription, error) {
	var out []domain.JobDescription
	if err := c.doJSON(ctx, http.MethodGet, "/api/job-descriptions", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateJobDescription saves a new job description.
func (c *Client) CreateJobDescription(ctx context.Context, token string, in domain.JobDescriptionInput) (string, error) {
	var out messageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/job-description", token, in, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ListCVs returns the submissions visible to the caller.
func (c *Client) ListCVs(ctx context.Context, token string) ([]domain.CvSubmission, error) {
	var out []domain.CvSubmission
	if err := c.doJSON(ctx, http.MethodGet, "/api/cvs", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEvaluations returns the evaluations visible to the caller.
func (c *Client) ListEvaluations(ctx context.Context, token string) ([]domain.Evaluation, error) {
	var out []domain.Evaluation
	if err := c.doJSON(ctx, http.MethodGet, "/api/evaluations", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EvaluateCV asks the API to score one submission.
func (c *Client) EvaluateCV(ctx context.Context, token, username string, jobID domain.JobID) (domain.EvaluationResult, error) {
	body := struct {
		Username string       `json:"username"`
		JobID    domain.JobID `json:"job_id"`
	}{username, jobID}

	var out domain.EvaluationResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/evaluate-cv", token, body, &out); err != nil {
		return domain.EvaluationResult{}, err
	}
	return out, nil
}

// UploadCV submits a CV file as an application to a job.
func (c *Client) UploadCV(ctx context.Context, token, filename string, file io.Reader, jobID domain.JobID) (domain.UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return domain.UploadResult{}, fmt.Errorf("failed to read file: %w", err)
	}
	if err := w.WriteField("job_id", jobID.String()); err != nil {
		return domain.UploadResult{}, fmt.Errorf("failed to write job_id: %w", err)
	}
	if err := w.Close(); err != nil {
		return domain.UploadResult{}, fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/upload-cv", token, &buf)
	if err != nil {
		return domain.UploadResult{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out domain.UploadResult
	if err := c.do(req, &out); err != nil {
		return domain.UploadResult{}, err
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	logAPICall(req, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Detail json.RawMessage `json:"detail"`
		}
		if json.Unmarshal(body, &errBody) == nil {
			apiErr.Detail = errBody.Detail
		}
		return apiErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse API response: %w", err)
	}
	return nil
}
