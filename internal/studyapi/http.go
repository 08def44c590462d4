package studyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// HTTPClient implements Client against the course platform's REST API.
type HTTPClient struct {
	base  string
	token string
	http  *http.Client
}

// NewHTTPClient creates a client for the platform API at cfg.BaseURL.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPClient{
		base:  cfg.BaseURL,
		token: cfg.BearerToken,
		http:  &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	err := c.get(ctx, "/api/academics/course", nil, nil, &courses)
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *HTTPClient) ListTopics(ctx context.Context, courseID string) ([]string, error) {
	var topics []string
	path := fmt.Sprintf("/api/study-buddy/courses/%s/topics", url.PathEscape(courseID))
	if err := c.get(ctx, path, nil, nil, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (c *HTTPClient) GeneratePracticeProblems(ctx context.Context, req ProblemRequest) ([]PracticeProblem, error) {
	q := url.Values{}
	for _, t := range req.Topics {
		q.Add("topics", t)
	}
	if req.Difficulty != "" {
		q.Set("difficulty", string(req.Difficulty))
	}
	if req.QuestionType != "" {
		q.Set("question_type", string(req.QuestionType))
	}

	path := fmt.Sprintf("/api/study-buddy/courses/%s/practice-problems", url.PathEscape(req.CourseID))

	var problems []PracticeProblem
	if err := c.get(ctx, path, q, problemListSchema, &problems); err != nil {
		return nil, err
	}
	return problems, nil
}

func (c *HTTPClient) GenerateStudyGuide(ctx context.Context, req GuideRequest) (*StudyGuide, error) {
	body := map[string]any{
		"course_id": req.CourseID,
		"topics":    req.Topics,
	}
	if len(req.FocusTopics) > 0 {
		body["focus_topics"] = req.FocusTopics
	}

	var guide StudyGuide
	if err := c.post(ctx, "/api/study-buddy/study-guides", body, studyGuideSchema, &guide); err != nil {
		return nil, err
	}
	return &guide, nil
}

func (c *HTTPClient) StruggleData(ctx context.Context, courseID string) (map[string]float64, error) {
	path := fmt.Sprintf("/api/study-buddy/courses/%s/struggle-data", url.PathEscape(courseID))
	var data map[string]float64
	if err := c.get(ctx, path, nil, nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *HTTPClient) GenerateInstructorReport(ctx context.Context, courseID string) (*InstructorReport, error) {
	path := fmt.Sprintf("/api/study-buddy/courses/%s/instructor-report", url.PathEscape(courseID))
	var report InstructorReport
	if err := c.get(ctx, path, nil, instructorReportSchema, &report); err != nil {
		return nil, err
	}
	if report.CourseID == "" {
		report.CourseID = courseID
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}
	return &report, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values, schema *Schema, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &ErrBackendUnavailable{Err: err}
	}
	return c.do(req, schema, out)
}

func (c *HTTPClient) post(ctx context.Context, path string, body any, schema *Schema, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &ErrBackendUnavailable{Err: fmt.Errorf("encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return &ErrBackendUnavailable{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, schema, out)
}

// do executes the request, maps failure status codes to typed errors, and
// decodes the response body into out (validating against schema when set).
func (c *HTTPClient) do(req *http.Request, schema *Schema, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ErrBackendUnavailable{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ErrBackendUnavailable{Err: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &ErrNotFound{Resource: req.URL.Path}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &ErrRateLimit{
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("status %d", resp.StatusCode),
		}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &ErrBackendUnavailable{Err: fmt.Errorf("status %d: %s", resp.StatusCode, truncate(raw, 200))}
	}

	if err := validateResponse(schema, raw); err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}

// parseRetryAfter handles the delay-seconds form of the Retry-After header.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
