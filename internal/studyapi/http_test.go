package studyapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestHTTPClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(Config{
		BaseURL:     server.URL,
		BearerToken: "test-token",
		Timeout:     2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	return client
}

func TestHTTPClient_ListCourses(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/academics/course" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "c1", "subject_code": "COMP", "number": "301", "title": "Foundations of Software Engineering"},
		})
	}

	client := newTestHTTPClient(t, handler)
	courses, err := client.ListCourses(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(courses) != 1 || courses[0].SubjectCode != "COMP" {
		t.Fatalf("courses = %+v", courses)
	}
	if got := courses[0].Label(); got != "COMP 301 - Foundations of Software Engineering" {
		t.Errorf("Label = %q", got)
	}
}

func TestHTTPClient_GeneratePracticeProblems(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/study-buddy/courses/c1/practice-problems" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("difficulty") != "medium" || q.Get("question_type") != "multiple_choice" {
			t.Errorf("query = %v", q)
		}
		if got := q["topics"]; len(got) != 2 || got[0] != "recursion" || got[1] != "trees" {
			t.Errorf("topics = %v", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"id":            "p1",
				"course_id":     "c1",
				"topic":         "recursion",
				"difficulty":    "medium",
				"question_type": "multiple_choice",
				"question_text": "What is a base case?",
				"answer":        "A, B",
				"explanation":   "Because.",
			},
		})
	}

	client := newTestHTTPClient(t, handler)
	problems, err := client.GeneratePracticeProblems(context.Background(), ProblemRequest{
		CourseID:     "c1",
		Topics:       []string{"recursion", "trees"},
		Difficulty:   DifficultyMedium,
		QuestionType: TypeMultipleChoice,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(problems) != 1 || problems[0].QuestionText != "What is a base case?" {
		t.Fatalf("problems = %+v", problems)
	}
}

func TestHTTPClient_GeneratePracticeProblems_SchemaViolation(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Missing required question_text / answer.
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "p1", "course_id": "c1", "question_type": "multiple_choice"},
		})
	}

	client := newTestHTTPClient(t, handler)
	_, err := client.GeneratePracticeProblems(context.Background(), ProblemRequest{CourseID: "c1"})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestHTTPClient_GenerateStudyGuide(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/study-buddy/study-guides" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["course_id"] != "c1" {
			t.Errorf("body = %v", body)
		}
		if _, ok := body["focus_topics"]; !ok {
			t.Error("focus_topics missing from request body")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":        "g1",
			"course_id": "c1",
			"topic":     "recursion",
			"content":   "# Guide",
		})
	}

	client := newTestHTTPClient(t, handler)
	guide, err := client.GenerateStudyGuide(context.Background(), GuideRequest{
		CourseID:    "c1",
		Topics:      []string{"recursion"},
		FocusTopics: []string{"recursion"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if guide.Content != "# Guide" {
		t.Errorf("content = %q", guide.Content)
	}
}

func TestHTTPClient_StruggleDataAndReport(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/study-buddy/courses/c1/struggle-data":
			json.NewEncoder(w).Encode(map[string]float64{"recursion": 0.8})
		case "/api/study-buddy/courses/c1/instructor-report":
			json.NewEncoder(w).Encode(map[string]any{"report": "Most students struggle with recursion."})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}

	client := newTestHTTPClient(t, handler)

	data, err := client.StruggleData(context.Background(), "c1")
	if err != nil {
		t.Fatalf("struggle data: %v", err)
	}
	if data["recursion"] != 0.8 {
		t.Errorf("data = %v", data)
	}

	report, err := client.GenerateInstructorReport(context.Background(), "c1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Report == "" || report.CourseID != "c1" {
		t.Errorf("report = %+v", report)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not defaulted")
	}
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header http.Header
		check  func(t *testing.T, err error)
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				var nf *ErrNotFound
				if !errors.As(err, &nf) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			header: http.Header{"Retry-After": []string{"7"}},
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				if !errors.As(err, &rl) {
					t.Fatalf("expected ErrRateLimit, got %v", err)
				}
				if rl.RetryAfter != 7*time.Second {
					t.Errorf("RetryAfter = %s, want 7s", rl.RetryAfter)
				}
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var unavail *ErrBackendUnavailable
				if !errors.As(err, &unavail) {
					t.Fatalf("expected ErrBackendUnavailable, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				for k, vs := range tt.header {
					for _, v := range vs {
						w.Header().Add(k, v)
					}
				}
				w.WriteHeader(tt.status)
			}
			client := newTestHTTPClient(t, handler)
			_, err := client.ListTopics(context.Background(), "c1")
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestHTTPClient_InvalidJSON(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}
	client := newTestHTTPClient(t, handler)
	_, err := client.ListCourses(context.Background())
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}
