package studyapi

import (
	"context"
	"sync"
)

// MockClient is a deterministic Client for testing. Results are canned per
// operation and every call is recorded.
type MockClient struct {
	mu sync.Mutex

	CoursesResult  []Course
	CoursesErr     error
	TopicsResult   []string
	TopicsErr      error
	ProblemsResult []PracticeProblem
	ProblemsErr    error
	GuideResult    *StudyGuide
	GuideErr       error
	StruggleResult map[string]float64
	StruggleErr    error
	ReportResult   *InstructorReport
	ReportErr      error

	// Calls records the operations invoked, in order.
	Calls []string

	// ProblemRequests records every GeneratePracticeProblems request.
	ProblemRequests []ProblemRequest

	// GuideRequests records every GenerateStudyGuide request.
	GuideRequests []GuideRequest
}

// NewMockClient creates an empty MockClient. Populate the *Result fields
// before use; nil results resolve as empty data.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) ListCourses(_ context.Context) ([]Course, error) {
	m.call("list_courses")
	if m.CoursesErr != nil {
		return nil, m.CoursesErr
	}
	return m.CoursesResult, nil
}

func (m *MockClient) ListTopics(_ context.Context, _ string) ([]string, error) {
	m.call("list_topics")
	if m.TopicsErr != nil {
		return nil, m.TopicsErr
	}
	return m.TopicsResult, nil
}

func (m *MockClient) GeneratePracticeProblems(_ context.Context, req ProblemRequest) ([]PracticeProblem, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, "generate_practice_problems")
	m.ProblemRequests = append(m.ProblemRequests, req)
	m.mu.Unlock()
	if m.ProblemsErr != nil {
		return nil, m.ProblemsErr
	}
	return m.ProblemsResult, nil
}

func (m *MockClient) GenerateStudyGuide(_ context.Context, req GuideRequest) (*StudyGuide, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, "generate_study_guide")
	m.GuideRequests = append(m.GuideRequests, req)
	m.mu.Unlock()
	if m.GuideErr != nil {
		return nil, m.GuideErr
	}
	if m.GuideResult == nil {
		return &StudyGuide{}, nil
	}
	return m.GuideResult, nil
}

func (m *MockClient) StruggleData(_ context.Context, _ string) (map[string]float64, error) {
	m.call("struggle_data")
	if m.StruggleErr != nil {
		return nil, m.StruggleErr
	}
	return m.StruggleResult, nil
}

func (m *MockClient) GenerateInstructorReport(_ context.Context, courseID string) (*InstructorReport, error) {
	m.call("generate_instructor_report")
	if m.ReportErr != nil {
		return nil, m.ReportErr
	}
	if m.ReportResult == nil {
		return &InstructorReport{CourseID: courseID}, nil
	}
	return m.ReportResult, nil
}

// CallCount returns the number of calls made across all operations.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockClient) call(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, op)
}
