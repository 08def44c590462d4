package studyapi

import "context"

// Client is the port to the study-buddy generation backend.
// Every method either resolves with typed data or fails with one of the
// typed errors in this package; callers treat all failures uniformly and
// never inspect backend-internal details.
type Client interface {
	// ListCourses returns the course catalog.
	ListCourses(ctx context.Context) ([]Course, error)

	// ListTopics returns the ordered topic names for a course.
	ListTopics(ctx context.Context, courseID string) ([]string, error)

	// GeneratePracticeProblems requests a set of generated problems.
	GeneratePracticeProblems(ctx context.Context, req ProblemRequest) ([]PracticeProblem, error)

	// GenerateStudyGuide requests a study guide for a topic set.
	GenerateStudyGuide(ctx context.Context, req GuideRequest) (*StudyGuide, error)

	// StruggleData returns the per-topic struggle score for a course.
	StruggleData(ctx context.Context, courseID string) (map[string]float64, error)

	// GenerateInstructorReport requests the aggregated instructor report.
	GenerateInstructorReport(ctx context.Context, courseID string) (*InstructorReport, error)
}
