package studyapi

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingClient is a decorator that records every backend call as a
// structured log entry. Logging failures never fail the request.
type LoggingClient struct {
	inner Client
	log   *zap.Logger
}

// WithLogging wraps a Client with structured logging.
func WithLogging(c Client, log *zap.Logger) Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingClient{inner: c, log: log}
}

func (l *LoggingClient) ListCourses(ctx context.Context) ([]Course, error) {
	start := time.Now()
	courses, err := l.inner.ListCourses(ctx)
	l.record("list_courses", "", start, err, zap.Int("count", len(courses)))
	return courses, err
}

func (l *LoggingClient) ListTopics(ctx context.Context, courseID string) ([]string, error) {
	start := time.Now()
	topics, err := l.inner.ListTopics(ctx, courseID)
	l.record("list_topics", courseID, start, err, zap.Int("count", len(topics)))
	return topics, err
}

func (l *LoggingClient) GeneratePracticeProblems(ctx context.Context, req ProblemRequest) ([]PracticeProblem, error) {
	start := time.Now()
	problems, err := l.inner.GeneratePracticeProblems(ctx, req)
	l.record("generate_practice_problems", req.CourseID, start, err,
		zap.Strings("topics", req.Topics),
		zap.String("difficulty", string(req.Difficulty)),
		zap.String("question_type", string(req.QuestionType)),
		zap.Int("count", len(problems)),
	)
	return problems, err
}

func (l *LoggingClient) GenerateStudyGuide(ctx context.Context, req GuideRequest) (*StudyGuide, error) {
	start := time.Now()
	guide, err := l.inner.GenerateStudyGuide(ctx, req)
	l.record("generate_study_guide", req.CourseID, start, err,
		zap.Strings("topics", req.Topics),
		zap.Strings("focus_topics", req.FocusTopics),
	)
	return guide, err
}

func (l *LoggingClient) StruggleData(ctx context.Context, courseID string) (map[string]float64, error) {
	start := time.Now()
	data, err := l.inner.StruggleData(ctx, courseID)
	l.record("struggle_data", courseID, start, err, zap.Int("topics", len(data)))
	return data, err
}

func (l *LoggingClient) GenerateInstructorReport(ctx context.Context, courseID string) (*InstructorReport, error) {
	start := time.Now()
	report, err := l.inner.GenerateInstructorReport(ctx, courseID)
	l.record("generate_instructor_report", courseID, start, err)
	return report, err
}

func (l *LoggingClient) record(op, courseID string, start time.Time, err error, fields ...zap.Field) {
	all := make([]zap.Field, 0, len(fields)+3)
	all = append(all,
		zap.String("operation", op),
		zap.Duration("latency", time.Since(start)),
	)
	if courseID != "" {
		all = append(all, zap.String("course_id", courseID))
	}
	all = append(all, fields...)

	if err != nil {
		all = append(all, zap.Error(err))
		l.log.Warn("backend call failed", all...)
		return
	}
	l.log.Debug("backend call", all...)
}
