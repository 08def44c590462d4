// Package session drives a practice/study interaction as a linear
// conversational transcript: course selection, generation requests, answer
// evaluation and progress recording.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comp423-25s/csxl-team-f3/internal/evaluator"
	"github.com/comp423-25s/csxl-team-f3/internal/progress"
	"github.com/comp423-25s/csxl-team-f3/internal/studyapi"
	"github.com/comp423-25s/csxl-team-f3/internal/transcript"
)

// State is the orchestrator's position in the interaction.
type State string

const (
	StateIdle               State = "idle"
	StateCourseSelected     State = "course_selected"
	StateAwaitingGeneration State = "awaiting_generation"
	StateProblemsReady      State = "problems_ready"
	StateGuideReady         State = "guide_ready"
)

// weakTopicThreshold marks a topic as weak when proficiency falls below it.
const weakTopicThreshold = 0.7

// Transcript messages. The error texts are the single user-visible entry a
// backend failure produces; the orchestrator then returns to the last
// stable state.
const (
	msgProblemsFailed = "Error generating practice problems. Please try again later."
	msgGuideFailed    = "Error generating study guide. Please try again later."
	msgNoProblems     = "No practice problems were generated. Please try again with different parameters."
	msgCorrect        = "Correct!"
	msgDeferred       = "Answer recorded. This question is graded by the course staff."
)

// Orchestrator owns the active StudySession and transcript for the current
// course selection. Exactly one generation request is current at a time;
// issuing a new request or selecting a course marks older in-flight results
// stale, and they are discarded on arrival.
type Orchestrator struct {
	client studyapi.Client
	agg    *progress.Aggregator
	log    *zap.Logger
	userID string

	mu         sync.Mutex
	state      State
	course     *studyapi.Course
	problems   map[string]studyapi.PracticeProblem
	order      []string
	guide      *studyapi.StudyGuide
	transcript transcript.Transcript
	active     *StudySession
	generation uint64

	now func() time.Time
}

// New creates an orchestrator for the given user. The aggregator is
// injected so progress can outlive course switches and be shared with
// report views.
func New(client studyapi.Client, agg *progress.Aggregator, log *zap.Logger, userID string) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		client: client,
		agg:    agg,
		log:    log,
		userID: userID,
		state:  StateIdle,
		now:    time.Now,
	}
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Course returns the selected course, or nil.
func (o *Orchestrator) Course() *studyapi.Course {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.course == nil {
		return nil
	}
	c := *o.course
	return &c
}

// Problems returns the current problem set in generation order.
func (o *Orchestrator) Problems() []studyapi.PracticeProblem {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]studyapi.PracticeProblem, 0, len(o.order))
	for _, id := range o.order {
		out = append(out, o.problems[id])
	}
	return out
}

// Guide returns the current study guide, or nil.
func (o *Orchestrator) Guide() *studyapi.StudyGuide {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.guide == nil {
		return nil
	}
	g := *o.guide
	return &g
}

// Transcript returns a snapshot of the transcript entries in order.
func (o *Orchestrator) Transcript() []transcript.Entry {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []transcript.Entry
	for e := range o.transcript.All() {
		out = append(out, e)
	}
	return out
}

// ActiveSession returns a copy of the open study session, or nil.
func (o *Orchestrator) ActiveSession() *StudySession {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.active == nil {
		return nil
	}
	s := *o.active
	return &s
}

// SelectCourse moves to CourseSelected from any state. The transcript is
// reset to a single greeting entry, the problem set and guide are cleared,
// any open session is closed as superseded, and any in-flight generation
// result becomes stale. Cross-session progress is untouched.
func (o *Orchestrator) SelectCourse(course studyapi.Course) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generation++ // last selection wins
	o.closeActiveLocked("")

	o.course = &course
	o.problems = nil
	o.order = nil
	o.guide = nil
	o.state = StateCourseSelected

	o.transcript.Reset()
	o.transcript.Append(transcript.SenderBot, "Selected course: "+course.Label())

	o.log.Info("course selected",
		zap.String("course_id", course.ID),
		zap.String("course", course.Label()),
	)
}

// RequestPracticeProblems starts an asynchronous generation request for the
// given topics. Validation failures are returned synchronously before any
// request is issued. The returned channel receives the terminal outcome:
// nil on success, the backend error on failure, or ErrSuperseded if a newer
// selection or request made this one stale.
func (o *Orchestrator) RequestPracticeProblems(ctx context.Context, topics []string, difficulty studyapi.Difficulty, qtype studyapi.QuestionType) (<-chan error, error) {
	o.mu.Lock()

	if err := o.canRequestLocked(topics); err != nil {
		o.mu.Unlock()
		return nil, err
	}
	if qtype != "" && !qtype.Valid() {
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", evaluator.ErrInvalidQuestionType, qtype)
	}

	course := *o.course
	o.generation++
	gen := o.generation
	o.state = StateAwaitingGeneration
	words := []string{"Generating"}
	if difficulty != "" {
		words = append(words, string(difficulty))
	}
	if qtype != "" {
		words = append(words, string(qtype))
	}
	words = append(words, "practice problems for", course.SubjectCode, course.Number)
	o.transcript.Append(transcript.SenderUser, strings.Join(words, " "))
	o.mu.Unlock()

	req := studyapi.ProblemRequest{
		CourseID:     course.ID,
		Topics:       topics,
		Difficulty:   difficulty,
		QuestionType: qtype,
	}

	done := make(chan error, 1)
	go func() {
		problems, err := o.client.GeneratePracticeProblems(ctx, req)
		done <- o.resolveProblems(gen, topics, problems, err)
	}()
	return done, nil
}

// resolveProblems applies a finished generation request, unless stale.
func (o *Orchestrator) resolveProblems(gen uint64, topics []string, problems []studyapi.PracticeProblem, err error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		// A newer selection or request won; discard without a trace.
		o.log.Debug("discarding stale problem set", zap.Uint64("generation", gen))
		return ErrSuperseded
	}

	if err != nil {
		o.transcript.Append(transcript.SenderBot, msgProblemsFailed)
		o.state = StateCourseSelected
		o.log.Warn("practice problem generation failed", zap.Error(err))
		return err
	}

	if len(problems) == 0 {
		o.transcript.Append(transcript.SenderBot, msgNoProblems)
		o.state = StateCourseSelected
		return nil
	}

	o.closeActiveLocked("")
	o.active = &StudySession{
		ID:            uuid.NewString(),
		UserID:        o.userID,
		CourseID:      o.course.ID,
		StartTime:     o.now(),
		TopicsCovered: topics,
	}

	o.problems = make(map[string]studyapi.PracticeProblem, len(problems))
	o.order = o.order[:0]
	for _, p := range problems {
		o.problems[p.ID] = p
		o.order = append(o.order, p.ID)
		// Only the question is surfaced here; answers and explanations
		// stay on the problem data until after an attempt.
		o.transcript.Append(transcript.SenderBot, "Question: "+p.QuestionText)
	}
	o.guide = nil
	o.state = StateProblemsReady
	return nil
}

// RequestStudyGuide starts an asynchronous study-guide generation request.
// Same validation and staleness semantics as RequestPracticeProblems. The
// student's weak topics are passed along so the backend can focus the guide.
func (o *Orchestrator) RequestStudyGuide(ctx context.Context, topics []string) (<-chan error, error) {
	o.mu.Lock()

	if err := o.canRequestLocked(topics); err != nil {
		o.mu.Unlock()
		return nil, err
	}

	course := *o.course
	o.generation++
	gen := o.generation
	o.state = StateAwaitingGeneration
	o.transcript.Append(transcript.SenderUser, "Generating study guide for "+course.Label())
	o.mu.Unlock()

	req := studyapi.GuideRequest{
		CourseID:    course.ID,
		Topics:      topics,
		FocusTopics: o.agg.WeakTopics(o.userID, course.ID, weakTopicThreshold),
	}

	done := make(chan error, 1)
	go func() {
		guide, err := o.client.GenerateStudyGuide(ctx, req)
		done <- o.resolveGuide(gen, guide, err)
	}()
	return done, nil
}

func (o *Orchestrator) resolveGuide(gen uint64, guide *studyapi.StudyGuide, err error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		o.log.Debug("discarding stale study guide", zap.Uint64("generation", gen))
		return ErrSuperseded
	}

	if err != nil {
		o.transcript.Append(transcript.SenderBot, msgGuideFailed)
		o.state = StateCourseSelected
		o.log.Warn("study guide generation failed", zap.Error(err))
		return err
	}

	o.guide = guide
	o.problems = nil
	o.order = nil
	o.transcript.Append(transcript.SenderBot, guide.Content)
	o.state = StateGuideReady
	return nil
}

// SubmitAnswer evaluates a submission against the referenced problem,
// records the outcome, and appends the exchange to the transcript.
// Valid only in ProblemsReady; the state does not change.
//
// Deferred verdicts (coding without a backend confirmation) are appended to
// the attempted list but touch neither the session score nor the progress
// counters.
func (o *Orchestrator) SubmitAnswer(problemID, submitted string) (evaluator.Verdict, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateProblemsReady {
		return evaluator.Verdict{}, fmt.Errorf("%w: %s", ErrInvalidState, o.state)
	}
	problem, ok := o.problems[problemID]
	if !ok {
		return evaluator.Verdict{}, fmt.Errorf("%w: %s", ErrUnknownProblem, problemID)
	}
	if o.active == nil {
		return evaluator.Verdict{}, ErrNoActiveSession
	}
	if o.active.Attempted(problemID) {
		return evaluator.Verdict{}, fmt.Errorf("%w: %s", ErrDuplicateSubmission, problemID)
	}

	verdict, err := evaluator.Evaluate(submitted, problem.Answer, problem.QuestionType)
	if err != nil {
		return evaluator.Verdict{}, err
	}

	if verdict.Counts() {
		o.agg.Record(o.userID, problem.CourseID, problem.Topic, verdict.Correct())
	}
	o.active.recordAttempt(problemID, verdict.Counts(), verdict.Correct())

	o.transcript.Append(transcript.SenderUser, submitted)
	o.transcript.Append(transcript.SenderBot, answerFeedback(verdict, problem))

	return verdict, nil
}

// answerFeedback builds the bot reply for an attempt. The explanation is
// revealed only after the attempt, and only when the answer was wrong.
func answerFeedback(v evaluator.Verdict, p studyapi.PracticeProblem) string {
	switch v.Result {
	case evaluator.ResultCorrect:
		return msgCorrect
	case evaluator.ResultUnknown:
		return msgDeferred
	default:
		msg := "Incorrect. The expected answer was: " + p.Answer
		if p.Explanation != "" {
			msg += "\n\nExplanation: " + p.Explanation
		}
		return msg
	}
}

// EndSession closes the active study session, computing its score as the
// mean correctness across scored attempts, and returns the closed session.
// The orchestrator returns to Idle.
func (o *Orchestrator) EndSession(feedback string) (*StudySession, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.active == nil {
		return nil, ErrNoActiveSession
	}

	closed := o.closeActiveLocked(feedback)
	o.generation++
	o.course = nil
	o.problems = nil
	o.order = nil
	o.guide = nil
	o.state = StateIdle
	return closed, nil
}

// closeActiveLocked closes the open session, if any, and returns it.
// Caller holds o.mu.
func (o *Orchestrator) closeActiveLocked(feedback string) *StudySession {
	if o.active == nil {
		return nil
	}
	s := o.active
	s.close(o.now(), feedback)
	o.active = nil
	o.log.Info("study session closed",
		zap.String("session_id", s.ID),
		zap.Int("attempted", len(s.ProblemsAttempted)),
	)
	return s
}

// Progress returns the per-topic progress for the given course, ordered by
// topic name.
func (o *Orchestrator) Progress(courseID string) []progress.StudentProgress {
	return o.agg.Summarize(o.userID, courseID)
}

// InstructorReport requests the aggregated struggle report for a course.
// Stateless with respect to the session machine.
func (o *Orchestrator) InstructorReport(ctx context.Context, courseID string) (*studyapi.InstructorReport, error) {
	report, err := o.client.GenerateInstructorReport(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("generate instructor report: %w", err)
	}
	return report, nil
}

// Struggles merges the backend's per-topic struggle scores with the locally
// observed ones. Local scores win for topics present in both.
func (o *Orchestrator) Struggles(ctx context.Context, courseID string) (map[string]float64, error) {
	remote, err := o.client.StruggleData(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("fetch struggle data: %w", err)
	}
	merged := make(map[string]float64, len(remote))
	for topic, score := range remote {
		merged[topic] = score
	}
	for topic, score := range o.agg.Struggles(o.userID, courseID) {
		merged[topic] = score
	}
	return merged, nil
}

// canRequestLocked validates the preconditions shared by both generation
// requests. Caller holds o.mu.
func (o *Orchestrator) canRequestLocked(topics []string) error {
	if o.course == nil {
		return ErrNoCourseSelected
	}
	switch o.state {
	case StateCourseSelected, StateProblemsReady, StateGuideReady:
	case StateAwaitingGeneration:
		// Allowed: the newer request wins and the pending one goes stale.
	default:
		return fmt.Errorf("%w: %s", ErrInvalidState, o.state)
	}
	if len(topics) == 0 {
		return ErrNoTopicsSelected
	}
	return nil
}
