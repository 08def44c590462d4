package session

import "time"

// StudySession is one practice interaction: created when problems arrive,
// mutated as problems are attempted, closed on EndSession or when a new
// session supersedes it.
type StudySession struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	CourseID  string     `json:"course_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	// TopicsCovered is the topic set the problems were generated for.
	TopicsCovered []string `json:"topics_covered"`

	// ProblemsAttempted holds the attempted problem ids in submission
	// order, each at most once.
	ProblemsAttempted []string `json:"problems_attempted"`

	// Score is the mean correctness across scored attempts, set when the
	// session closes. Nil until then, and nil when nothing was scored
	// (e.g. only deferred coding answers).
	Score *float64 `json:"score"`

	// Feedback is externally supplied commentary, if any.
	Feedback *string `json:"feedback"`

	// scored/correct track locally gradable attempts only; deferred
	// verdicts contribute to neither.
	scored  int
	correct int
}

// Attempted reports whether the problem id is already in the attempted list.
func (s *StudySession) Attempted(problemID string) bool {
	for _, id := range s.ProblemsAttempted {
		if id == problemID {
			return true
		}
	}
	return false
}

// recordAttempt appends the problem id and folds a scored outcome in.
func (s *StudySession) recordAttempt(problemID string, scored, correct bool) {
	s.ProblemsAttempted = append(s.ProblemsAttempted, problemID)
	if scored {
		s.scored++
		if correct {
			s.correct++
		}
	}
}

// close sets the end time and computes the final score.
func (s *StudySession) close(now time.Time, feedback string) {
	if s.EndTime != nil {
		return
	}
	s.EndTime = &now
	if s.scored > 0 {
		score := float64(s.correct) / float64(s.scored)
		s.Score = &score
	}
	if feedback != "" {
		s.Feedback = &feedback
	}
}
