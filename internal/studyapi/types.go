package studyapi

import "time"

// Difficulty is the requested difficulty for generated practice problems.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionType describes how a practice problem is answered.
type QuestionType string

const (
	// TypeMultipleChoice means the expected answer is a comma-delimited
	// option list; the full list is the canonical correct value.
	TypeMultipleChoice QuestionType = "multiple_choice"

	// TypeFreeResponse means the learner types a short answer compared
	// verbatim against the expected answer.
	TypeFreeResponse QuestionType = "free_response"

	// TypeCoding means the answer is code. Grading is deferred to the
	// backend; nothing is executed client-side.
	TypeCoding QuestionType = "coding"
)

// Valid reports whether qt is one of the closed set of question types.
func (qt QuestionType) Valid() bool {
	switch qt {
	case TypeMultipleChoice, TypeFreeResponse, TypeCoding:
		return true
	}
	return false
}

// Course is a catalog entry supplied by the academics API.
// Immutable from this core's perspective.
type Course struct {
	ID          string    `json:"id"`
	SubjectCode string    `json:"subject_code"`
	Number      string    `json:"number"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Topics      []string  `json:"topics"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Label returns the display label used in transcript messages,
// e.g. "COMP 301 - Foundations of Software Engineering".
func (c Course) Label() string {
	return c.SubjectCode + " " + c.Number + " - " + c.Title
}

// PracticeProblem is a generated problem. Immutable once received.
type PracticeProblem struct {
	ID           string       `json:"id"`
	CourseID     string       `json:"course_id"`
	Topic        string       `json:"topic"`
	Difficulty   Difficulty   `json:"difficulty"`
	QuestionType QuestionType `json:"question_type"`
	QuestionText string       `json:"question_text"`

	// Answer is the canonical correct answer. For multiple choice it is the
	// comma-delimited option list itself.
	Answer      string    `json:"answer"`
	Explanation string    `json:"explanation"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StudyGuide is a generated guide for a set of topics. Immutable.
type StudyGuide struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Topic     string    `json:"topic"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InstructorReport is an aggregated struggle report for a course.
// Not tied to a specific student.
type InstructorReport struct {
	CourseID    string    `json:"course_id"`
	Report      string    `json:"report"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ProblemRequest describes a practice-problem generation request.
type ProblemRequest struct {
	CourseID     string
	Topics       []string
	Difficulty   Difficulty
	QuestionType QuestionType
}

// GuideRequest describes a study-guide generation request.
type GuideRequest struct {
	CourseID string
	Topics   []string

	// FocusTopics are the topics the student is weakest in, so the backend
	// can weight the guide toward them. Optional.
	FocusTopics []string
}
