// Package evaluator verdicts submitted answers against expected answers.
//
// The policy is deliberately strict: exact string equality after trimming,
// case-insensitive, with no partial credit. Anything beyond exact match is
// the grading backend's judgment; the evaluator only gates whether an
// attempt counts as correct for progress purposes.
package evaluator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/comp423-25s/csxl-team-f3/internal/studyapi"
)

// ErrInvalidQuestionType is returned when the question type is outside the
// closed set.
var ErrInvalidQuestionType = errors.New("invalid question type")

// Result is the outcome of evaluating one submitted answer.
type Result string

const (
	ResultCorrect   Result = "correct"
	ResultIncorrect Result = "incorrect"

	// ResultUnknown means grading is deferred to the backend (coding
	// questions with no backend confirmation). Unknown verdicts never
	// contribute to attempted/correct counters.
	ResultUnknown Result = "unknown"
)

// Verdict is the correctness outcome of one evaluation.
type Verdict struct {
	Result Result
}

// Correct reports whether the verdict is correct.
func (v Verdict) Correct() bool { return v.Result == ResultCorrect }

// Counts reports whether the verdict may touch progress counters.
func (v Verdict) Counts() bool { return v.Result != ResultUnknown }

// Evaluate compares a submitted answer against the expected answer.
//
// Normalization rules for multiple_choice and free_response:
// - Whitespace is trimmed
// - Comparison is case-insensitive
// - For multiple choice: the expected value is a comma-delimited option
//   list; the submission matches the list option-by-option, so spacing
//   around commas is ignored
//
// coding answers are never graded locally: Evaluate returns ResultUnknown
// (use EvaluateCoding when a backend keyword confirmation is available).
func Evaluate(submitted, expected string, qt studyapi.QuestionType) (Verdict, error) {
	switch qt {
	case studyapi.TypeFreeResponse:
		return verdict(equalFolded(submitted, expected)), nil

	case studyapi.TypeMultipleChoice:
		if equalFolded(submitted, expected) {
			return verdict(true), nil
		}
		return verdict(equalOptionLists(submitted, expected)), nil

	case studyapi.TypeCoding:
		return Verdict{Result: ResultUnknown}, nil

	default:
		return Verdict{}, fmt.Errorf("%w: %q", ErrInvalidQuestionType, qt)
	}
}

// EvaluateCoding grades a coding answer using a backend-supplied keyword
// confirmation: the answer is correct iff it contains the keyword
// (case-insensitive). An empty keyword means no backend verdict is present
// and grading stays deferred.
func EvaluateCoding(submitted, keyword string) Verdict {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return Verdict{Result: ResultUnknown}
	}
	hit := strings.Contains(strings.ToLower(submitted), strings.ToLower(keyword))
	return verdict(hit)
}

func verdict(correct bool) Verdict {
	if correct {
		return Verdict{Result: ResultCorrect}
	}
	return Verdict{Result: ResultIncorrect}
}

func equalFolded(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// equalOptionLists compares two comma-delimited option lists
// option-by-option, ignoring case and spacing around commas.
func equalOptionLists(submitted, expected string) bool {
	sub := strings.Split(submitted, ",")
	exp := strings.Split(expected, ",")
	if len(sub) != len(exp) {
		return false
	}
	for i := range exp {
		if !equalFolded(sub[i], exp[i]) {
			return false
		}
	}
	return true
}
