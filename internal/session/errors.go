package session

import "errors"

var (
	// ErrNoCourseSelected is returned when an operation requires a selected
	// course and none is.
	ErrNoCourseSelected = errors.New("no course selected")

	// ErrNoTopicsSelected is returned when a generation request names zero
	// topics. Rejected before any request is issued.
	ErrNoTopicsSelected = errors.New("no topics selected")

	// ErrInvalidState is returned when the operation is not valid in the
	// orchestrator's current state.
	ErrInvalidState = errors.New("operation not valid in current state")

	// ErrUnknownProblem is returned when a submission references a problem
	// id not in the current problem set.
	ErrUnknownProblem = errors.New("problem not in current problem set")

	// ErrDuplicateSubmission is returned when a problem id has already been
	// submitted in the active session. The attempt is not re-scored.
	ErrDuplicateSubmission = errors.New("problem already submitted in this session")

	// ErrNoActiveSession is returned by EndSession when no study session is
	// open.
	ErrNoActiveSession = errors.New("no active study session")

	// ErrSuperseded reports that a generation request's result arrived
	// after a newer selection or request and was discarded. Last selection
	// wins; the transcript is untouched.
	ErrSuperseded = errors.New("generation request superseded")
)
