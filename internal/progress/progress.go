// Package progress folds attempt outcomes into per-topic proficiency
// records for the signed-in user.
package progress

import (
	"sort"
	"sync"
	"time"
)

// StudentProgress is the proficiency record for one (user, course, topic).
type StudentProgress struct {
	UserID   string `json:"user_id"`
	CourseID string `json:"course_id"`
	Topic    string `json:"topic"`

	// ProficiencyScore is problems_correct / max(problems_attempted, 1),
	// always recomputed, never set independently.
	ProficiencyScore  float64   `json:"proficiency_score"`
	ProblemsAttempted int       `json:"problems_attempted"`
	ProblemsCorrect   int       `json:"problems_correct"`
	LastUpdated       time.Time `json:"last_updated"`
}

type key struct {
	userID   string
	courseID string
	topic    string
}

// Aggregator owns the full set of StudentProgress records for the signed-in
// user. Records live for the lifetime of the aggregator and span course
// switches; tear the aggregator down at sign-out.
//
// Mutations are serialized: course sessions may in principle record
// outcomes concurrently.
type Aggregator struct {
	mu      sync.Mutex
	records map[key]*StudentProgress

	// now is injectable for tests.
	now func() time.Time
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		records: make(map[key]*StudentProgress),
		now:     time.Now,
	}
}

// Record upserts the progress record for (user, course, topic): increments
// the attempted count, increments the correct count iff correct, and
// recomputes the proficiency score. Returns a copy of the updated record.
//
// The aggregator has no notion of duplicate problem attempts — callers
// de-duplicate by problem id before recording.
func (a *Aggregator) Record(userID, courseID, topic string, correct bool) StudentProgress {
	a.mu.Lock()
	defer a.mu.Unlock()

	k := key{userID: userID, courseID: courseID, topic: topic}
	rec, ok := a.records[k]
	if !ok {
		rec = &StudentProgress{
			UserID:   userID,
			CourseID: courseID,
			Topic:    topic,
		}
		a.records[k] = rec
	}

	rec.ProblemsAttempted++
	if correct {
		rec.ProblemsCorrect++
	}
	rec.ProficiencyScore = score(rec.ProblemsCorrect, rec.ProblemsAttempted)
	rec.LastUpdated = a.now()

	return *rec
}

// Get returns the record for (user, course, topic) and whether it exists.
func (a *Aggregator) Get(userID, courseID, topic string) (StudentProgress, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rec, ok := a.records[key{userID: userID, courseID: courseID, topic: topic}]
	if !ok {
		return StudentProgress{}, false
	}
	return *rec, true
}

// Summarize returns one record per topic the user has attempted in the
// course, ordered by topic name. Records are copies; mutating them does not
// affect the aggregator.
func (a *Aggregator) Summarize(userID, courseID string) []StudentProgress {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []StudentProgress
	for k, rec := range a.records {
		if k.userID == userID && k.courseID == courseID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

// WeakTopics returns the topics whose proficiency score is below threshold,
// ordered by topic name. Used to focus study guides on weaker areas.
func (a *Aggregator) WeakTopics(userID, courseID string, threshold float64) []string {
	var weak []string
	for _, rec := range a.Summarize(userID, courseID) {
		if rec.ProficiencyScore < threshold {
			weak = append(weak, rec.Topic)
		}
	}
	return weak
}

// Struggles returns a struggle score per attempted topic, defined as
// 1 − proficiency.
func (a *Aggregator) Struggles(userID, courseID string) map[string]float64 {
	out := make(map[string]float64)
	for _, rec := range a.Summarize(userID, courseID) {
		out[rec.Topic] = 1 - rec.ProficiencyScore
	}
	return out
}

func score(correct, attempted int) float64 {
	if attempted < 1 {
		return 0
	}
	return float64(correct) / float64(attempted)
}
