package progress

import (
	"reflect"
	"testing"
	"time"
)

func testAggregator() *Aggregator {
	a := NewAggregator()
	a.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return a
}

func TestRecord_FirstAttemptCreatesRecord(t *testing.T) {
	a := testAggregator()

	rec := a.Record("u1", "c1", "recursion", true)
	if rec.ProblemsAttempted != 1 {
		t.Errorf("ProblemsAttempted = %d, want 1", rec.ProblemsAttempted)
	}
	if rec.ProblemsCorrect != 1 {
		t.Errorf("ProblemsCorrect = %d, want 1", rec.ProblemsCorrect)
	}
	if rec.ProficiencyScore != 1.0 {
		t.Errorf("ProficiencyScore = %f, want 1.0", rec.ProficiencyScore)
	}
	if rec.LastUpdated.IsZero() {
		t.Error("LastUpdated not set")
	}
}

func TestRecord_CountersAndScore(t *testing.T) {
	a := testAggregator()

	// 4 attempts, 3 correct.
	outcomes := []bool{true, false, true, true}
	var rec StudentProgress
	for _, correct := range outcomes {
		rec = a.Record("u1", "c1", "recursion", correct)
	}

	if rec.ProblemsAttempted != 4 {
		t.Errorf("ProblemsAttempted = %d, want 4", rec.ProblemsAttempted)
	}
	if rec.ProblemsCorrect != 3 {
		t.Errorf("ProblemsCorrect = %d, want 3", rec.ProblemsCorrect)
	}
	if rec.ProficiencyScore != 0.75 {
		t.Errorf("ProficiencyScore = %f, want 0.75", rec.ProficiencyScore)
	}
	if rec.ProblemsCorrect > rec.ProblemsAttempted {
		t.Error("invariant violated: correct > attempted")
	}
}

func TestSummarize_OrderedByTopic(t *testing.T) {
	a := testAggregator()
	a.Record("u1", "c1", "trees", true)
	a.Record("u1", "c1", "graphs", false)
	a.Record("u1", "c1", "recursion", true)
	a.Record("u1", "c2", "pointers", true) // other course, excluded
	a.Record("u2", "c1", "graphs", true)   // other user, excluded

	recs := a.Summarize("u1", "c1")
	if len(recs) != 3 {
		t.Fatalf("len = %d, want 3", len(recs))
	}
	wantOrder := []string{"graphs", "recursion", "trees"}
	for i, w := range wantOrder {
		if recs[i].Topic != w {
			t.Errorf("recs[%d].Topic = %s, want %s", i, recs[i].Topic, w)
		}
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	a := testAggregator()
	a.Record("u1", "c1", "recursion", true)
	a.Record("u1", "c1", "graphs", false)

	first := a.Summarize("u1", "c1")
	second := a.Summarize("u1", "c1")
	if !reflect.DeepEqual(first, second) {
		t.Error("Summarize is not idempotent without new Record calls")
	}

	// Mutating the returned copy must not leak into the aggregator.
	first[0].ProblemsCorrect = 99
	if got, _ := a.Get("u1", "c1", first[0].Topic); got.ProblemsCorrect == 99 {
		t.Error("Summarize leaked internal state")
	}
}

func TestSummarize_EmptyCourse(t *testing.T) {
	a := testAggregator()
	if recs := a.Summarize("u1", "c1"); len(recs) != 0 {
		t.Errorf("len = %d, want 0", len(recs))
	}
}

func TestWeakTopics(t *testing.T) {
	a := testAggregator()
	// graphs: 0/2, recursion: 2/2, trees: 1/2.
	a.Record("u1", "c1", "graphs", false)
	a.Record("u1", "c1", "graphs", false)
	a.Record("u1", "c1", "recursion", true)
	a.Record("u1", "c1", "recursion", true)
	a.Record("u1", "c1", "trees", true)
	a.Record("u1", "c1", "trees", false)

	weak := a.WeakTopics("u1", "c1", 0.7)
	want := []string{"graphs", "trees"}
	if !reflect.DeepEqual(weak, want) {
		t.Errorf("WeakTopics = %v, want %v", weak, want)
	}
}

func TestStruggles(t *testing.T) {
	a := testAggregator()
	a.Record("u1", "c1", "graphs", false)
	a.Record("u1", "c1", "graphs", true)

	got := a.Struggles("u1", "c1")
	if got["graphs"] != 0.5 {
		t.Errorf("struggle score = %f, want 0.5", got["graphs"])
	}
}

func TestRecord_SurvivesCourseSwitch(t *testing.T) {
	a := testAggregator()
	a.Record("u1", "c1", "recursion", true)

	// Work in a different course, then come back.
	a.Record("u1", "c2", "pointers", false)

	rec, ok := a.Get("u1", "c1", "recursion")
	if !ok {
		t.Fatal("record for previous course vanished")
	}
	if rec.ProblemsAttempted != 1 || rec.ProblemsCorrect != 1 {
		t.Errorf("record changed: %+v", rec)
	}
}
