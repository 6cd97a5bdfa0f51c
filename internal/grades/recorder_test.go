package grades

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/store/base"
	"github.com/bigredeye/gradebook/internal/store/memory"
)

var (
	addedAt    = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	modifiedAt = time.Date(2025, 2, 20, 9, 0, 0, 0, time.UTC)
)

type countingStore struct {
	base.GradeStore

	inserts int
	updates int
	finds   int
	failOn  string
}

var errBroken = errors.New("connection reset")

func (s *countingStore) FindGrade(ctx context.Context, studentID, subjectCode string) (*models.GradeRecord, error) {
	s.finds++
	if s.failOn == "find" {
		return nil, errBroken
	}
	return s.GradeStore.FindGrade(ctx, studentID, subjectCode)
}

func (s *countingStore) InsertGrade(ctx context.Context, studentID string, record *models.GradeRecord) error {
	s.inserts++
	if s.failOn == "insert" {
		return errBroken
	}
	return s.GradeStore.InsertGrade(ctx, studentID, record)
}

func (s *countingStore) UpdateGrade(ctx context.Context, studentID, recordID string, patch models.GradePatch) error {
	s.updates++
	if s.failOn == "update" {
		return errBroken
	}
	return s.GradeStore.UpdateGrade(ctx, studentID, recordID, patch)
}

func newTestRecorder() (*Recorder, *countingStore, *memory.Store) {
	mem := memory.NewStore()
	store := &countingStore{GradeStore: mem}
	recorder := NewRecorder(store, zap.NewNop())
	times := []time.Time{addedAt, modifiedAt}
	recorder.now = func() time.Time {
		now := times[0]
		if len(times) > 1 {
			times = times[1:]
		}
		return now
	}
	return recorder, store, mem
}

func record(t *testing.T, r *Recorder, grades ...string) []Outcome {
	outcomes := make([]Outcome, 0, len(grades))
	for _, grade := range grades {
		outcome, err := r.RecordGrade(context.Background(), "s1", "CS101", grade)
		if err != nil {
			t.Fatalf("Failed to record grade %q: %v", grade, err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func storedGrade(t *testing.T, mem *memory.Store) *models.GradeRecord {
	found, err := mem.FindGrade(context.Background(), "s1", "CS101")
	if err != nil {
		t.Fatal("Failed to find grade:", err)
	}
	if found == nil {
		t.Fatal("No grade stored")
	}
	return found
}

func TestUpgradeOnBetterGrade(t *testing.T) {
	for i := len(Letters) - 1; i > 0; i-- {
		for j := i - 1; j >= 0; j-- {
			worse, better := string(Letters[i]), string(Letters[j])
			recorder, _, mem := newTestRecorder()

			outcomes := record(t, recorder, worse, better)
			if diff := cmp.Diff([]Outcome{OutcomeAdded, OutcomeUpgraded}, outcomes); diff != "" {
				t.Fatalf("%s then %s (-want +got):\n%s", worse, better, diff)
			}

			stored := storedGrade(t, mem)
			if stored.Grade != better {
				t.Fatalf("Invalid stored grade: %s, expected: %s", stored.Grade, better)
			}
			if stored.DateModified == nil || !stored.DateModified.Equal(modifiedAt) {
				t.Fatalf("Invalid modification date: %v", stored.DateModified)
			}
		}
	}
}

func TestSameGradeIsNoop(t *testing.T) {
	for _, letter := range Letters {
		recorder, store, mem := newTestRecorder()

		outcomes := record(t, recorder, string(letter), string(letter))
		if diff := cmp.Diff([]Outcome{OutcomeAdded, OutcomeUnchanged}, outcomes); diff != "" {
			t.Fatalf("%s twice (-want +got):\n%s", letter, diff)
		}

		expected := &models.GradeRecord{
			StudentID:   "s1",
			SubjectCode: "CS101",
			Grade:       string(letter),
			DateAdded:   addedAt,
		}
		stored := storedGrade(t, mem)
		expected.ID = stored.ID
		if diff := cmp.Diff(expected, stored); diff != "" {
			t.Fatalf("Record changed (-want +got):\n%s", diff)
		}
		if store.updates != 0 || store.inserts != 1 {
			t.Fatalf("Unexpected writes: %d inserts, %d updates", store.inserts, store.updates)
		}
	}
}

func TestNeverDowngrade(t *testing.T) {
	recorder, store, mem := newTestRecorder()

	outcomes := record(t, recorder, "B", "d", "F", "b")
	expected := []Outcome{OutcomeAdded, OutcomeUnchanged, OutcomeUnchanged, OutcomeUnchanged}
	if diff := cmp.Diff(expected, outcomes); diff != "" {
		t.Fatalf("Unexpected outcomes (-want +got):\n%s", diff)
	}
	if stored := storedGrade(t, mem); stored.Grade != "B" {
		t.Fatalf("Invalid stored grade: %s, expected: B", stored.Grade)
	}
	if store.updates != 0 {
		t.Fatalf("Unexpected updates: %d", store.updates)
	}
}

func TestLowercaseIsCanonicalized(t *testing.T) {
	recorder, _, mem := newTestRecorder()

	record(t, recorder, "c")
	if stored := storedGrade(t, mem); stored.Grade != "C" {
		t.Fatalf("Invalid stored grade: %q, expected: %q", stored.Grade, "C")
	}
}

func TestInvalidGrade(t *testing.T) {
	for _, grade := range []string{"G", "", "1", "a-", "Z"} {
		recorder, store, _ := newTestRecorder()

		_, err := recorder.RecordGrade(context.Background(), "s1", "CS101", grade)
		if !errors.Is(err, ErrInvalidGrade) {
			t.Fatalf("Expected ErrInvalidGrade for %q, got %v", grade, err)
		}
		if store.finds+store.inserts+store.updates != 0 {
			t.Fatalf("Store touched for invalid grade %q", grade)
		}
	}
}

func TestMissingArguments(t *testing.T) {
	recorder, store, _ := newTestRecorder()

	if _, err := recorder.RecordGrade(context.Background(), "s1", "", "A"); !errors.Is(err, ErrMissingArgument) {
		t.Fatalf("Expected ErrMissingArgument, got %v", err)
	}
	if _, err := recorder.RecordGrade(context.Background(), "", "CS101", "A"); !errors.Is(err, ErrMissingArgument) {
		t.Fatalf("Expected ErrMissingArgument, got %v", err)
	}
	if store.finds != 0 {
		t.Fatal("Store touched for missing arguments")
	}
}

func TestSubjectsAreIndependent(t *testing.T) {
	recorder, _, mem := newTestRecorder()
	ctx := context.Background()

	for _, code := range []string{"CS101", "MA101"} {
		outcome, err := recorder.RecordGrade(ctx, "s1", code, "E")
		if err != nil {
			t.Fatal(err)
		}
		if outcome != OutcomeAdded {
			t.Fatalf("Invalid outcome for %s: %s", code, outcome)
		}
	}

	records, err := mem.ListGrades(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("Invalid number of records: %d, expected: 2", len(records))
	}
}

func TestCorruptStoredGradeIsReplaced(t *testing.T) {
	recorder, _, mem := newTestRecorder()
	ctx := context.Background()

	err := mem.InsertGrade(ctx, "s1", &models.GradeRecord{SubjectCode: "CS101", Grade: "?", DateAdded: addedAt})
	if err != nil {
		t.Fatal(err)
	}

	outcomes := record(t, recorder, "F")
	if outcomes[0] != OutcomeUpgraded {
		t.Fatalf("Invalid outcome: %s, expected: %s", outcomes[0], OutcomeUpgraded)
	}
	if stored := storedGrade(t, mem); stored.Grade != "F" {
		t.Fatalf("Invalid stored grade: %s", stored.Grade)
	}
}

func TestStoreFailures(t *testing.T) {
	for _, op := range []string{"find", "insert", "update"} {
		recorder, store, mem := newTestRecorder()
		if op == "update" {
			err := mem.InsertGrade(context.Background(), "s1", &models.GradeRecord{SubjectCode: "CS101", Grade: "F"})
			if err != nil {
				t.Fatal(err)
			}
		}
		store.failOn = op

		_, err := recorder.RecordGrade(context.Background(), "s1", "CS101", "A")
		if !base.IsStoreUnavailable(err) {
			t.Fatalf("Expected StoreUnavailable on %s, got %v", op, err)
		}
		if !errors.Is(err, errBroken) {
			t.Fatalf("Store error lost on %s: %v", op, err)
		}
	}
}

func TestRecordGradeAt(t *testing.T) {
	recorder, _, mem := newTestRecorder()
	at := time.Date(2021, 9, 1, 12, 30, 0, 0, time.UTC)

	outcome, err := recorder.RecordGradeAt(context.Background(), "s1", "CS101", "b", at)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != OutcomeAdded {
		t.Fatalf("Invalid outcome: %s, expected: %s", outcome, OutcomeAdded)
	}

	stored := storedGrade(t, mem)
	expected := &models.GradeRecord{
		ID:          stored.ID,
		StudentID:   "s1",
		SubjectCode: "CS101",
		Grade:       "B",
		DateAdded:   at,
	}
	if diff := cmp.Diff(expected, stored); diff != "" {
		t.Fatalf("Stored record mismatch (-want +got):\n%s", diff)
	}
}
