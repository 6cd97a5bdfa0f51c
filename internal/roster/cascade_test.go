package roster

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/scorer"
	"github.com/bigredeye/gradebook/internal/store/base"
	"github.com/bigredeye/gradebook/internal/store/memory"
)

// recordingStore logs the order of deletes and can fail a chosen grade delete.
type recordingStore struct {
	*memory.Store

	mu         sync.Mutex
	deletes    []string
	failRecord string
}

func (s *recordingStore) DeleteGrade(ctx context.Context, studentID, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if recordID == s.failRecord {
		return errors.New("unavailable")
	}
	s.deletes = append(s.deletes, "grade:"+recordID)
	return s.Store.DeleteGrade(ctx, studentID, recordID)
}

func (s *recordingStore) DeleteStudent(ctx context.Context, id string) error {
	s.mu.Lock()
	s.deletes = append(s.deletes, "student:"+id)
	s.mu.Unlock()
	return s.Store.DeleteStudent(ctx, id)
}

func (s *recordingStore) DeleteSubject(ctx context.Context, id string) error {
	s.mu.Lock()
	s.deletes = append(s.deletes, "subject:"+id)
	s.mu.Unlock()
	return s.Store.DeleteSubject(ctx, id)
}

type fixture struct {
	store    *recordingStore
	service  *Service
	subjects []*models.Subject
	students []*models.Student
	records  map[string][]*models.GradeRecord
}

func newFixture(t *testing.T) *fixture {
	ctx := context.Background()
	store := &recordingStore{Store: memory.NewStore()}
	f := &fixture{
		store:   store,
		service: NewService(store, zap.NewNop(), 2),
		records: make(map[string][]*models.GradeRecord),
	}

	for _, code := range []string{"CS101", "MA101"} {
		subject := &models.Subject{Code: code, Name: code, Teacher: "T"}
		if err := store.AddSubject(ctx, subject); err != nil {
			t.Fatal(err)
		}
		f.subjects = append(f.subjects, subject)
	}
	for _, name := range []string{"s1", "s2"} {
		student := &models.Student{FirstName: name, LastName: name}
		if err := store.AddStudent(ctx, student); err != nil {
			t.Fatal(err)
		}
		f.students = append(f.students, student)
		for _, code := range []string{"CS101", "MA101"} {
			record := &models.GradeRecord{SubjectCode: code, Grade: "B"}
			if err := store.InsertGrade(ctx, student.ID, record); err != nil {
				t.Fatal(err)
			}
			f.records[student.ID] = append(f.records[student.ID], record)
		}
	}
	return f
}

func TestDeleteStudentCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s1 := f.students[0]

	if err := f.service.DeleteStudent(ctx, s1.ID); err != nil {
		t.Fatal("Failed to delete student:", err)
	}

	if len(f.store.deletes) != 3 {
		t.Fatalf("Unexpected deletes: %v", f.store.deletes)
	}
	if last := f.store.deletes[2]; last != "student:"+s1.ID {
		t.Fatalf("Student deleted before its grades: %v", f.store.deletes)
	}

	records, err := f.store.ListGrades(ctx, s1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("Grades survived student deletion: %+v", records)
	}

	distribution, err := scorer.NewScorer(f.store, zap.NewNop(), 2).CalcDistributions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, code := range []string{"CS101", "MA101"} {
		if distribution[code]["B"] != 1 {
			t.Fatalf("Deleted student still counted for %s: %v", code, distribution[code])
		}
	}
}

func TestDeleteStudentCascadeFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s1 := f.students[0]
	f.store.failRecord = f.records[s1.ID][1].ID

	err := f.service.DeleteStudent(ctx, s1.ID)
	var cascadeErr *CascadeError
	if !errors.As(err, &cascadeErr) {
		t.Fatalf("Expected CascadeError, got %v", err)
	}
	if cascadeErr.ParentID != s1.ID || !base.IsStoreUnavailable(err) {
		t.Fatalf("Unexpected cascade error: %v", err)
	}

	if _, err := f.store.FindStudent(ctx, s1.ID); err != nil {
		t.Fatal("Student removed despite failed cascade:", err)
	}

	f.store.failRecord = ""
	if err := f.service.DeleteStudent(ctx, s1.ID); err != nil {
		t.Fatal("Retry failed:", err)
	}
	if _, err := f.store.FindStudent(ctx, s1.ID); !errors.Is(err, base.ErrNotFound) {
		t.Fatalf("Student survived retried cascade: %v", err)
	}
}

func TestDeleteSubjectCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cs101 := f.subjects[0]

	if err := f.service.DeleteSubject(ctx, cs101.ID); err != nil {
		t.Fatal("Failed to delete subject:", err)
	}

	if last := f.store.deletes[len(f.store.deletes)-1]; last != "subject:"+cs101.ID {
		t.Fatalf("Subject deleted before its grades: %v", f.store.deletes)
	}
	for _, student := range f.students {
		records, err := f.store.ListGrades(ctx, student.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 1 || records[0].SubjectCode != "MA101" {
			t.Fatalf("Unexpected grades left for %s: %+v", student.ID, records)
		}
	}
}

func TestDeleteSubjectCascadeFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cs101 := f.subjects[0]
	f.store.failRecord = f.records[f.students[1].ID][0].ID

	err := f.service.DeleteSubject(ctx, cs101.ID)
	var cascadeErr *CascadeError
	if !errors.As(err, &cascadeErr) {
		t.Fatalf("Expected CascadeError, got %v", err)
	}
	if _, err := f.store.FindSubject(ctx, cs101.ID); err != nil {
		t.Fatal("Subject removed despite failed cascade:", err)
	}
}

func TestDeleteUnknown(t *testing.T) {
	f := newFixture(t)

	if err := f.service.DeleteSubject(context.Background(), "nope"); !errors.Is(err, base.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if err := f.service.DeleteStudent(context.Background(), "nope"); !errors.Is(err, base.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}
