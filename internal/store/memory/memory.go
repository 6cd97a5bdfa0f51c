package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/store/base"
)

// Store keeps the roster in process memory. Every read returns copies.
type Store struct {
	mu sync.RWMutex

	students map[string]models.Student
	subjects map[string]models.Subject
	// student id -> record id -> record
	grades map[string]map[string]models.GradeRecord
}

var _ base.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		students: make(map[string]models.Student),
		subjects: make(map[string]models.Subject),
		grades:   make(map[string]map[string]models.GradeRecord),
	}
}

func newID() string {
	return uuid.New().String()
}

func (s *Store) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	subjects := make([]models.Subject, 0, len(s.subjects))
	for _, subject := range s.subjects {
		subjects = append(subjects, subject)
	}
	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].Code != subjects[j].Code {
			return subjects[i].Code < subjects[j].Code
		}
		return subjects[i].ID < subjects[j].ID
	})
	return subjects, nil
}

func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := make([]models.Student, 0, len(s.students))
	for _, student := range s.students {
		students = append(students, student)
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].LastName != students[j].LastName {
			return students[i].LastName < students[j].LastName
		}
		return students[i].ID < students[j].ID
	})
	return students, nil
}

func (s *Store) ListGrades(ctx context.Context, studentID string) ([]models.GradeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.GradeRecord, 0, len(s.grades[studentID]))
	for _, record := range s.grades[studentID] {
		records = append(records, copyRecord(record))
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].DateAdded.Equal(records[j].DateAdded) {
			return records[i].DateAdded.Before(records[j].DateAdded)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

func (s *Store) FindGrade(ctx context.Context, studentID, subjectCode string) (*models.GradeRecord, error) {
	records, err := s.ListGrades(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].SubjectCode == subjectCode {
			return &records[i], nil
		}
	}
	return nil, nil
}

func (s *Store) InsertGrade(ctx context.Context, studentID string, record *models.GradeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = newID()
	record.StudentID = studentID
	if _, found := s.grades[studentID]; !found {
		s.grades[studentID] = make(map[string]models.GradeRecord)
	}
	s.grades[studentID][record.ID] = copyRecord(*record)
	return nil
}

func (s *Store) UpdateGrade(ctx context.Context, studentID, recordID string, patch models.GradePatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record, found := s.grades[studentID][recordID]
	if !found {
		return base.ErrNotFound
	}
	record.Apply(patch)
	s.grades[studentID][recordID] = record
	return nil
}

func (s *Store) DeleteGrade(ctx context.Context, studentID, recordID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.grades[studentID], recordID)
	return nil
}

func (s *Store) AddStudent(ctx context.Context, student *models.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	student.ID = newID()
	s.students[student.ID] = *student
	return nil
}

func (s *Store) UpdateStudent(ctx context.Context, student *models.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.students[student.ID]; !found {
		return base.ErrNotFound
	}
	s.students[student.ID] = *student
	return nil
}

func (s *Store) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, found := s.students[id]
	if !found {
		return nil, base.ErrNotFound
	}
	return &student, nil
}

// DeleteStudent removes only the student document. Grades live in a separate map, the
// same way a Firestore subcollection outlives its parent document.
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.students, id)
	if len(s.grades[id]) == 0 {
		delete(s.grades, id)
	}
	return nil
}

func (s *Store) AddSubject(ctx context.Context, subject *models.Subject) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	subject.ID = newID()
	s.subjects[subject.ID] = *subject
	return nil
}

func (s *Store) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.subjects[subject.ID]; !found {
		return base.ErrNotFound
	}
	s.subjects[subject.ID] = *subject
	return nil
}

func (s *Store) FindSubject(ctx context.Context, id string) (*models.Subject, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	subject, found := s.subjects[id]
	if !found {
		return nil, base.ErrNotFound
	}
	return &subject, nil
}

func (s *Store) DeleteSubject(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subjects, id)
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

func copyRecord(record models.GradeRecord) models.GradeRecord {
	if record.DateModified != nil {
		modified := *record.DateModified
		record.DateModified = &modified
	}
	return record
}
