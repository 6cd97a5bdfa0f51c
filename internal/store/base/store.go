package base

import (
	"context"

	"github.com/bigredeye/gradebook/internal/models"
)

// GradeStore is the part of the store the upsert engine needs.
type GradeStore interface {
	// FindGrade returns nil, nil when the student holds no grade for subjectCode.
	FindGrade(ctx context.Context, studentID, subjectCode string) (*models.GradeRecord, error)
	InsertGrade(ctx context.Context, studentID string, record *models.GradeRecord) error
	UpdateGrade(ctx context.Context, studentID, recordID string, patch models.GradePatch) error
}

// GradeLister is the read side used by the distribution aggregator.
type GradeLister interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
	ListGrades(ctx context.Context, studentID string) ([]models.GradeRecord, error)
}

type RosterStore interface {
	GradeLister

	AddStudent(ctx context.Context, student *models.Student) error
	UpdateStudent(ctx context.Context, student *models.Student) error
	FindStudent(ctx context.Context, id string) (*models.Student, error)
	DeleteStudent(ctx context.Context, id string) error

	AddSubject(ctx context.Context, subject *models.Subject) error
	UpdateSubject(ctx context.Context, subject *models.Subject) error
	FindSubject(ctx context.Context, id string) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id string) error

	DeleteGrade(ctx context.Context, studentID, recordID string) error
}

// Store is implemented by every backend. Deletes are idempotent: removing a missing
// record is not an error.
type Store interface {
	GradeStore
	RosterStore

	Close(ctx context.Context) error
}
