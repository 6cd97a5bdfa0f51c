package roster

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	lf "github.com/bigredeye/gradebook/internal/logfield"
	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/store/base"
)

type Service struct {
	store    base.RosterStore
	logger   *zap.Logger
	validate *validator.Validate
	matcher  *matcher

	parallelism int
}

func NewService(store base.RosterStore, logger *zap.Logger, parallelism int) *Service {
	if parallelism <= 0 {
		parallelism = 16
	}
	return &Service{
		store:       store,
		logger:      logger.With(lf.Module("roster")),
		validate:    validator.New(),
		matcher:     newMatcher(),
		parallelism: parallelism,
	}
}

func (s *Service) check(entity interface{}) error {
	err := s.validate.Struct(entity)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, fieldErr.Field())
	}
	return &ValidationError{Fields: fields}
}

func trimStudent(student *models.Student) {
	student.FirstName = strings.TrimSpace(student.FirstName)
	student.LastName = strings.TrimSpace(student.LastName)
	student.Email = strings.TrimSpace(student.Email)
}

func trimSubject(subject *models.Subject) {
	subject.Code = strings.TrimSpace(subject.Code)
	subject.Name = strings.TrimSpace(subject.Name)
	subject.Teacher = strings.TrimSpace(subject.Teacher)
}

// ListStudents returns students whose first or last name contains query.
func (s *Service) ListStudents(ctx context.Context, query string) ([]models.Student, error) {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, base.Unavailable("list students", err)
	}

	filtered := make([]models.Student, 0, len(students))
	for _, student := range students {
		if s.matcher.contains(query, student.FirstName, student.LastName) {
			filtered = append(filtered, student)
		}
	}
	return filtered, nil
}

// ListSubjects returns subjects whose name contains query.
func (s *Service) ListSubjects(ctx context.Context, query string) ([]models.Subject, error) {
	subjects, err := s.store.ListSubjects(ctx)
	if err != nil {
		return nil, base.Unavailable("list subjects", err)
	}

	filtered := make([]models.Subject, 0, len(subjects))
	for _, subject := range subjects {
		if s.matcher.contains(query, subject.Name) {
			filtered = append(filtered, subject)
		}
	}
	return filtered, nil
}

func (s *Service) ListGrades(ctx context.Context, studentID string) ([]models.GradeRecord, error) {
	if _, err := s.FindStudent(ctx, studentID); err != nil {
		return nil, err
	}
	records, err := s.store.ListGrades(ctx, studentID)
	if err != nil {
		return nil, base.Unavailable("list grades", err)
	}
	return records, nil
}

func (s *Service) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.store.FindStudent(ctx, id)
	if errors.Is(err, base.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, base.Unavailable("find student", err)
	}
	return student, nil
}

func (s *Service) FindSubject(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.store.FindSubject(ctx, id)
	if errors.Is(err, base.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, base.Unavailable("find subject", err)
	}
	return subject, nil
}

func (s *Service) SaveStudent(ctx context.Context, student *models.Student) error {
	trimStudent(student)
	if err := s.check(student); err != nil {
		return err
	}

	var err error
	if student.ID == "" {
		err = s.store.AddStudent(ctx, student)
	} else {
		err = s.store.UpdateStudent(ctx, student)
	}
	if errors.Is(err, base.ErrNotFound) {
		return err
	}
	if err != nil {
		s.logger.Error("Failed to save student", lf.StudentID(student.ID), zap.Error(err))
		return base.Unavailable("save student", err)
	}

	s.logger.Info("Saved student", lf.StudentID(student.ID))
	return nil
}

func (s *Service) SaveSubject(ctx context.Context, subject *models.Subject) error {
	trimSubject(subject)
	if err := s.check(subject); err != nil {
		return err
	}

	var err error
	if subject.ID == "" {
		err = s.store.AddSubject(ctx, subject)
	} else {
		err = s.store.UpdateSubject(ctx, subject)
	}
	if errors.Is(err, base.ErrNotFound) {
		return err
	}
	if err != nil {
		s.logger.Error("Failed to save subject", lf.SubjectID(subject.ID), zap.Error(err))
		return base.Unavailable("save subject", err)
	}

	s.logger.Info("Saved subject", lf.SubjectID(subject.ID), lf.SubjectCode(subject.Code))
	return nil
}
