package roster

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	lf "github.com/bigredeye/gradebook/internal/logfield"
	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/store/base"
)

// DeleteStudent removes every grade record of the student and then the student itself.
// If any grade cannot be deleted the student is kept and a *CascadeError is returned.
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	log := s.logger.With(lf.StudentID(id))

	if _, err := s.FindStudent(ctx, id); err != nil {
		return err
	}

	records, err := s.store.ListGrades(ctx, id)
	if err != nil {
		log.Error("Failed to list grades for deletion", zap.Error(err))
		return &CascadeError{Kind: "student", ParentID: id, nested: base.Unavailable("list grades", err)}
	}

	if err := s.deleteGrades(ctx, id, records); err != nil {
		log.Error("Failed to delete student grades", zap.Error(err))
		return &CascadeError{Kind: "student", ParentID: id, nested: err}
	}

	if err := s.store.DeleteStudent(ctx, id); err != nil {
		log.Error("Failed to delete student", zap.Error(err))
		return &CascadeError{Kind: "student", ParentID: id, nested: base.Unavailable("delete student", err)}
	}

	log.Info("Deleted student", zap.Int("num_grades", len(records)))
	return nil
}

// DeleteSubject removes the grade records referencing the subject's course code from
// every student and then the subject itself.
func (s *Service) DeleteSubject(ctx context.Context, id string) error {
	log := s.logger.With(lf.SubjectID(id))

	subject, err := s.FindSubject(ctx, id)
	if err != nil {
		return err
	}
	log = log.With(lf.SubjectCode(subject.Code))

	students, err := s.store.ListStudents(ctx)
	if err != nil {
		log.Error("Failed to list students for deletion", zap.Error(err))
		return &CascadeError{Kind: "subject", ParentID: id, nested: base.Unavailable("list students", err)}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i := range students {
		studentID := students[i].ID
		g.Go(func() error {
			records, err := s.store.ListGrades(gctx, studentID)
			if err != nil {
				return base.Unavailable("list grades", err)
			}
			matching := make([]models.GradeRecord, 0, 1)
			for _, record := range records {
				if record.SubjectCode == subject.Code {
					matching = append(matching, record)
				}
			}
			return s.deleteGrades(gctx, studentID, matching)
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("Failed to delete subject grades", zap.Error(err))
		return &CascadeError{Kind: "subject", ParentID: id, nested: err}
	}

	if err := s.store.DeleteSubject(ctx, id); err != nil {
		log.Error("Failed to delete subject", zap.Error(err))
		return &CascadeError{Kind: "subject", ParentID: id, nested: base.Unavailable("delete subject", err)}
	}

	log.Info("Deleted subject")
	return nil
}

func (s *Service) deleteGrades(ctx context.Context, studentID string, records []models.GradeRecord) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range records {
		recordID := records[i].ID
		g.Go(func() error {
			if err := s.store.DeleteGrade(gctx, studentID, recordID); err != nil {
				return base.Unavailable("delete grade", err)
			}
			return nil
		})
	}
	return g.Wait()
}
