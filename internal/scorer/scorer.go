package scorer

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bigredeye/gradebook/internal/grades"
	lf "github.com/bigredeye/gradebook/internal/logfield"
	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/store/base"
)

const DefaultParallelism = 16

type Scorer struct {
	store       base.GradeLister
	logger      *zap.Logger
	parallelism int
}

func NewScorer(store base.GradeLister, logger *zap.Logger, parallelism int) *Scorer {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}
	return &Scorer{
		store:       store,
		logger:      logger.With(lf.Module("scorer")),
		parallelism: parallelism,
	}
}

// ComputeDistributions counts, for every known course code, how many grade records hold
// each letter. Records with an unknown code or an invalid letter are skipped.
func ComputeDistributions(subjects []models.Subject, students []StudentGrades) Distribution {
	distribution := make(Distribution, len(subjects))
	for _, subject := range subjects {
		distribution[subject.Code] = NewHistogram()
	}

	for _, student := range students {
		for _, record := range student.Grades {
			histogram, found := distribution[record.SubjectCode]
			if !found {
				continue
			}
			letter, ok := grades.Parse(record.Grade)
			if !ok {
				continue
			}
			histogram[letter]++
		}
	}

	return distribution
}

func (s *Scorer) CalcDistributions(ctx context.Context) (Distribution, error) {
	subjects, err := s.store.ListSubjects(ctx)
	if err != nil {
		return nil, base.Unavailable("list subjects", err)
	}

	students, err := s.loadStudentGrades(ctx)
	if err != nil {
		return nil, err
	}

	return ComputeDistributions(subjects, students), nil
}

func (s *Scorer) CalcSubjectDistribution(ctx context.Context, code string) (Histogram, error) {
	distribution, err := s.CalcDistributions(ctx)
	if err != nil {
		return nil, err
	}

	histogram, found := distribution[code]
	if !found {
		return nil, errors.Wrapf(base.ErrNotFound, "Unknown subject %s", code)
	}
	return histogram, nil
}

// loadStudentGrades fetches every student's grades in parallel and returns only once all
// fetches are done. Any failure discards the whole batch.
func (s *Scorer) loadStudentGrades(ctx context.Context) ([]StudentGrades, error) {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, base.Unavailable("list students", err)
	}

	result := make([]StudentGrades, len(students))
	fetched := atomic.NewInt64(0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i := range students {
		i := i
		g.Go(func() error {
			records, err := s.store.ListGrades(gctx, students[i].ID)
			if err != nil {
				return base.Unavailable("list grades", err)
			}
			result[i] = StudentGrades{Student: students[i], Grades: records}
			fetched.Add(int64(len(records)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load student grades", zap.Error(err))
		return nil, err
	}

	s.logger.Debug("Loaded student grades",
		zap.Int("num_students", len(students)),
		zap.Int64("num_grades", fetched.Load()),
	)
	return result, nil
}
