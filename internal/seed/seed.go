package seed

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/grades"
	lf "github.com/bigredeye/gradebook/internal/logfield"
	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/roster"
)

type Report struct {
	Subjects int
	Students int
	Outcomes map[grades.Outcome]int
}

type Loader struct {
	roster   *roster.Service
	recorder *grades.Recorder
	logger   *zap.Logger
}

func NewLoader(roster *roster.Service, recorder *grades.Recorder, logger *zap.Logger) *Loader {
	return &Loader{
		roster:   roster,
		recorder: recorder,
		logger:   logger.With(lf.Module("seed")),
	}
}

// Load inserts the fixture's subjects and students, then replays every grade through the
// recorder. A grade without a date is stamped with the current time.
func (l *Loader) Load(ctx context.Context, fixture *Fixture) (*Report, error) {
	report := &Report{Outcomes: make(map[grades.Outcome]int)}

	for _, entry := range fixture.Subjects {
		subject := &models.Subject{Code: entry.Code, Name: entry.Name, Teacher: entry.Teacher}
		if err := l.roster.SaveSubject(ctx, subject); err != nil {
			return report, errors.Wrapf(err, "Failed to add subject %s", entry.Code)
		}
		report.Subjects++
	}

	for _, entry := range fixture.Students {
		student := &models.Student{FirstName: entry.First, LastName: entry.Last, Email: entry.Email}
		if err := l.roster.SaveStudent(ctx, student); err != nil {
			return report, errors.Wrapf(err, "Failed to add student %s %s", entry.First, entry.Last)
		}
		report.Students++

		for _, grade := range entry.Grades {
			var outcome grades.Outcome
			var err error
			if grade.Date.IsZero() {
				outcome, err = l.recorder.RecordGrade(ctx, student.ID, grade.Subject, grade.Grade)
			} else {
				outcome, err = l.recorder.RecordGradeAt(ctx, student.ID, grade.Subject, grade.Grade, grade.Date.Time)
			}
			if err != nil {
				return report, errors.Wrapf(err, "Failed to record %s for %s", grade.Subject, student.FullName())
			}
			report.Outcomes[outcome]++
		}
	}

	l.logger.Info("Loaded fixture",
		zap.Int("num_subjects", report.Subjects),
		zap.Int("num_students", report.Students),
		zap.Int("num_added", report.Outcomes[grades.OutcomeAdded]),
		zap.Int("num_upgraded", report.Outcomes[grades.OutcomeUpgraded]),
		zap.Int("num_unchanged", report.Outcomes[grades.OutcomeUnchanged]),
	)
	return report, nil
}
