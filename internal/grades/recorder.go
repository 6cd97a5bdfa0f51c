package grades

import (
	"context"
	"time"

	"go.uber.org/zap"

	lf "github.com/bigredeye/gradebook/internal/logfield"
	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/store/base"
)

const (
	OutcomeAdded     = "added"
	OutcomeUpgraded  = "upgraded"
	OutcomeUnchanged = "unchanged"
)

type Outcome = string

// Recorder accepts grades under the improve-only policy: a student's grade for a subject
// is inserted once and afterwards only replaced by a strictly better letter.
//
// The lookup and the write are separate store calls. Two clients recording the same
// (student, subject) pair at once may both insert, or one upgrade may be lost; backends
// with a unique index turn the duplicate insert into a store error.
type Recorder struct {
	store  base.GradeStore
	logger *zap.Logger
	now    func() time.Time
}

func NewRecorder(store base.GradeStore, logger *zap.Logger) *Recorder {
	return &Recorder{
		store:  store,
		logger: logger.With(lf.Module("recorder")),
		now:    time.Now,
	}
}

func (r *Recorder) RecordGrade(ctx context.Context, studentID, subjectCode, proposed string) (Outcome, error) {
	return r.record(ctx, studentID, subjectCode, proposed, r.now)
}

// RecordGradeAt applies the same policy but stamps the write with at. Used to replay
// historical grades.
func (r *Recorder) RecordGradeAt(ctx context.Context, studentID, subjectCode, proposed string, at time.Time) (Outcome, error) {
	return r.record(ctx, studentID, subjectCode, proposed, func() time.Time { return at })
}

func (r *Recorder) record(ctx context.Context, studentID, subjectCode, proposed string, now func() time.Time) (Outcome, error) {
	if studentID == "" || subjectCode == "" {
		return "", ErrMissingArgument
	}
	letter, ok := Parse(proposed)
	if !ok {
		return "", ErrInvalidGrade
	}

	log := r.logger.With(lf.StudentID(studentID), lf.SubjectCode(subjectCode), lf.Grade(string(letter)))

	existing, err := r.store.FindGrade(ctx, studentID, subjectCode)
	if err != nil {
		log.Error("Failed to find grade", zap.Error(err))
		return "", base.Unavailable("find grade", err)
	}

	if existing == nil {
		record := &models.GradeRecord{
			StudentID:   studentID,
			SubjectCode: subjectCode,
			Grade:       string(letter),
			DateAdded:   now(),
		}
		if err := r.store.InsertGrade(ctx, studentID, record); err != nil {
			log.Error("Failed to insert grade", zap.Error(err))
			return "", base.Unavailable("insert grade", err)
		}
		log.Info("Added grade", lf.RecordID(record.ID))
		return OutcomeAdded, nil
	}

	if Rank(string(letter)) <= Rank(existing.Grade) {
		log.Info("Kept existing grade", lf.RecordID(existing.ID), zap.String("existing_grade", existing.Grade))
		return OutcomeUnchanged, nil
	}

	patch := models.GradePatch{
		Grade:        string(letter),
		DateModified: now(),
	}
	if err := r.store.UpdateGrade(ctx, studentID, existing.ID, patch); err != nil {
		log.Error("Failed to update grade", lf.RecordID(existing.ID), zap.Error(err))
		return "", base.Unavailable("update grade", err)
	}
	log.Info("Upgraded grade", lf.RecordID(existing.ID), zap.String("previous_grade", existing.Grade))
	return OutcomeUpgraded, nil
}
