package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/store/base"
)

type Store struct {
	*gorm.DB
}

var _ base.Store = (*Store)(nil)

func DSN(host string, port uint16, user, pass, name string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, pass, name)
}

// gorm does not translate driver errors.
// https://github.com/go-gorm/gorm/issues/4037
func isUniqueViolation(err error) bool {
	var perr *pgconn.PgError
	if errors.As(err, &perr) {
		return perr.Code == "23505"
	}
	return false
}

func wrap(err error) error {
	if err != nil && isUniqueViolation(err) {
		return base.NewDuplicateKey(err)
	}
	return err
}

func OpenStore(ctx context.Context, logger *zap.Logger, dsn string) (*Store, error) {
	zapLogger := zapgorm2.New(logger.Named("gorm"))
	zapLogger.SetAsDefault()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: zapLogger,
	})
	if err != nil {
		return nil, err
	}

	err = db.WithContext(ctx).AutoMigrate(&models.Student{}, &models.Subject{}, &models.GradeRecord{})
	if err != nil {
		return nil, err
	}

	return &Store{db}, nil
}

func (s *Store) ListSubjects(ctx context.Context) (subjects []models.Subject, err error) {
	subjects = make([]models.Subject, 0)
	err = s.WithContext(ctx).Order("code, id").Find(&subjects).Error
	if err != nil {
		subjects = nil
	}
	return
}

func (s *Store) ListStudents(ctx context.Context) (students []models.Student, err error) {
	students = make([]models.Student, 0)
	err = s.WithContext(ctx).Order("last_name, id").Find(&students).Error
	if err != nil {
		students = nil
	}
	return
}

func (s *Store) ListGrades(ctx context.Context, studentID string) (records []models.GradeRecord, err error) {
	records = make([]models.GradeRecord, 0)
	err = s.WithContext(ctx).Order("date_added, id").Find(&records, "student_id = ?", studentID).Error
	if err != nil {
		records = nil
	}
	return
}

func (s *Store) FindGrade(ctx context.Context, studentID, subjectCode string) (*models.GradeRecord, error) {
	var record models.GradeRecord
	err := s.WithContext(ctx).First(&record, "student_id = ? AND subject_code = ?", studentID, subjectCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s *Store) InsertGrade(ctx context.Context, studentID string, record *models.GradeRecord) error {
	record.ID = uuid.New().String()
	record.StudentID = studentID
	return wrap(s.WithContext(ctx).Create(record).Error)
}

func (s *Store) UpdateGrade(ctx context.Context, studentID, recordID string, patch models.GradePatch) error {
	res := s.WithContext(ctx).Model(&models.GradeRecord{}).
		Where("id = ? AND student_id = ?", recordID, studentID).
		Updates(map[string]interface{}{
			"grade":         patch.Grade,
			"date_modified": patch.DateModified,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return base.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteGrade(ctx context.Context, studentID, recordID string) error {
	return s.WithContext(ctx).
		Where("id = ? AND student_id = ?", recordID, studentID).
		Delete(&models.GradeRecord{}).
		Error
}

func (s *Store) AddStudent(ctx context.Context, student *models.Student) error {
	student.ID = uuid.New().String()
	return wrap(s.WithContext(ctx).Create(student).Error)
}

func (s *Store) UpdateStudent(ctx context.Context, student *models.Student) error {
	res := s.WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", student.ID).
		Updates(map[string]interface{}{
			"first_name": student.FirstName,
			"last_name":  student.LastName,
			"email":      student.Email,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return base.ErrNotFound
	}
	return nil
}

func (s *Store) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	err := s.WithContext(ctx).First(&student, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, base.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// DeleteStudent leaves grade rows in place. Cascading is the caller's job.
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	return s.WithContext(ctx).Where("id = ?", id).Delete(&models.Student{}).Error
}

func (s *Store) AddSubject(ctx context.Context, subject *models.Subject) error {
	subject.ID = uuid.New().String()
	return wrap(s.WithContext(ctx).Create(subject).Error)
}

func (s *Store) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	res := s.WithContext(ctx).Model(&models.Subject{}).
		Where("id = ?", subject.ID).
		Updates(map[string]interface{}{
			"code":    subject.Code,
			"name":    subject.Name,
			"teacher": subject.Teacher,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return base.ErrNotFound
	}
	return nil
}

func (s *Store) FindSubject(ctx context.Context, id string) (*models.Subject, error) {
	var subject models.Subject
	err := s.WithContext(ctx).First(&subject, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, base.ErrNotFound
		}
		return nil, err
	}
	return &subject, nil
}

func (s *Store) DeleteSubject(ctx context.Context, id string) error {
	return s.WithContext(ctx).Where("id = ?", id).Delete(&models.Subject{}).Error
}

func (s *Store) Close(ctx context.Context) error {
	db, err := s.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
