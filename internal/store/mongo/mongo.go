package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/store/base"
)

const (
	studentsCollection = "students"
	subjectsCollection = "subjects"
	gradesCollection   = "grades"
)

type Store struct {
	client *mongo.Client
	logger *zap.Logger

	students *mongo.Collection
	subjects *mongo.Collection
	grades   *mongo.Collection
}

var _ base.Store = (*Store)(nil)

func OpenStore(ctx context.Context, logger *zap.Logger, uri, database string, timeout time.Duration) (*Store, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(1).
		SetMaxConnIdleTime(30 * time.Second).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to mongo")
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "Failed to ping mongo")
	}

	db := client.Database(database)
	s := &Store{
		client:   client,
		logger:   logger,
		students: db.Collection(studentsCollection),
		subjects: db.Collection(subjectsCollection),
		grades:   db.Collection(gradesCollection),
	}

	_, err = s.grades.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "subject_code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_student_subject"),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "Failed to create grades index")
	}

	logger.Info("Connected to mongo", zap.String("database", database))
	return s, nil
}

func wrap(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return base.NewDuplicateKey(err)
	}
	return err
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter bson.M, sort bson.D) ([]T, error) {
	cursor, err := col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	return findAll[models.Subject](ctx, s.subjects, bson.M{},
		bson.D{{Key: "course_code", Value: 1}, {Key: "_id", Value: 1}})
}

func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	return findAll[models.Student](ctx, s.students, bson.M{},
		bson.D{{Key: "last_name", Value: 1}, {Key: "_id", Value: 1}})
}

func (s *Store) ListGrades(ctx context.Context, studentID string) ([]models.GradeRecord, error) {
	return findAll[models.GradeRecord](ctx, s.grades, bson.M{"student_id": studentID},
		bson.D{{Key: "date_added", Value: 1}, {Key: "_id", Value: 1}})
}

func (s *Store) FindGrade(ctx context.Context, studentID, subjectCode string) (*models.GradeRecord, error) {
	var record models.GradeRecord
	err := s.grades.FindOne(ctx, bson.M{"student_id": studentID, "subject_code": subjectCode}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s *Store) InsertGrade(ctx context.Context, studentID string, record *models.GradeRecord) error {
	record.ID = uuid.New().String()
	record.StudentID = studentID
	_, err := s.grades.InsertOne(ctx, record)
	return wrap(err)
}

func updateOne(ctx context.Context, col *mongo.Collection, filter bson.M, set bson.M) error {
	res, err := col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return wrap(err)
	}
	if res.MatchedCount == 0 {
		return base.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateGrade(ctx context.Context, studentID, recordID string, patch models.GradePatch) error {
	return updateOne(ctx, s.grades,
		bson.M{"_id": recordID, "student_id": studentID},
		bson.M{"grade": patch.Grade, "date_modified": patch.DateModified})
}

func (s *Store) DeleteGrade(ctx context.Context, studentID, recordID string) error {
	_, err := s.grades.DeleteOne(ctx, bson.M{"_id": recordID, "student_id": studentID})
	return err
}

func (s *Store) AddStudent(ctx context.Context, student *models.Student) error {
	student.ID = uuid.New().String()
	_, err := s.students.InsertOne(ctx, student)
	return wrap(err)
}

func (s *Store) UpdateStudent(ctx context.Context, student *models.Student) error {
	return updateOne(ctx, s.students, bson.M{"_id": student.ID}, bson.M{
		"first_name": student.FirstName,
		"last_name":  student.LastName,
		"email":      student.Email,
	})
}

func findByID[T any](ctx context.Context, col *mongo.Collection, id string) (*T, error) {
	var item T
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, base.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	return findByID[models.Student](ctx, s.students, id)
}

func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	_, err := s.students.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *Store) AddSubject(ctx context.Context, subject *models.Subject) error {
	subject.ID = uuid.New().String()
	_, err := s.subjects.InsertOne(ctx, subject)
	return wrap(err)
}

func (s *Store) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	return updateOne(ctx, s.subjects, bson.M{"_id": subject.ID}, bson.M{
		"course_code": subject.Code,
		"name":        subject.Name,
		"teacher":     subject.Teacher,
	})
}

func (s *Store) FindSubject(ctx context.Context, id string) (*models.Subject, error) {
	return findByID[models.Subject](ctx, s.subjects, id)
}

func (s *Store) DeleteSubject(ctx context.Context, id string) error {
	_, err := s.subjects.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return errors.Wrap(err, "Failed to disconnect from mongo")
	}
	s.logger.Info("Disconnected from mongo")
	return nil
}
