package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/store/base"
)

const (
	studentsCollection = "students"
	subjectsCollection = "subjects"
	gradesCollection   = "grades"
)

// Store keeps grades as a subcollection of each student document:
// students/{id}/grades/{id}.
type Store struct {
	client *firestore.Client
	logger *zap.Logger
}

var _ base.Store = (*Store)(nil)

func OpenStore(ctx context.Context, logger *zap.Logger, projectID, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if len(credentialsFile) > 0 {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to init firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create firestore client")
	}
	logger.Info("Opened firestore client", zap.String("project_id", projectID))

	return &Store{client: client, logger: logger}, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func translate(err error) error {
	if isNotFound(err) {
		return base.ErrNotFound
	}
	return err
}

func (s *Store) grades(studentID string) *firestore.CollectionRef {
	return s.client.Collection(studentsCollection).Doc(studentID).Collection(gradesCollection)
}

func (s *Store) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	iter := s.client.Collection(subjectsCollection).Documents(ctx)
	defer iter.Stop()

	subjects := make([]models.Subject, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var subject models.Subject
		if err := doc.DataTo(&subject); err != nil {
			return nil, errors.Wrapf(err, "Failed to decode subject %s", doc.Ref.ID)
		}
		subject.ID = doc.Ref.ID
		subjects = append(subjects, subject)
	}
	return subjects, nil
}

func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	iter := s.client.Collection(studentsCollection).Documents(ctx)
	defer iter.Stop()

	students := make([]models.Student, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var student models.Student
		if err := doc.DataTo(&student); err != nil {
			return nil, errors.Wrapf(err, "Failed to decode student %s", doc.Ref.ID)
		}
		student.ID = doc.Ref.ID
		students = append(students, student)
	}
	return students, nil
}

func decodeGrade(doc *firestore.DocumentSnapshot, studentID string) (models.GradeRecord, error) {
	var record models.GradeRecord
	if err := doc.DataTo(&record); err != nil {
		return record, errors.Wrapf(err, "Failed to decode grade %s", doc.Ref.ID)
	}
	record.ID = doc.Ref.ID
	record.StudentID = studentID
	return record, nil
}

func (s *Store) ListGrades(ctx context.Context, studentID string) ([]models.GradeRecord, error) {
	iter := s.grades(studentID).OrderBy("dateAdded", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	records := make([]models.GradeRecord, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		record, err := decodeGrade(doc, studentID)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *Store) FindGrade(ctx context.Context, studentID, subjectCode string) (*models.GradeRecord, error) {
	iter := s.grades(studentID).Where("subject", "==", subjectCode).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	record, err := decodeGrade(doc, studentID)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Store) InsertGrade(ctx context.Context, studentID string, record *models.GradeRecord) error {
	ref, _, err := s.grades(studentID).Add(ctx, record)
	if err != nil {
		return err
	}
	record.ID = ref.ID
	record.StudentID = studentID
	return nil
}

func (s *Store) UpdateGrade(ctx context.Context, studentID, recordID string, patch models.GradePatch) error {
	_, err := s.grades(studentID).Doc(recordID).Update(ctx, []firestore.Update{
		{Path: "grade", Value: patch.Grade},
		{Path: "dateModified", Value: patch.DateModified},
	})
	return translate(err)
}

func (s *Store) DeleteGrade(ctx context.Context, studentID, recordID string) error {
	_, err := s.grades(studentID).Doc(recordID).Delete(ctx)
	return err
}

func (s *Store) AddStudent(ctx context.Context, student *models.Student) error {
	ref, _, err := s.client.Collection(studentsCollection).Add(ctx, student)
	if err != nil {
		return err
	}
	student.ID = ref.ID
	return nil
}

func (s *Store) UpdateStudent(ctx context.Context, student *models.Student) error {
	_, err := s.client.Collection(studentsCollection).Doc(student.ID).Update(ctx, []firestore.Update{
		{Path: "fName", Value: student.FirstName},
		{Path: "lName", Value: student.LastName},
		{Path: "email", Value: student.Email},
	})
	return translate(err)
}

func (s *Store) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	doc, err := s.client.Collection(studentsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err)
	}
	var student models.Student
	if err := doc.DataTo(&student); err != nil {
		return nil, errors.Wrapf(err, "Failed to decode student %s", id)
	}
	student.ID = doc.Ref.ID
	return &student, nil
}

// DeleteStudent removes the student document only. Firestore keeps the grades
// subcollection alive, so callers delete grades first.
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	_, err := s.client.Collection(studentsCollection).Doc(id).Delete(ctx)
	return err
}

func (s *Store) AddSubject(ctx context.Context, subject *models.Subject) error {
	ref, _, err := s.client.Collection(subjectsCollection).Add(ctx, subject)
	if err != nil {
		return err
	}
	subject.ID = ref.ID
	return nil
}

func (s *Store) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	_, err := s.client.Collection(subjectsCollection).Doc(subject.ID).Update(ctx, []firestore.Update{
		{Path: "courseCode", Value: subject.Code},
		{Path: "name", Value: subject.Name},
		{Path: "teacher", Value: subject.Teacher},
	})
	return translate(err)
}

func (s *Store) FindSubject(ctx context.Context, id string) (*models.Subject, error) {
	doc, err := s.client.Collection(subjectsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err)
	}
	var subject models.Subject
	if err := doc.DataTo(&subject); err != nil {
		return nil, errors.Wrapf(err, "Failed to decode subject %s", id)
	}
	subject.ID = doc.Ref.ID
	return &subject, nil
}

func (s *Store) DeleteSubject(ctx context.Context, id string) error {
	_, err := s.client.Collection(subjectsCollection).Doc(id).Delete(ctx)
	return err
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Close()
}
