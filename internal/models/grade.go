package models

import "time"

type GradeRecord struct {
	ID          string `gorm:"primaryKey" bson:"_id" firestore:"-" json:"id"`
	StudentID   string `gorm:"uniqueIndex:idx_student_subject" bson:"student_id" firestore:"-" json:"student_id"`
	SubjectCode string `gorm:"uniqueIndex:idx_student_subject" bson:"subject_code" firestore:"subject" json:"subject"`
	Grade       string `bson:"grade" firestore:"grade" json:"grade"`

	DateAdded    time.Time  `bson:"date_added" firestore:"dateAdded" json:"date_added"`
	DateModified *time.Time `bson:"date_modified,omitempty" firestore:"dateModified,omitempty" json:"date_modified,omitempty"`
}

type GradePatch struct {
	Grade        string
	DateModified time.Time
}

func (r *GradeRecord) Apply(patch GradePatch) {
	r.Grade = patch.Grade
	modified := patch.DateModified
	r.DateModified = &modified
}
