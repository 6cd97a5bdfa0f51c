package models

// Subject.Code is the join key for grade records. Stores do not enforce its uniqueness.
type Subject struct {
	ID      string `gorm:"primaryKey" bson:"_id" firestore:"-" json:"id"`
	Code    string `gorm:"index" bson:"course_code" firestore:"courseCode" json:"code" validate:"required"`
	Name    string `bson:"name" firestore:"name" json:"name" validate:"required"`
	Teacher string `bson:"teacher" firestore:"teacher" json:"teacher" validate:"required"`
}
