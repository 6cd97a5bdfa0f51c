package models

type Student struct {
	ID        string `gorm:"primaryKey" bson:"_id" firestore:"-" json:"id"`
	FirstName string `bson:"first_name" firestore:"fName" json:"first_name" validate:"required"`
	LastName  string `bson:"last_name" firestore:"lName" json:"last_name" validate:"required"`
	Email     string `bson:"email,omitempty" firestore:"email" json:"email,omitempty" validate:"omitempty,email"`
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
