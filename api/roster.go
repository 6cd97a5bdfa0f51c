package api

import "github.com/bigredeye/gradebook/internal/models"

type StudentRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type StudentResponse struct {
	Status

	Student *models.Student `json:"student,omitempty"`
}

type StudentsResponse struct {
	Status

	Students []models.Student `json:"students,omitempty"`
}

type SubjectRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Teacher string `json:"teacher"`
}

type SubjectResponse struct {
	Status

	Subject *models.Subject `json:"subject,omitempty"`
}

type SubjectsResponse struct {
	Status

	Subjects []models.Subject `json:"subjects,omitempty"`
}

type DeleteResponse struct {
	Status
}
