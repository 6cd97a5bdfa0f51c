package api

import "github.com/bigredeye/gradebook/internal/models"

type GradeRequest struct {
	Subject string `json:"subject" form:"subject"`
	Grade   string `json:"grade" form:"grade"`
}

type GradeResponse struct {
	Status

	Outcome string `json:"outcome,omitempty"`
}

type GradesResponse struct {
	Status

	Grades []models.GradeRecord `json:"grades,omitempty"`
}
