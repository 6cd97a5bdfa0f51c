package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bigredeye/gradebook/api"
	lf "github.com/bigredeye/gradebook/internal/logfield"
)

type gradesService struct {
	webService
}

func setupGradesService(server *server, r *gin.RouterGroup) {
	s := gradesService{newWebService(server, "grades")}

	r.GET("/students/:id/grades", s.listGrades)
	r.POST("/students/:id/grades", s.recordGrade)
	r.GET("/distributions", s.distributions)
	r.GET("/distributions/:code", s.subjectDistribution)
}

func (s gradesService) recordGrade(c *gin.Context) {
	req := api.GradeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	studentID := c.Param("id")
	outcome, err := s.server.recorder.RecordGrade(c.Request.Context(), studentID, req.Subject, req.Grade)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.log.Debug("Recorded grade", lf.StudentID(studentID), lf.SubjectCode(req.Subject), lf.Outcome(outcome))
	c.JSON(http.StatusOK, &api.GradeResponse{
		Status:  okStatus,
		Outcome: outcome,
	})
}

func (s gradesService) listGrades(c *gin.Context) {
	records, err := s.server.roster.ListGrades(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, &api.GradesResponse{
		Status: okStatus,
		Grades: records,
	})
}

func (s gradesService) distributions(c *gin.Context) {
	distributions, err := s.server.scorer.CalcDistributions(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, &api.DistributionsResponse{
		Status:        okStatus,
		Distributions: distributions,
	})
}

func (s gradesService) subjectDistribution(c *gin.Context) {
	code := c.Param("code")
	histogram, err := s.server.scorer.CalcSubjectDistribution(c.Request.Context(), code)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, &api.SubjectDistributionResponse{
		Status:    okStatus,
		Code:      code,
		Histogram: histogram,
	})
}
