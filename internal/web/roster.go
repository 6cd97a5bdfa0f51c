package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bigredeye/gradebook/api"
	"github.com/bigredeye/gradebook/internal/models"
)

type rosterService struct {
	webService
}

func setupRosterService(server *server, r *gin.RouterGroup) {
	s := rosterService{newWebService(server, "roster")}

	r.GET("/students", s.listStudents)
	r.POST("/students", s.saveStudent)
	r.PUT("/students/:id", s.saveStudent)
	r.DELETE("/students/:id", s.deleteStudent)

	r.GET("/subjects", s.listSubjects)
	r.POST("/subjects", s.saveSubject)
	r.PUT("/subjects/:id", s.saveSubject)
	r.DELETE("/subjects/:id", s.deleteSubject)
}

func (s rosterService) listStudents(c *gin.Context) {
	students, err := s.server.roster.ListStudents(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &api.StudentsResponse{Status: okStatus, Students: students})
}

// saveStudent serves both POST (no id, creates) and PUT (id from the path, updates).
func (s rosterService) saveStudent(c *gin.Context) {
	req := api.StudentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	student := &models.Student{
		ID:        c.Param("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if err := s.server.roster.SaveStudent(c.Request.Context(), student); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &api.StudentResponse{Status: okStatus, Student: student})
}

func (s rosterService) deleteStudent(c *gin.Context) {
	if err := s.server.roster.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &api.DeleteResponse{Status: okStatus})
}

func (s rosterService) listSubjects(c *gin.Context) {
	subjects, err := s.server.roster.ListSubjects(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &api.SubjectsResponse{Status: okStatus, Subjects: subjects})
}

func (s rosterService) saveSubject(c *gin.Context) {
	req := api.SubjectRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	subject := &models.Subject{
		ID:      c.Param("id"),
		Code:    req.Code,
		Name:    req.Name,
		Teacher: req.Teacher,
	}
	if err := s.server.roster.SaveSubject(c.Request.Context(), subject); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &api.SubjectResponse{Status: okStatus, Subject: subject})
}

func (s rosterService) deleteSubject(c *gin.Context) {
	if err := s.server.roster.DeleteSubject(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &api.DeleteResponse{Status: okStatus})
}
