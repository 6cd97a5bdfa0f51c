package gradebook

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bigredeye/gradebook/api"
	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/scorer"
)

type Client struct {
	client *resty.Client
}

func NewClient(endpoint string) (*Client, error) {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(time.Second * 10).
		SetRetryCount(3)

	return &Client{client}, nil
}

type response interface {
	GetStatus() api.Status
}

// do sends req and decodes both success and error bodies into res.
func do(req *resty.Request, res response, method, path, what string) error {
	resp, err := req.SetResult(res).SetError(res).Execute(method, path)
	if err != nil {
		return err
	}

	status := res.GetStatus()
	if !status.Ok {
		if status.Error == "" {
			status.Error = resp.Status()
		}
		return fmt.Errorf("failed to %s: %s", what, status.Error)
	}
	return nil
}

func (c *Client) RecordGrade(studentID, subject, grade string) (string, error) {
	res := &api.GradeResponse{}
	req := c.client.R().
		SetPathParam("id", studentID).
		SetBody(api.GradeRequest{Subject: subject, Grade: grade})
	if err := do(req, res, resty.MethodPost, "/api/students/{id}/grades", "record grade"); err != nil {
		return "", err
	}
	return res.Outcome, nil
}

func (c *Client) ListGrades(studentID string) ([]models.GradeRecord, error) {
	res := &api.GradesResponse{}
	req := c.client.R().SetPathParam("id", studentID)
	if err := do(req, res, resty.MethodGet, "/api/students/{id}/grades", "list grades"); err != nil {
		return nil, err
	}
	return res.Grades, nil
}

func (c *Client) LoadDistributions() (scorer.Distribution, error) {
	res := &api.DistributionsResponse{}
	if err := do(c.client.R(), res, resty.MethodGet, "/api/distributions", "fetch distributions"); err != nil {
		return nil, err
	}
	if res.Distributions == nil {
		return scorer.Distribution{}, nil
	}
	return res.Distributions, nil
}

func (c *Client) LoadSubjectDistribution(code string) (scorer.Histogram, error) {
	res := &api.SubjectDistributionResponse{}
	req := c.client.R().SetPathParam("code", code)
	if err := do(req, res, resty.MethodGet, "/api/distributions/{code}", "fetch distribution"); err != nil {
		return nil, err
	}
	return res.Histogram, nil
}

func (c *Client) ListStudents(query string) ([]models.Student, error) {
	res := &api.StudentsResponse{}
	req := c.client.R().SetQueryParam("q", query)
	if err := do(req, res, resty.MethodGet, "/api/students", "list students"); err != nil {
		return nil, err
	}
	return res.Students, nil
}

func (c *Client) ListSubjects(query string) ([]models.Subject, error) {
	res := &api.SubjectsResponse{}
	req := c.client.R().SetQueryParam("q", query)
	if err := do(req, res, resty.MethodGet, "/api/subjects", "list subjects"); err != nil {
		return nil, err
	}
	return res.Subjects, nil
}

func (c *Client) AddStudent(student api.StudentRequest) (*models.Student, error) {
	res := &api.StudentResponse{}
	if err := do(c.client.R().SetBody(student), res, resty.MethodPost, "/api/students", "add student"); err != nil {
		return nil, err
	}
	return res.Student, nil
}

func (c *Client) AddSubject(subject api.SubjectRequest) (*models.Subject, error) {
	res := &api.SubjectResponse{}
	if err := do(c.client.R().SetBody(subject), res, resty.MethodPost, "/api/subjects", "add subject"); err != nil {
		return nil, err
	}
	return res.Subject, nil
}

func (c *Client) DeleteStudent(id string) error {
	req := c.client.R().SetPathParam("id", id)
	return do(req, &api.DeleteResponse{}, resty.MethodDelete, "/api/students/{id}", "delete student")
}

func (c *Client) DeleteSubject(id string) error {
	req := c.client.R().SetPathParam("id", id)
	return do(req, &api.DeleteResponse{}, resty.MethodDelete, "/api/subjects/{id}", "delete subject")
}
