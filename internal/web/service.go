package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/api"
	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/grades"
	"github.com/bigredeye/gradebook/internal/roster"
	"github.com/bigredeye/gradebook/internal/store/base"
)

type webService struct {
	server *server
	config *config.Config
	log    *zap.Logger
}

func newWebService(server *server, module string) webService {
	return webService{server, server.config, server.logger.Named(module)}
}

func statusOf(err error) int {
	validation := &roster.ValidationError{}
	cascade := &roster.CascadeError{}
	switch {
	case errors.As(err, &validation),
		errors.Is(err, grades.ErrInvalidGrade),
		errors.Is(err, grades.ErrMissingArgument):
		return http.StatusBadRequest
	case errors.As(err, &cascade):
		return http.StatusInternalServerError
	case errors.Is(err, base.ErrNotFound):
		return http.StatusNotFound
	case base.IsStoreUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorStatus logs err and builds the envelope. Store failures are reported without
// backend details.
func (s webService) errorStatus(err error) (int, api.Status) {
	code := statusOf(err)
	message := err.Error()
	if code == http.StatusServiceUnavailable {
		message = "store unavailable"
	}
	if code >= http.StatusInternalServerError {
		s.log.Error("Request failed", zap.Int("status", code), zap.Error(err))
	} else {
		s.log.Warn("Request rejected", zap.Int("status", code), zap.Error(err))
	}
	return code, api.Status{Ok: false, Error: message}
}

func (s webService) fail(c *gin.Context, err error) {
	code, status := s.errorStatus(err)
	c.JSON(code, &status)
}

func (s webService) badRequest(c *gin.Context, err error) {
	s.log.Warn("Malformed request", zap.Error(err))
	c.JSON(http.StatusBadRequest, &api.Status{Ok: false, Error: err.Error()})
}

var okStatus = api.Status{Ok: true}
