package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/grades"
	"github.com/bigredeye/gradebook/internal/roster"
	"github.com/bigredeye/gradebook/internal/scorer"
	"github.com/bigredeye/gradebook/internal/store/base"
)

type server struct {
	config *config.Config
	logger *zap.Logger

	store    base.Store
	recorder *grades.Recorder
	scorer   *scorer.Scorer
	roster   *roster.Service
}

func newServer(config *config.Config, logger *zap.Logger, store base.Store) *server {
	parallelism := config.Aggregation.Parallelism
	return &server{
		config:   config,
		logger:   logger,
		store:    store,
		recorder: grades.NewRecorder(store, logger),
		scorer:   scorer.NewScorer(store, logger, parallelism),
		roster:   roster.NewService(store, logger, parallelism),
	}
}

func (s *server) engine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong "+fmt.Sprint(time.Now().Unix()))
	})

	group := r.Group("/api")
	setupGradesService(s, group)
	setupRosterService(s, group)

	return r
}

func (s *server) run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.Server.ListenAddress,
		Handler: s.engine(),
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.String("bind_address", s.config.Server.ListenAddress))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
