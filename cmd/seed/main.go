package main

import (
	"context"
	"flag"
	"log"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/grades"
	"github.com/bigredeye/gradebook/internal/roster"
	"github.com/bigredeye/gradebook/internal/seed"
	"github.com/bigredeye/gradebook/internal/store"
	zlog "github.com/bigredeye/gradebook/pkg/log"
)

var (
	configPath  = flag.String("config", "", "Path to the config file")
	fixturePath = flag.String("fixture", "fixture.yaml", "Path or url of the roster fixture")
)

func run() error {
	flag.Parse()

	conf, err := config.ParseConfig(*configPath)
	if err != nil {
		return err
	}

	logger := zlog.InitDev(nil)
	defer zlog.Sync()

	fixture, err := seed.Read(*fixturePath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, err := store.NewStore(ctx, conf, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			logger.Error("Failed to close store", zap.Error(err))
		}
	}()

	loader := seed.NewLoader(
		roster.NewService(st, logger, conf.Aggregation.Parallelism),
		grades.NewRecorder(st, logger),
		logger,
	)
	report, err := loader.Load(ctx, fixture)
	if err != nil {
		return err
	}

	log.Printf("Seeded %d subjects, %d students, outcomes %v", report.Subjects, report.Students, report.Outcomes)
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
