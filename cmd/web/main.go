package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/web"
	zlog "github.com/bigredeye/gradebook/pkg/log"
)

var configPath = flag.String("config", "", "Path to the config file")

func run() error {
	flag.Parse()

	conf, err := config.ParseConfig(*configPath)
	if err != nil {
		return err
	}

	sink, err := conf.LogSink()
	if err != nil {
		return err
	}

	var logger *zap.Logger
	if conf.Log.Development {
		logger = zlog.InitDev(sink)
	} else {
		logger = zlog.InitProd(sink)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.Run(ctx, conf, logger)
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
