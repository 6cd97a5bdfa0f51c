package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bigredeye/gradebook/pkg/client/gradebook"
)

var log *zap.Logger

const defaultEndpoint = "http://localhost:8080"

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func unwrap[T any](value T, err error) T {
	check(err)
	return value
}

var (
	rootCmd = &cobra.Command{
		Use:   "gbk",
		Short: "Gradebook client",
	}

	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dump various info",
	}

	deleteCmd = &cobra.Command{
		Use:   "delete",
		Short: "Delete students or subjects with all their grades",
	}
)

func newClient() (*gradebook.Client, error) {
	endpoint := os.Getenv("GRADEBOOK_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return gradebook.NewClient(endpoint)
}

func initLogging() {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.ConsoleSeparator = " "
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.StampMilli)
	log = unwrap(config.Build())
}

func initCommands() {
	dumpCmd.AddCommand(makeDumpDistributionsCommand())
	dumpCmd.AddCommand(makeDumpStudentsCommand())
	deleteCmd.AddCommand(makeDeleteStudentCommand())
	deleteCmd.AddCommand(makeDeleteSubjectCommand())
	rootCmd.AddCommand(makeGradeCommand())
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(deleteCmd)
}

func init() {
	initLogging()
	initCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Command failed: %s", err.Error())
		os.Exit(1)
	}
}
