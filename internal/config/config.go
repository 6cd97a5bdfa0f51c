package config

import (
	"time"

	units "github.com/docker/go-units"
	"github.com/pkg/errors"

	"github.com/bigredeye/gradebook/pkg/conf"
	"github.com/bigredeye/gradebook/pkg/log"
)

const (
	MemoryMode    = "memory"
	FirestoreMode = "firestore"
	MongoMode     = "mongo"
	PostgresMode  = "postgres"
)

type Config struct {
	Log struct {
		Development bool
		File        string
		MaxSize     string
		MaxBackups  int
	}

	Server struct {
		ListenAddress string
	}

	Store struct {
		Mode           string
		ConnectTimeout time.Duration
		ConnectRetries uint64

		Firestore struct {
			ProjectID       string
			CredentialsFile string
		}

		Mongo struct {
			URI      string
			Database string
		}

		DataBase struct {
			Host string
			Port uint16
			User string
			Pass string
			Name string
		}
	}

	Aggregation struct {
		Parallelism int
	}
}

var defaults = map[string]interface{}{
	"Log.Development":         true,
	"Log.MaxSize":             "100MiB",
	"Log.MaxBackups":          3,
	"Server.ListenAddress":    ":8080",
	"Store.Mode":              MemoryMode,
	"Store.ConnectTimeout":    10 * time.Second,
	"Store.ConnectRetries":    5,
	"Store.Mongo.Database":    "gradebook",
	"Store.DataBase.Port":     5432,
	"Aggregation.Parallelism": 16,
}

// LogSink converts the Log section into a rotating file sink, or nil when no file is set.
func (c *Config) LogSink() (*log.FileSink, error) {
	if len(c.Log.File) == 0 {
		return nil, nil
	}
	size, err := units.RAMInBytes(c.Log.MaxSize)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse log size %q", c.Log.MaxSize)
	}
	megabytes := int(size / units.MiB)
	if megabytes < 1 {
		megabytes = 1
	}
	return &log.FileSink{
		Path:       c.Log.File,
		MaxSizeMB:  megabytes,
		MaxBackups: c.Log.MaxBackups,
	}, nil
}

func ParseConfig(path string) (*Config, error) {
	config := &Config{}
	err := conf.ParseConfig(config,
		conf.EnvPrefix("GRADEBOOK"),
		conf.ConfigFile(path),
		conf.Defaults(defaults),
	)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to parse config")
	}
	return config, nil
}
