package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/config"
	lf "github.com/bigredeye/gradebook/internal/logfield"
	"github.com/bigredeye/gradebook/internal/store/base"
	"github.com/bigredeye/gradebook/internal/store/firestore"
	"github.com/bigredeye/gradebook/internal/store/memory"
	"github.com/bigredeye/gradebook/internal/store/mongo"
	"github.com/bigredeye/gradebook/internal/store/postgres"
)

type opener func(ctx context.Context) (base.Store, error)

func NewStore(ctx context.Context, conf *config.Config, logger *zap.Logger) (base.Store, error) {
	logger = logger.With(lf.StoreMode(conf.Store.Mode))

	var open opener
	switch conf.Store.Mode {
	case config.MemoryMode:
		logger.Warn("Using in-memory store, records will not survive a restart")
		return memory.NewStore(), nil
	case config.FirestoreMode:
		open = func(ctx context.Context) (base.Store, error) {
			return firestore.OpenStore(ctx, logger, conf.Store.Firestore.ProjectID, conf.Store.Firestore.CredentialsFile)
		}
	case config.MongoMode:
		open = func(ctx context.Context) (base.Store, error) {
			return mongo.OpenStore(ctx, logger, conf.Store.Mongo.URI, conf.Store.Mongo.Database, conf.Store.ConnectTimeout)
		}
	case config.PostgresMode:
		db := conf.Store.DataBase
		dsn := postgres.DSN(db.Host, db.Port, db.User, db.Pass, db.Name)
		open = func(ctx context.Context) (base.Store, error) {
			return postgres.OpenStore(ctx, logger, dsn)
		}
	default:
		return nil, errors.Wrap(errors.Errorf("Unknown store mode: %s", conf.Store.Mode), fmt.Sprintf("Failed to create store %s", conf.Store.Mode))
	}

	return connect(ctx, logger, open, conf.Store.ConnectRetries)
}

func connect(ctx context.Context, logger *zap.Logger, open opener, retries uint64) (base.Store, error) {
	var store base.Store
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries), ctx)
	err := backoff.RetryNotify(func() error {
		var err error
		store, err = open(ctx)
		return err
	}, policy, func(err error, next time.Duration) {
		logger.Warn("Failed to open store, retrying", zap.Error(err), zap.Duration("backoff", next))
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to open store")
	}
	logger.Info("Opened store")
	return store, nil
}
