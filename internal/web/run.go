package web

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/config"
	lf "github.com/bigredeye/gradebook/internal/logfield"
	"github.com/bigredeye/gradebook/internal/store"
)

func Run(ctx context.Context, config *config.Config, logger *zap.Logger) error {
	logger.Info("Parsed config", lf.StoreMode(config.Store.Mode), zap.String("listen_address", config.Server.ListenAddress))

	st, err := store.NewStore(ctx, config, logger)
	if err != nil {
		return errors.Wrap(err, "Failed to open store")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			logger.Error("Failed to close store", zap.Error(err))
		}
	}()

	s := newServer(config, logger, st)
	return errors.Wrap(s.run(ctx), "Server failed")
}
