package cli

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	bolt "go.etcd.io/bbolt"

	"github.com/dtroode/storefront-server/internal/config"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/repository/bbolt"
	"github.com/dtroode/storefront-server/internal/repository/memory"
	"github.com/dtroode/storefront-server/internal/repository/postgres"
	storage "github.com/dtroode/storefront-server/internal/storage/minio"
)

// stores are the persistence backends selected by STORE_DRIVER.
type stores struct {
	documents     model.DocumentStore
	users         model.UserStore
	refreshTokens model.RefreshTokenStore
	closers       []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStores(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		documents := postgres.NewDocumentRepository(db, logger)
		return &stores{
			documents:     documents,
			users:         postgres.NewUserRepository(db),
			refreshTokens: postgres.NewRefreshTokenRepository(db),
			closers: []func(){
				func() { _ = db.Close() },
				documents.Close,
			},
		}, nil

	case config.StoreDriverBolt:
		db, err := bbolt.Open(cfg.Bolt.Path, &bolt.Options{Timeout: boltOpenTimeout})
		if err != nil {
			return nil, err
		}
		return &stores{
			documents:     bbolt.NewDocumentRepository(db, logger),
			users:         bbolt.NewUserRepository(db),
			refreshTokens: bbolt.NewRefreshTokenRepository(db),
			closers:       []func(){func() { _ = db.Close() }},
		}, nil

	case config.StoreDriverMemory:
		logger.Warn("Stores: using in-memory stores, nothing survives a restart")
		return &stores{
			documents:     memory.NewDocumentRepository(logger),
			users:         memory.NewUserRepository(),
			refreshTokens: memory.NewRefreshTokenRepository(),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownStoreDriver, cfg.StoreDriver)
}

func openReceiptArchive(ctx context.Context, cfg config.Storage) (*storage.ReceiptArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	archive, err := storage.NewReceiptArchive(ctx, client, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize receipt archive: %w", err)
	}
	return archive, nil
}
