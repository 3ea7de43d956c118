// Package storage opens the book store, outbox and archive selected by configuration
// and hands back a client over them.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/config"
	"github.com/zeppelin-cash/internal/data/file"
	"github.com/zeppelin-cash/internal/data/memory"
	"github.com/zeppelin-cash/internal/data/mongo"
	"github.com/zeppelin-cash/internal/data/postgres"
	"github.com/zeppelin-cash/internal/domain/archive"
	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/outbox"
	"github.com/zeppelin-cash/internal/platform/metrics"
	"github.com/zeppelin-cash/internal/platform/persistence"
)

// Stores is everything a process needs to work on books. Outbox and Archive are nil
// unless the postgres backend is configured.
type Stores struct {
	Client  client.Client
	Outbox  outbox.Repository
	Archive archive.Repository

	postgresDB *persistence.PostgresDB
	mongoDB    *persistence.MongoDB
	logger     *slog.Logger
}

// Open connects the configured backend. fs is used by the file backend only.
func Open(ctx context.Context, log *slog.Logger, cfg *config.Config, fs afero.Fs, m *metrics.Metrics) (*Stores, error) {
	s := &Stores{logger: log}

	if cfg.Book.Single {
		log.Info("Serving every user from a single in-memory book")
		s.Client = client.NewLocalClient(log, nil)
		return s, nil
	}

	var repo book.Repository
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		repo = memory.NewBookRepository(log)
	case config.StorageFile:
		fileRepo, err := file.NewBookRepository(log, fs, cfg.Storage.FileDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open file book store: %w", err)
		}
		repo = fileRepo
	case config.StoragePostgres:
		postgresDB, err := persistence.NewPostgresDB(ctx, log, &cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		s.postgresDB = postgresDB

		mongoDB, err := persistence.NewMongoDB(ctx, log, &cfg.MongoDB)
		if err != nil {
			postgresDB.Close()
			return nil, fmt.Errorf("failed to initialize MongoDB: %w", err)
		}
		s.mongoDB = mongoDB

		archiveRepo := mongo.NewArchiveRepository(log, mongoDB.Database())
		if err := archiveRepo.EnsureIndexes(ctx); err != nil {
			s.Close(ctx)
			return nil, err
		}
		s.Archive = archiveRepo

		outboxRepo := postgres.NewOutboxRepository(log, postgresDB.Pool())
		s.Outbox = outboxRepo
		repo = postgres.NewBookRepository(log, postgresDB.Pool(), outboxRepo)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	log.Info("Book store ready", "backend", cfg.Storage.Backend)
	s.Client = client.NewMultiClient(log, repo, m)
	return s, nil
}

// Close releases database connections.
func (s *Stores) Close(ctx context.Context) {
	if s.postgresDB != nil {
		s.postgresDB.Close()
	}
	if s.mongoDB != nil {
		if err := s.mongoDB.Close(ctx); err != nil {
			s.logger.Error("Error closing MongoDB connection", "error", err)
		}
	}
}
