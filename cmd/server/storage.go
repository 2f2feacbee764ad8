package main

import (
	"context"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/docexchange-backend/internal/config"
	"github.com/ignatzorin/docexchange-backend/internal/db"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/docexchange-backend/internal/infrastructure/persistence"
)

// repositories - набор хранилищ, общий для обоих драйверов.
type repositories struct {
	users              repository.UserRepository
	posts              repository.PostRepository
	catalog            repository.CatalogRepository
	responses          repository.ResponseRepository
	deals              repository.DealRepository
	complaints         repository.ComplaintRepository
	documents          repository.DocumentRepository
	documentComplaints repository.DocumentComplaintRepository
	profileErrors      repository.ProfileErrorRepository
	postErrors         repository.PostErrorRepository
}

func newMemoryRepositories() repositories {
	store := memory.NewStore()
	store.SeedCatalog()
	return repositories{
		users:              store.Users(),
		posts:              store.Posts(),
		catalog:            store.Catalog(),
		responses:          store.Responses(),
		deals:              store.Deals(),
		complaints:         store.Complaints(),
		documents:          store.Documents(),
		documentComplaints: store.DocumentComplaints(),
		profileErrors:      store.ProfileErrors(),
		postErrors:         store.PostErrors(),
	}
}

// openPostgres подключается к базе и применяет миграции из cfg.MigrationsPath.
func openPostgres(ctx context.Context, cfg *config.Config) (*sqlx.DB, repositories, error) {
	conn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, repositories{}, err
	}
	if err := db.RunMigrations(ctx, conn, os.DirFS(cfg.MigrationsPath)); err != nil {
		safeClose(conn)
		return nil, repositories{}, err
	}

	posts := persistence.NewPostRepository(conn)
	return conn, repositories{
		users:              persistence.NewUserRepository(conn),
		posts:              posts,
		catalog:            persistence.NewCatalogRepository(conn),
		responses:          persistence.NewResponseRepository(conn),
		deals:              persistence.NewDealRepository(conn, posts),
		complaints:         persistence.NewComplaintRepository(conn),
		documents:          persistence.NewDocumentRepository(conn),
		documentComplaints: persistence.NewDocumentComplaintRepository(conn),
		profileErrors:      persistence.NewProfileErrorRepository(conn),
		postErrors:         persistence.NewPostErrorRepository(conn),
	}, nil
}
