package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/config"
	"github.com/ignatzorin/docexchange-backend/internal/goroutine"
	httpRouter "github.com/ignatzorin/docexchange-backend/internal/http/router"
	"github.com/ignatzorin/docexchange-backend/internal/infrastructure/contactinfo"
	"github.com/ignatzorin/docexchange-backend/internal/interface/http/handler"
	"github.com/ignatzorin/docexchange-backend/internal/logger"
	"github.com/ignatzorin/docexchange-backend/internal/service"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/account"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/complaint"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/deal"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/moderation"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/negotiation"
	"github.com/ignatzorin/docexchange-backend/internal/usecase/post"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	var (
		repos  repositories
		health *handler.HealthHandler
	)
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		repos = newMemoryRepositories()
		health = handler.NewHealthHandler(cfg.StorageDriver, nil)
	default:
		var conn *sqlx.DB
		conn, repos, err = openPostgres(ctx, cfg)
		if err != nil {
			log.Fatalf("main: ошибка подготовки базы: %v", err)
		}
		defer safeClose(conn)
		health = handler.NewHealthHandler(cfg.StorageDriver, conn)
	}
	logger.WithFields(logrus.Fields{"storage": cfg.StorageDriver, "env": cfg.Env}).Info("хранилище готово")

	// Вспомогательные сервисы.
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	scanner := contactinfo.NewScanner()

	// Use cases.
	registerUC := account.NewRegisterUseCase(repos.users, repos.profileErrors, scanner, hasher, tokens)
	editProfileUC := account.NewEditProfileUseCase(repos.users, repos.profileErrors, scanner, hasher)
	createPostUC := post.NewCreatePostUseCase(repos.posts, repos.catalog, repos.postErrors, scanner)
	editPostUC := post.NewEditPostUseCase(repos.posts, repos.catalog, repos.postErrors, scanner)

	handlers := httpRouter.Handlers{
		Account: handler.NewAccountHandler(
			registerUC,
			account.NewLoginUseCase(repos.users, hasher, tokens),
			account.NewGetProfileUseCase(repos.users),
			editProfileUC,
			account.NewDeleteAccountUseCase(repos.users),
		),
		Text: handler.NewTextHandler(scanner),
		Post: handler.NewPostHandler(
			createPostUC,
			editPostUC,
			post.NewRaisePriceUseCase(repos.posts),
			post.NewDeletePostUseCase(repos.posts, repos.deals),
			post.NewGetPostUseCase(repos.posts),
			post.NewListMyPostsUseCase(repos.posts),
			post.NewListOpenPostsUseCase(repos.posts),
		),
		Negotiation: handler.NewNegotiationHandler(
			negotiation.NewRespondToPostUseCase(repos.posts, repos.responses),
			negotiation.NewCounterOfferUseCase(repos.posts, repos.responses),
			negotiation.NewListPostThreadsUseCase(repos.posts, repos.responses),
			negotiation.NewListTeacherThreadsUseCase(repos.responses),
		),
		Deal: handler.NewDealHandler(
			deal.NewCreateDealUseCase(repos.posts, repos.responses, repos.deals),
			deal.NewFinishDealUseCase(repos.deals),
			deal.NewLeaveFeedbackUseCase(repos.deals),
			deal.NewListMyDealsUseCase(repos.deals),
			deal.NewTeacherRatingUseCase(repos.users, repos.deals),
		),
		Complaint: handler.NewComplaintHandler(
			complaint.NewCreateComplaintUseCase(repos.deals, repos.complaints),
			complaint.NewGetMyComplaintUseCase(repos.complaints),
			complaint.NewListComplaintsUseCase(repos.complaints),
			complaint.NewAssignComplaintUseCase(repos.complaints),
			complaint.NewUpdateComplaintStatusUseCase(repos.complaints),
			complaint.NewDeleteComplaintUseCase(repos.complaints),
			complaint.NewFileDocumentComplaintUseCase(repos.documents, repos.documentComplaints),
			complaint.NewListDocumentComplaintsUseCase(repos.documentComplaints),
			complaint.NewDeleteDocumentComplaintUseCase(repos.documentComplaints),
		),
		Moderation: handler.NewModerationHandler(
			moderation.NewListProfileErrorsUseCase(repos.profileErrors),
			moderation.NewDecideProfileErrorUseCase(repos.profileErrors, registerUC, editProfileUC),
			moderation.NewListPostErrorsUseCase(repos.postErrors),
			moderation.NewDecidePostErrorUseCase(repos.postErrors, createPostUC, editPostUC),
		),
		Health: health,
	}

	engine := httpRouter.SetupRouter(cfg, handlers, tokens)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.Go(ctx, "http-shutdown", func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithFields(logrus.Fields{"error": err}).Error("ошибка остановки http сервера")
		}
	})

	logger.WithFields(logrus.Fields{"port": cfg.HTTPPort}).Info("HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
