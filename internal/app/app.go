package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mkhalinin/payactiv/internal/config"
	"github.com/mkhalinin/payactiv/internal/domain"
	"github.com/mkhalinin/payactiv/internal/handlers"
	"github.com/mkhalinin/payactiv/internal/repo"
	"github.com/mkhalinin/payactiv/internal/service"
	"github.com/mkhalinin/payactiv/internal/store"
	pkgauth "github.com/mkhalinin/payactiv/pkg/auth"
	"github.com/mkhalinin/payactiv/pkg/logger"
	"github.com/mkhalinin/payactiv/pkg/uploads"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories
	snap *store.Snapshotter

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	st, err := store.New(cfg.DataDir)
	if err != nil {
		zap.L().Error("store init failed: ", zap.Error(err))
		return fmt.Errorf("can't init store: %w", err)
	}
	uploadStorage, err := uploads.New(cfg.UploadDir)
	if err != nil {
		zap.L().Error("upload storage init failed: ", zap.Error(err))
		return fmt.Errorf("can't init upload storage: %w", err)
	}

	a.cfg = cfg
	a.repo = repo.New(st)
	a.srv = service.New(a.repo)
	a.api = handlers.New(a.srv, uploadStorage)
	a.snap = store.NewSnapshotter(st, cfg.AutosaveInterval)

	if err := a.seedAdmin(ctx); err != nil {
		zap.L().Error("admin seed failed: ", zap.Error(err))
		return fmt.Errorf("can't seed admin: %w", err)
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startSnapshotter(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

// seedAdmin creates the administrator account from externally supplied
// configuration. Nothing is seeded when the credentials are absent.
func (a *Application) seedAdmin(ctx context.Context) error {
	if a.cfg.AdminEmail == "" || a.cfg.AdminPassword == "" {
		zap.L().Warn("admin seed credentials not configured, skipping")
		return nil
	}
	existing, err := a.repo.UserRepo.FindByEmail(ctx, a.cfg.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := (&pkgauth.HashService{}).HashPassword(a.cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Name:       "Administrator",
		Email:      a.cfg.AdminEmail,
		Password:   hash,
		Role:       domain.RoleAdmin,
		Status:     domain.StatusActive,
		Activated:  true,
		AdminLevel: "super",
	}
	if _, err := a.repo.UserRepo.Create(ctx, admin); err != nil {
		return err
	}
	zap.L().Info("admin account seeded", zap.String("email", a.cfg.AdminEmail))
	return nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startSnapshotter(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.snap.Start(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
