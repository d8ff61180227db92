package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NomadCrew/splitly-backend/config"
	"github.com/NomadCrew/splitly-backend/db"
	"github.com/NomadCrew/splitly-backend/handlers"
	"github.com/NomadCrew/splitly-backend/internal/balance"
	"github.com/NomadCrew/splitly-backend/internal/cache"
	"github.com/NomadCrew/splitly-backend/logger"
	"github.com/NomadCrew/splitly-backend/router"
	"github.com/NomadCrew/splitly-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var migrateOnStart bool

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "Apply pending migrations before serving (postgres driver only)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	log := logger.GetLogger()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if migrateOnStart && cfg.Backend.Driver == config.DriverPostgres {
		if err := db.RunMigrations(cfg.Database.URL()); err != nil {
			return err
		}
	}

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	rdb, err := config.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	queue := cache.NewTaskQueue(cfg.WorkerPool)
	queue.Start()

	c := cache.New(cache.NewRedisStore(rdb), queue, cache.WithWriteTimeout(cfg.Cache.WriteTimeout()))
	stores := services.NewStores(backend)
	agg := balance.NewAggregator(stores.Groups, stores.Persons, stores.Expenses, stores.Debtors)

	r := router.SetupRouter(router.Dependencies{
		Config:         cfg,
		Redis:          rdb,
		GroupHandler:   handlers.NewGroupHandler(services.NewGroupService(stores, c, agg, cfg.Cache.BalanceTTL())),
		ExpenseHandler: handlers.NewExpenseHandler(services.NewExpenseService(stores, c)),
		PersonHandler:  handlers.NewPersonHandler(services.NewPersonService(stores, c)),
		MemberHandler:  handlers.NewMemberHandler(services.NewMemberService(stores, c)),
		DebtorHandler:  handlers.NewDebtorHandler(services.NewDebtorService(stores, c)),
		UserHandler:    handlers.NewUserHandler(services.NewUserService(stores, c)),
		HealthHandler:  handlers.NewHealthHandler(services.NewHealthService(backend, c, cfg.Server.Version)),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("Starting server", "port", cfg.Server.Port, "driver", cfg.Backend.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")

		timeout := time.Duration(cfg.WorkerPool.ShutdownTimeoutSeconds) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		srvErr := srv.Shutdown(shutdownCtx)
		// Requests are drained first so their deferred cache work is queued before the queue closes.
		queueErr := queue.Shutdown(shutdownCtx)
		return errors.Join(srvErr, queueErr)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}
