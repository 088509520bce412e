package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/thesrcielos/exambuddy/api"
	"github.com/thesrcielos/exambuddy/internal/config"
	"github.com/thesrcielos/exambuddy/internal/llm"
	"github.com/thesrcielos/exambuddy/internal/preference"
	"github.com/thesrcielos/exambuddy/internal/question"
	"github.com/thesrcielos/exambuddy/internal/stats"
	"github.com/thesrcielos/exambuddy/internal/user"
	"github.com/thesrcielos/exambuddy/pkg/db"
	"github.com/thesrcielos/exambuddy/websocket"
	"github.com/thesrcielos/exambuddy/websocket/router"
	"github.com/thesrcielos/exambuddy/websocket/state"
	"github.com/thesrcielos/exambuddy/websocket/transport"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

type server struct {
	echo     *echo.Echo
	registry *state.Registry
	closers  []func() error
}

func (s *server) close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			log.Println("Error closing resource:", err)
		}
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer srv.close()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		if err := srv.echo.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	srv.registry.CloseAll()
	return srv.echo.Shutdown(shutdownCtx)
}

// newServer wires stores, notifier, LLM provider and routes from cfg.
func newServer(ctx context.Context, cfg config.Config, requestLogging bool) (*server, error) {
	srv := &server{registry: state.NewRegistry()}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.New().String()
		log.Println("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}
	tokens := user.NewTokenIssuer(secret)

	userRepo, statsRepo, err := openStores(cfg.Database, srv)
	if err != nil {
		srv.close()
		return nil, err
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = db.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			srv.close()
			return nil, err
		}
		srv.closers = append(srv.closers, rdb.Close)
	}

	var prefRepo preference.PreferenceRepository = preference.NewMemoryPreferenceRepository()
	if cfg.PreferenceDriver == config.DriverRedis {
		prefRepo = preference.NewRedisPreferenceRepository(rdb)
	}

	deliver := transport.StatsDeliverer(srv.registry)
	var notifier stats.Notifier = stats.NewLocalNotifier(deliver)
	if rdb != nil {
		redisNotifier := stats.NewRedisNotifier(rdb, deliver)
		if err := redisNotifier.Subscribe(ctx); err != nil {
			srv.close()
			return nil, err
		}
		notifier = redisNotifier
	}
	statsService := stats.NewStatsService(statsRepo, notifier)

	llmCfg := cfg.LLM
	llmCfg.MockContent = question.SampleQuestion
	provider, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		srv.close()
		return nil, err
	}
	log.Printf("LLM provider: %s (%s)", cfg.LLM.Provider, provider.ModelID())

	srv.echo = api.NewRouter(api.Dependencies{
		Tokens:         tokens,
		Users:          user.NewUserService(userRepo, tokens),
		Stats:          statsService,
		Preferences:    preference.NewPreferenceService(prefRepo),
		Questions:      question.NewGenerator(provider, cfg.LLM.Timeout),
		Live:           websocket.NewHandler(tokens, srv.registry, router.NewRouter(statsService)),
		RequestLogging: requestLogging,
	})
	return srv, nil
}

func openStores(cfg config.DatabaseConfig, srv *server) (user.UserRepository, stats.StatsRepository, error) {
	if cfg.Driver == config.DriverMemory {
		log.Println("Using in-memory stores; data is lost on restart")
		return user.NewMemoryUserRepository(), stats.NewMemoryStatsRepository(), nil
	}

	gdb, err := openMigrated(cfg)
	if err != nil {
		return nil, nil, err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		srv.closers = append(srv.closers, sqlDB.Close)
	}
	return user.NewGormUserRepository(gdb), stats.NewGormStatsRepository(gdb), nil
}

func openMigrated(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gdb, &user.User{}, &stats.UserStat{}); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Driver, err)
	}
	return gdb, nil
}
