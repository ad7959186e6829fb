package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/falynantenaina87-blip/Mandarin-connect/config"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/ai"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/handlers"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/live"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/quiz"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/routes"
	"github.com/falynantenaina87-blip/Mandarin-connect/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	logger := config.SetupLogging(cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB(cfg.Database.URL)
	if err != nil {
		return err
	}

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		return err
	}
	if err := st.Seed(ctx); err != nil {
		return err
	}

	rdb := config.ConnectRedis(ctx, cfg.Redis.Addr)

	var gen ai.Generator
	if client, err := config.NewGeminiClient(ctx, cfg.AI.APIKey); err != nil {
		// The classroom works without AI; every pipeline caller has a
		// fallback, so a disabled generator just exercises those paths.
		slog.Warn("Generative AI disabled", "reason", err)
		gen = ai.Disabled{}
	} else {
		defer client.Close()
		gen = ai.NewGeminiGenerator(client)
	}

	svc := live.NewService(st, logger)
	tracker := quiz.NewTracker(st)
	pipeline := ai.NewPipeline(gen, cfg.AI.TextModel, cfg.AI.ImageModel, cfg.AI.Timeout, logger)

	jwtKey := []byte(cfg.Auth.JWTSecret)
	if len(jwtKey) == 0 {
		return errors.New("JWT secret is not configured")
	}

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	routes.SetupRoutes(r, routes.Deps{
		Auth:          handlers.NewAuthHandler(svc, rdb, jwtKey, cfg.Auth.TokenTTL),
		Live:          handlers.NewLiveHandler(svc),
		Chat:          handlers.NewChatHandler(svc),
		Announcements: handlers.NewAnnouncementHandler(svc, cfg.Uploads.Dir),
		Schedule:      handlers.NewScheduleHandler(svc),
		Quiz:          handlers.NewQuizHandler(tracker),
		AI:            handlers.NewAIHandler(pipeline),
		Store:         st,
		Redis:         rdb,
		JWTKey:        jwtKey,
	})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		svc.Hub().Run(ctx)
		return nil
	})
	g.Go(func() error {
		slog.Info("Server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
