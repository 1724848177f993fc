package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IgorGreusunset/shortener-ui/internal/client"
	"github.com/IgorGreusunset/shortener-ui/internal/clipboard"
	"github.com/IgorGreusunset/shortener-ui/internal/form"
	"github.com/IgorGreusunset/shortener-ui/internal/handlers"
	"github.com/IgorGreusunset/shortener-ui/internal/logger"
	"github.com/IgorGreusunset/shortener-ui/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newRouter(c handlers.Controller, log *zap.Logger) *chi.Mux {
	router := chi.NewRouter()

	//Подключаем middlewares
	router.Use(chimw.Recoverer)
	router.Use(middleware.WithRequestID)
	router.Use(middleware.WithLogging(log))
	router.Use(chimw.Compress(5, "text/html", "application/json"))

	router.Get(`/`, func(res http.ResponseWriter, req *http.Request) {
		handlers.PageHandler(c, res, req)
	})
	router.Post(`/`, func(res http.ResponseWriter, req *http.Request) {
		handlers.SubmitHandler(c, res, req)
	})
	router.Post(`/copy`, func(res http.ResponseWriter, req *http.Request) {
		handlers.CopyHandler(c, res, req)
	})
	router.Get(`/api/state`, func(res http.ResponseWriter, req *http.Request) {
		handlers.StateHandler(c, res, req)
	})
	router.Get(`/ping`, handlers.PingHandler)

	return router
}

func main() {

	cfg := parseFlags()

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error during logger initialization: %v", err)
	}
	defer logger.Log.Sync()

	cb := clipboard.NewSystem()
	if cb.Unsupported() {
		logger.Log.Warn("No clipboard utility found, copy will fail")
	}

	shortener := client.New(cfg.Endpoint, cfg.RequestTimeout, logger.Log)
	f := form.New(shortener, cb,
		form.WithLogger(logger.Log),
		form.WithCopyResetAfter(cfg.CopyResetAfter),
	)
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: newRouter(f, logger.Log),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Info("Server started",
			zap.String("address", cfg.ServerAddress),
			zap.String("endpoint", cfg.Endpoint),
		)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Log.Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.Log.Info("Server stopped")
}
