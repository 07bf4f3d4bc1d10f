package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/config"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/logger"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/server"
)

func main() {
	log := logger.New()
	logger.SetDefault(log)

	if err := config.ValidateEnv([]string{"DATABASE_URL"}); err != nil {
		log.Error("configuration error", "err", err)
		os.Exit(1)
	}

	app := server.New(log)
	defer app.Close()

	srv := app.HTTPServer()
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
