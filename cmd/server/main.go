package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"timepay/internal/app/server"
	"timepay/internal/platform/config"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	ctx := context.Background()

	app, err := server.New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	app.Jobs.Start(ctx)

	slog.Info("timepay server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
