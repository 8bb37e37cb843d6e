package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	handler "github.com/jojoob/pollbot/internal/adapters/handler/http"
	"github.com/jojoob/pollbot/internal/adapters/messenger/webhook"
	"github.com/jojoob/pollbot/internal/adapters/repository/memory"
	"github.com/jojoob/pollbot/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var addr, botUserID, bridgeURL, bridgeToken string
	var debug bool

	flag.StringVar(&addr, "addr", envOr("ADDR", "0.0.0.0:8080"), "Listen address for the event webhook")
	flag.StringVar(&botUserID, "bot-user-id", os.Getenv("BOT_USER_ID"), "User id the bot acts as; its own reactions never count as votes")
	flag.StringVar(&bridgeURL, "bridge-url", os.Getenv("BRIDGE_URL"), "Base URL of the transport bridge")
	flag.StringVar(&bridgeToken, "bridge-token", os.Getenv("BRIDGE_TOKEN"), "Bearer token for the transport bridge")
	flag.BoolVar(&debug, "debug", os.Getenv("DEBUG") == "true", "Enable debug logging")
	flag.Parse()

	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	repo := memory.NewPollRepository()
	locks := services.NewRoomLocks()
	pollService := services.NewPollService(repo, locks, logger)
	voteService := services.NewVoteService(repo, locks, botUserID, logger)
	messenger := webhook.NewClient(bridgeURL, bridgeToken)
	eventHandler := handler.NewEventHandler(pollService, voteService, messenger, logger)

	server := &stdhttp.Server{Addr: addr, Handler: handler.NewHandler(eventHandler)}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
