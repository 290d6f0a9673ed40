package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rsmanito/restaurant-api/config"
	"github.com/rsmanito/restaurant-api/server"
	"github.com/rsmanito/restaurant-api/storage"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	if cfg.SecretGenerated() {
		log.Warn("JWT_SECRET_KEY is not set, using a generated secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer st.Close()

	s := server.New(st, cfg)

	go func() {
		if err := s.Run(cfg.ListenAddr); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	log.WithFields(log.Fields{
		"addr":             cfg.ListenAddr,
		"chef":             cfg.ChefUsername,
		"verify_signature": cfg.VerifySignature(),
	}).Info("Running")

	<-ctx.Done()

	if err := s.Shutdown(); err != nil {
		log.WithFields(log.Fields{"err": err}).Error("Shutdown failed")
	}
}
