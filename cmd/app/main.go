package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/EasyPost_Go/internal/auth"
	"github.com/osse101/EasyPost_Go/internal/bootstrap"
	"github.com/osse101/EasyPost_Go/internal/config"
	"github.com/osse101/EasyPost_Go/internal/database"
	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/instagram"
	"github.com/osse101/EasyPost_Go/internal/oauth"
	"github.com/osse101/EasyPost_Go/internal/server"
	"github.com/osse101/EasyPost_Go/internal/user"
	"github.com/osse101/EasyPost_Go/internal/whatsapp"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.ValidateEnv(); err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenLifetime)

	// Both platforms share the registered callback URL
	redirectURI := cfg.OAuthRedirectURI()
	providers := map[string]oauth.Provider{
		domain.PlatformFacebook:  oauth.NewFacebookProvider(cfg.FacebookAppID, cfg.FacebookAppSecret, redirectURI, nil),
		domain.PlatformInstagram: oauth.NewInstagramProvider(cfg.InstagramAppID, cfg.InstagramAppSecret, redirectURI, nil),
	}

	states := oauth.NewStateStore()
	oauthService := oauth.NewService(states, providers, repos.SocialAccount, cfg.FrontendURL)
	refreshService := oauth.NewRefreshService(repos.SocialAccount, providers)

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	oauthService.StartSweeper(sweeperCtx)

	userService := user.NewService(repos.User)

	whatsappClient := whatsapp.NewClient(cfg.WhatsAppAccessToken, cfg.WhatsAppPhoneNumberID, nil)
	whatsappService := whatsapp.NewService(userService, whatsappClient, nil, cfg.WhatsAppVerifyToken)

	instagramService := instagram.NewService(refreshService, instagram.NewClient(nil))

	srv := server.NewServer(cfg.Port, cfg.TrustedProxies, dbPool, tokens, userService, oauthService, whatsappService, instagramService)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			stopSweeper()
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:      srv,
		StopSweeper: stopSweeper,
		DBPool:      dbPool,
	})
}
