package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"vibefy/internal/auth"
	"vibefy/internal/config"
	apphttp "vibefy/internal/http"
	"vibefy/internal/logging"
	"vibefy/internal/metadata"
	"vibefy/internal/repository/sqlite"
	"vibefy/internal/service"
	"vibefy/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	songRepo := sqlite.NewSongRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := songRepo.Init(ctx); err != nil {
		logger.Fatalf("init song repository: %v", err)
	}

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	sessions, err := auth.NewSessionIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	if err != nil {
		logger.Fatalf("setup sessions: %v", err)
	}

	userService := service.NewUserService(userRepo, bcrypt.DefaultCost)
	songService := service.NewSongService(service.SongConfig{
		StagingDir: cfg.Upload.StagingDir,
		MaxBytes:   cfg.Upload.MaxBytes,
		Archive:    storageSvc,
		Bucket:     cfg.Storage.Bucket,
		KeyPrefix:  cfg.Storage.KeyPrefix,
		Logger:     logger,
	}, userRepo, songRepo, metadata.NewExtractor())

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = 8 << 20
	handler := apphttp.NewHandler(userService, songService, sessions, apphttp.Options{
		CookieSecure:   cfg.Auth.CookieSecure,
		AllowedOrigins: cfg.Auth.AllowedOrigins,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Logger:         logger,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// buildStorage returns nil when no bucket is configured; songs then live only
// in the database.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Info("storage bucket not set, archive mirror disabled")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("mirroring songs to s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
