package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nrattyp233/create-a-date1/internal/config"
	"github.com/nrattyp233/create-a-date1/internal/infra/httpclient"
	s3infra "github.com/nrattyp233/create-a-date1/internal/infra/s3"
	redrepo "github.com/nrattyp233/create-a-date1/internal/repo/redis"
	"github.com/nrattyp233/create-a-date1/internal/seed"
	assistsvc "github.com/nrattyp233/create-a-date1/internal/services/assist"
	chatsvc "github.com/nrattyp233/create-a-date1/internal/services/chat"
	feedsvc "github.com/nrattyp233/create-a-date1/internal/services/feed"
	marketplacesvc "github.com/nrattyp233/create-a-date1/internal/services/marketplace"
	mediasvc "github.com/nrattyp233/create-a-date1/internal/services/media"
	ratesvc "github.com/nrattyp233/create-a-date1/internal/services/rate"
	swipesvc "github.com/nrattyp233/create-a-date1/internal/services/swipes"
	userssvc "github.com/nrattyp233/create-a-date1/internal/services/users"
	"github.com/nrattyp233/create-a-date1/internal/store"
	jsonstore "github.com/nrattyp233/create-a-date1/internal/store/jsonfile"
	memstore "github.com/nrattyp233/create-a-date1/internal/store/memory"
	pgstore "github.com/nrattyp233/create-a-date1/internal/store/postgres"
	sheetstore "github.com/nrattyp233/create-a-date1/internal/store/sheets"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	store      store.Store
	redis      *goredis.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}

	if cfg.Storage.Seed {
		if err := seed.SeedIfEmpty(ctx, st); err != nil {
			st.Close()
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	swipeDeps := swipesvc.Dependencies{Store: st}
	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		rateRepo := redrepo.NewRateRepo(redisClient)
		swipeDeps.RateLimiter = ratesvc.NewLimiter(
			rateRepo,
			cfg.Limits.SwipesPerMinute,
			cfg.Limits.SwipesPer10Sec,
		)
	} else {
		log.Info("redis addr not set, swipe rate limiting disabled")
	}

	swipeService := swipesvc.NewService(swipeDeps)
	feedService := feedsvc.NewService(st)
	chatService := chatsvc.NewService(st)
	marketplaceService := marketplacesvc.NewService(st)
	usersService := userssvc.NewService(st)

	var mediaService *mediasvc.Service
	if cfg.S3.Endpoint != "" {
		s3Client, err := s3infra.NewClient(s3infra.Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
		})
		if err != nil {
			log.Warn("s3 init failed, photo uploads disabled", zap.Error(err))
		} else {
			storage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket)
			mediaService = mediasvc.NewService(st, storage, mediasvc.Config{
				Bucket:        cfg.S3.Bucket,
				PublicBaseURL: cfg.S3.PublicBaseURL,
			})
		}
	} else {
		log.Info("s3 endpoint not set, photo uploads disabled")
	}

	assistProvider, err := assistsvc.New(ctx, assistsvc.Config{
		APIKey:     cfg.Assist.APIKey,
		Model:      cfg.Assist.Model,
		ImageModel: cfg.Assist.ImageModel,
	})
	if err != nil {
		log.Warn("assist provider init failed, using canned responses", zap.Error(err))
		assistProvider = assistsvc.NewStaticProvider()
	}

	RegisterRoutes(r, Dependencies{
		SwipeService:       swipeService,
		FeedService:        feedService,
		ChatService:        chatService,
		MarketplaceService: marketplaceService,
		UsersService:       usersService,
		MediaService:       mediaService,
		AssistProvider:     assistProvider,
		Logger:             log,
		Config:             cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		store:      st,
		redis:      redisClient,
		httpRouter: r,
	}, nil
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Storage.Driver {
	case "", "memory":
		return memstore.New(), nil
	case "file":
		return jsonstore.New(cfg.Storage.File.Path)
	case "sheets":
		return sheetstore.New(sheetstore.Config{
			BaseURL: cfg.Storage.Sheets.BaseURL,
			APIKey:  cfg.Storage.Sheets.APIKey,
			Client:  httpclient.New(cfg.Storage.Sheets.Timeout),
		})
	case "postgres":
		return pgstore.New(ctx, cfg.Storage.Postgres.DSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func (a *App) Run() error {
	a.logger.Info("api server started",
		zap.String("addr", a.cfg.HTTP.Addr),
		zap.String("storage", a.cfg.Storage.Driver),
	)
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.store != nil {
		a.store.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
