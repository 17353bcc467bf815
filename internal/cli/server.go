package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ares-site-service/internal/assessment"
	"ares-site-service/internal/chat"
	"ares-site-service/internal/config"
	"ares-site-service/internal/domain"
	"ares-site-service/internal/infra/memory"
	pgstore "ares-site-service/internal/infra/postgres"
	redisinfra "ares-site-service/internal/infra/redis"
	"ares-site-service/internal/leads"
	"ares-site-service/internal/llm"
	"ares-site-service/internal/notion"
	"ares-site-service/internal/ratelimit"
	transport "ares-site-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the site service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	// Chat store: Postgres when configured, in-memory otherwise; either
	// way inserts fan out through the broadcast hub.
	var messageRepo chat.MessageRepository = memory.NewMessageRepository()
	if pool != nil {
		messageRepo = pgstore.NewMessageRepository(pool)
	}
	store := chat.NewStore(messageRepo, chat.NewHub())

	// Assessment catalog: static fallback, Postgres loader when
	// available, cached in Redis or process memory.
	catalogID := cfg.Catalog.ID
	if catalogID == "" {
		catalogID = assessment.DefaultCatalogID
	}
	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)

	var loader memory.CatalogLoader = memory.NewStaticCatalogLoader(map[string]domain.Catalog{
		assessment.DefaultCatalogID: assessment.DefaultCatalog(),
	})
	if pool != nil {
		loader = pgstore.NewCatalogLoader(pool)
	}
	var catalogs assessment.CatalogRepository
	if redisClient != nil {
		catalogs = redisinfra.NewCatalogRepository(redisClient, loader, catalogTTL)
	} else {
		catalogs = memory.NewCatalogRepository(loader, catalogTTL)
	}

	// Completion client: OpenAI when a key is present, the canned
	// responder when explicitly selected, nil otherwise so the chat
	// endpoint reports the configuration error.
	var completionClient llm.Client
	switch {
	case cfg.LLM.Provider == "canned":
		completionClient = llm.NewCanned()
	case cfg.LLM.APIKey != "":
		completionClient = llm.NewOpenAI(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
	default:
		log.Warn("no completion client configured; chat replies will fail with a configuration message")
	}
	responder := chat.NewResponder(store, completionClient, log)

	// Lead capture: local recording is best-effort, the relay is primary.
	var recorder leads.Recorder
	if pool != nil {
		recorder = pgstore.NewLeadRepository(pool)
	}
	relay := notion.NewClient(cfg.Notion.APIKey, cfg.Notion.DatabaseID, "")
	leadService := leads.NewService(recorder, relay, log)

	chatLimiter := newLimiter(redisClient, "ratelimit:chat",
		config.TTLDuration(cfg.Chat.RateWindow, time.Minute), defaultMax(cfg.Chat.RateMax, 10))
	leadLimiter := newLimiter(redisClient, "ratelimit:leads",
		config.TTLDuration(cfg.Leads.RateWindow, time.Minute), defaultMax(cfg.Leads.RateMax, 5))

	handler := transport.NewHandler(store, responder, leadService, catalogs, catalogID, chatLimiter, leadLimiter, log)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // completion calls can be slow
	}

	go func() {
		log.Info("starting site service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newLimiter(redisClient *redis.Client, prefix string, window time.Duration, max int) ratelimit.Limiter {
	if redisClient != nil {
		return ratelimit.NewRedisWindow(redisClient, prefix, window, max)
	}
	return ratelimit.NewWindow(window, max)
}

func defaultMax(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
