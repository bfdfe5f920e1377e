package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mvdti/dashboard-service/internal/auth"
	"github.com/mvdti/dashboard-service/internal/config"
	"github.com/mvdti/dashboard-service/internal/database"
	"github.com/mvdti/dashboard-service/internal/handler"
	"github.com/mvdti/dashboard-service/internal/insight"
	"github.com/mvdti/dashboard-service/internal/kafka"
	"github.com/mvdti/dashboard-service/internal/llm"
	"github.com/mvdti/dashboard-service/internal/logging"
	"github.com/mvdti/dashboard-service/internal/router"
	"github.com/mvdti/dashboard-service/internal/service"
	"github.com/mvdti/dashboard-service/internal/websearch"
	"github.com/rs/cors"
)

// API приложение: HTTP сервер дашборда (режим api).
type API struct {
	cfg      *config.Config
	httpSrv  *http.Server
	producer *kafka.Producer
}

// NewAPI создаёт приложение для режима api.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	ticketSvc := service.NewTicketService(db)
	webClient := websearch.NewClient(cfg.BraveAPIKey, cfg.SearchLang)
	llmClient := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, time.Duration(cfg.LLMTimeoutSec)*time.Second)
	insightSvc := insight.NewService(ticketSvc, webClient, llmClient)
	sessions := auth.NewSessions(cfg.SessionSecret, cfg.PassTI, cfg.PassJefes)
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicEvent)

	if !cfg.AuthConfigured() {
		logging.Warnf("auth: PASS_TI/PASS_JEFES/SESSION_SECRET not fully set, login disabled")
	}
	if cfg.OpenAIAPIKey == "" {
		logging.Warnf("llm: OPENAI_API_KEY not set, /ai/insight disabled")
	}
	if cfg.BraveAPIKey == "" {
		logging.Warnf("websearch: BRAVE_SEARCH_API_KEY not set, /web/search disabled and insights run without snippets")
	}

	authHandler := handler.NewAuthHandler(sessions, cfg.AppEnv == "production")
	mux := router.New(router.Handlers{
		Auth:      authHandler,
		Ticket:    handler.NewTicketHandler(ticketSvc),
		Feedback:  handler.NewFeedbackHandler(ticketSvc, producer),
		WebSearch: handler.NewWebSearchHandler(webClient),
		Insight:   handler.NewInsightHandler(insightSvc, producer),
		Report:    handler.NewReportHandler(cfg.ReportURLTI, cfg.ReportURLJefes),
	})

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           corsWrapper.Handler(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      time.Duration(cfg.LLMTimeoutSec+30) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{
		cfg:      cfg,
		httpSrv:  httpSrv,
		producer: producer,
	}, nil
}

// Run запускает HTTP сервер, блокируется до отмены ctx.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	logging.Infof("HTTP server listening on %s", a.httpSrv.Addr)
	logging.Infof("  Swagger UI:    %s/swagger", base)
	logging.Infof("  Swagger spec:  %s/swagger/openapi.json", base)
	logging.Infof("  Health:        %s/health", base)
	logging.Infof("  Ready:         %s/ready", base)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Errorf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.producer.Close(); err != nil {
		logging.Errorf("kafka: close: %v", err)
	}
	return nil
}
