package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mzizi/mzizi/catalog"
	"mzizi/mzizi/config"
	"mzizi/mzizi/controllers"
	"mzizi/mzizi/routes"
	"mzizi/mzizi/services/advisor"
	"mzizi/mzizi/sessions"
	"mzizi/mzizi/sources/psql"
	"mzizi/mzizi/sources/psql/dao"
	"mzizi/mzizi/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// buildAdvisor picks the advisor backend: Gemini when a key is configured,
// else a remote advisor service, else the offline mock.
func buildAdvisor(ctx context.Context, cfg config.Config) (sessions.Advisor, error) {
	if cfg.GeminiAPIKey != "" {
		return advisor.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	if cfg.AdvisorBaseURL != "" {
		return advisor.NewHTTPClient(cfg.AdvisorBaseURL, cfg.AdvisorAPIKey), nil
	}
	logging.AppLogger.Warn("no advisor backend configured, using offline mock")
	return &advisor.Mock{}, nil
}

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	profileDAO := dao.NewProfileDAO(db.DB)
	kvDAO := dao.NewKVDAO(db.DB)
	adapter := sessions.NewAdapter(kvDAO)
	tools := catalog.Load(cfg.ToolsFile)

	adv, err := buildAdvisor(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("advisor init error", zap.Error(err))
		os.Exit(1)
	}

	chatCtrl := controllers.NewChatController(adapter, profileDAO, tools, adv)
	profileCtrl := controllers.NewProfileController(profileDAO)
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/health", routes.HealthRoutes(healthCtrl))
	r.Mount("/profiles", routes.ProfileRoutes(profileCtrl, cfg))
	r.Mount("/chat", routes.ChatRoutes(chatCtrl, cfg))

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("advisor server listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
