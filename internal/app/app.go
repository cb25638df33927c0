// Package app содержит основную структуру приложения и логику инициализации.
// Предоставляет точку входа для запуска HTTP сервера с настроенными маршрутами и middleware.
package app

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/InQaaaaGit/fanout.git/internal/config"
	"github.com/InQaaaaGit/fanout.git/internal/handler"
	"github.com/InQaaaaGit/fanout.git/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App представляет основное приложение сервиса опроса эндпоинтов.
// Инкапсулирует конфигурацию, HTTP роутер, логгер и обработчики запросов.
type App struct {
	config  *config.Config   // Конфигурация приложения
	router  *chi.Mux         // HTTP роутер для обработки запросов
	logger  *zap.Logger      // Логгер для записи событий приложения
	handler *handler.Handler // Обработчики HTTP запросов
}

// NewApp создает и инициализирует новый экземпляр приложения.
// Автоматически настраивает логгер, сервисный слой, обработчики запросов и маршруты.
//
// Возвращает указатель на App или ошибку при неудачной инициализации зависимостей.
func NewApp(cfg *config.Config) (*App, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}

	probeService, err := service.NewProbeService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating service: %w", err)
	}

	h := handler.NewHandler(probeService, cfg, logger)

	app := &App{
		config:  cfg,
		router:  chi.NewRouter(),
		logger:  logger,
		handler: h,
	}
	app.setupRoutes()

	return app, nil
}

// Run запускает HTTP или HTTPS сервер приложения в зависимости от конфигурации.
// Блокирующий вызов - выполняется до остановки сервера.
func (a *App) Run() error {
	server := a.GetServer()

	if a.config.IsHTTPSEnabled() {
		a.logger.Info("Starting HTTPS server",
			zap.String("address", a.config.ServerAddress),
			zap.String("cert", a.config.TLSCertFile),
			zap.String("key", a.config.TLSKeyFile))
		return server.ListenAndServeTLS(a.config.TLSCertFile, a.config.TLSKeyFile)
	}

	a.logger.Info("Starting HTTP server", zap.String("address", a.config.ServerAddress))
	return server.ListenAndServe()
}

// setupRoutes настраивает HTTP маршруты и middleware для приложения.
// Регистрирует все эндпоинты API и применяет глобальные middleware
// (логирование, сжатие, аутентификация).
func (a *App) setupRoutes() {
	// Middleware
	a.router.Use(a.handler.WithLogging)
	a.router.Use(a.handler.WithGzip)
	a.router.Use(a.handler.AuthMiddleware)

	// Routes
	a.router.Post("/", a.handler.HandleProbeText)
	a.router.Post("/api/probe", a.handler.HandleProbe)
	a.router.Post("/api/probe/batch", a.handler.HandleProbeBatch)
	a.router.Get("/api/user/results", a.handler.HandleLastReport)
	a.router.Get("/ping", a.handler.HandlePing)

	// Профилирование (доступно только в debug режиме)
	a.router.Mount("/debug/pprof", http.DefaultServeMux)
}

// GetServer создает и возвращает настроенный HTTP сервер.
// Сервер настроен с оптимальными таймаутами для production использования.
// Таймаут записи учитывает длительность опроса пакета эндпоинтов с повторами.
func (a *App) GetServer() *http.Server {
	writeTimeout := 2 * a.config.RequestTimeout
	if writeTimeout < 10*time.Second {
		writeTimeout = 10 * time.Second
	}

	return &http.Server{
		Addr:         a.config.ServerAddress,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  120 * time.Second,
	}
}
