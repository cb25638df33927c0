package main

import (
	"github.com/InQaaaaGit/fanout.git/internal/app"
	"github.com/InQaaaaGit/fanout.git/internal/buildinfo"
	"github.com/InQaaaaGit/fanout.git/internal/server"
	"go.uber.org/zap"
)

// Переменные сборки, заполняются через -ldflags
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	// Вывод информации о сборке
	buildinfo.NewInfo(buildVersion, buildDate, buildCommit).Print()

	// Инициализация логгера
	logger, cleanup := server.InitLogger()
	defer cleanup()

	// Инициализация конфигурации
	cfg := server.InitConfig(logger)

	// Создание и настройка приложения
	application, err := app.NewApp(cfg)
	if err != nil {
		logger.Fatal("Ошибка создания приложения", zap.Error(err))
	}

	// Запуск сервера
	httpServer := server.NewHTTPServer(application.GetServer(), cfg, logger)
	if err := httpServer.Start(); err != nil {
		logger.Fatal("Server failed to start", zap.Error(err))
	}
}
