// Package service содержит бизнес-логику опроса эндпоинтов:
// проверку входного пакета, запуск параллельного опроса, подсчет сводки
// и кэширование последнего отчета пользователя.
package service

import (
	"context"
	"time"

	"github.com/InQaaaaGit/fanout.git/internal/config"
	"github.com/InQaaaaGit/fanout.git/internal/middleware"
	"github.com/InQaaaaGit/fanout.git/internal/models"
	"github.com/InQaaaaGit/fanout.git/internal/prober"
	"go.uber.org/zap"
)

// ProbeService определяет интерфейс сервиса опроса эндпоинтов
type ProbeService interface {
	// ProbeURLs опрашивает список URL и возвращает отчет с результатами в порядке входа
	ProbeURLs(ctx context.Context, urls []string) (*models.ProbeReport, error)
	// ProbeBatch опрашивает пакет записей с correlation_id
	ProbeBatch(ctx context.Context, batch []models.BatchRequestEntry) ([]models.BatchResponseEntry, error)
	// LastReport возвращает последний отчет пользователя из кэша
	LastReport(ctx context.Context) (*models.ProbeReport, error)
	// CheckConnection проверяет готовность опросчика
	CheckConnection(ctx context.Context) error
}

// ProbeServiceImpl реализует ProbeService
type ProbeServiceImpl struct {
	prober       *prober.Prober
	cache        *reportCache
	logger       *zap.Logger
	maxBatchSize int
}

// NewProbeService создает новый экземпляр ProbeService
func NewProbeService(cfg *config.Config, logger *zap.Logger) (*ProbeServiceImpl, error) {
	p, err := prober.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &ProbeServiceImpl{
		prober:       p,
		cache:        newReportCache(),
		logger:       logger,
		maxBatchSize: cfg.MaxBatchSize,
	}, nil
}

// ProbeURLs опрашивает все URL параллельно и собирает отчет.
// Пустой список допустим и дает отчет с нулевой сводкой.
func (s *ProbeServiceImpl) ProbeURLs(ctx context.Context, urls []string) (*models.ProbeReport, error) {
	if s.maxBatchSize > 0 && len(urls) > s.maxBatchSize {
		return nil, ErrBatchTooLarge
	}

	start := time.Now()
	results := s.prober.ProbeAll(ctx, urls)
	elapsed := time.Since(start)

	report := &models.ProbeReport{
		Results: results,
		Summary: buildSummary(results, elapsed),
	}

	s.logger.Info("Probe batch finished",
		zap.Int("total", report.Summary.Total),
		zap.Int("ok", report.Summary.OK),
		zap.Int("failed", report.Summary.Failed),
		zap.Duration("elapsed", elapsed))

	// Запоминаем отчет для пользователя, если запрос аутентифицирован
	if userID, ok := middleware.UserIDFromContext(ctx); ok {
		s.cache.save(userID, report)
	}

	return report, nil
}

// ProbeBatch опрашивает пакет записей и сопоставляет результаты по correlation_id.
func (s *ProbeServiceImpl) ProbeBatch(ctx context.Context, batch []models.BatchRequestEntry) ([]models.BatchResponseEntry, error) {
	urls := make([]string, len(batch))
	for i, entry := range batch {
		urls[i] = entry.URL
	}

	report, err := s.ProbeURLs(ctx, urls)
	if err != nil {
		return nil, err
	}

	resp := make([]models.BatchResponseEntry, len(batch))
	for i, entry := range batch {
		resp[i] = models.BatchResponseEntry{
			CorrelationID: entry.CorrelationID,
			Result:        report.Results[i],
		}
	}
	return resp, nil
}

// LastReport возвращает последний отчет пользователя из кэша.
func (s *ProbeServiceImpl) LastReport(ctx context.Context) (*models.ProbeReport, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserID
	}
	return s.cache.get(userID)
}

// CheckConnection проверяет готовность опросчика.
func (s *ProbeServiceImpl) CheckConnection(ctx context.Context) error {
	return s.prober.CheckReady(ctx)
}

// buildSummary считает сводку по результатам опроса.
// Средняя задержка считается только по завершившимся HTTP-ответам.
func buildSummary(results []models.ProbeResult, elapsed time.Duration) models.ProbeSummary {
	summary := models.ProbeSummary{
		Total:     len(results),
		ElapsedMS: elapsed.Milliseconds(),
	}

	var latencySum int64
	var completed int64
	for _, r := range results {
		if r.OK() {
			summary.OK++
		} else {
			summary.Failed++
		}
		if r.Error == "" {
			latencySum += r.LatencyMS
			completed++
		}
	}
	if completed > 0 {
		summary.AvgLatencyMS = latencySum / completed
	}

	return summary
}
