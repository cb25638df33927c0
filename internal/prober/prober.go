// Package prober реализует параллельный опрос HTTP эндпоинтов.
// Пул воркеров выполняет GET запросы с повторами и экспоненциальной паузой,
// собирая для каждой цели статус, задержку и превью тела ответа.
package prober

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/InQaaaaGit/fanout.git/internal/config"
	"github.com/InQaaaaGit/fanout.git/internal/models"
	"go.uber.org/zap"
)

// ErrInvalidURL возвращается, когда строка не является абсолютным URL
var ErrInvalidURL = errors.New("invalid URL")

// ErrUnsupportedScheme возвращается для URL со схемой, отличной от http/https
var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// ErrNotReady возвращается, когда опросчик не инициализирован
var ErrNotReady = errors.New("prober is not ready")

// target одна цель опроса внутри пакета. Index сохраняет позицию во входном списке.
type target struct {
	index int
	url   string
}

// Prober выполняет параллельный опрос списка эндпоинтов.
type Prober struct {
	client       *http.Client
	logger       *zap.Logger
	concurrency  int
	maxRetries   int
	backoff      time.Duration
	previewLimit int
}

// New создает новый экземпляр Prober с общим HTTP клиентом.
func New(cfg *config.Config, logger *zap.Logger) (*Prober, error) {
	client, err := newHTTPClient(cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.MaxConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Prober{
		client:       client,
		logger:       logger,
		concurrency:  concurrency,
		maxRetries:   cfg.MaxRetries,
		backoff:      cfg.RetryBackoff,
		previewLimit: cfg.BodyPreviewLimit,
	}, nil
}

// ProbeAll опрашивает все переданные URL параллельно и ждет завершения всех опросов.
// Результаты возвращаются в порядке входного списка независимо от порядка завершения.
// Ошибка отдельного эндпоинта записывается в его результат и не прерывает остальные опросы.
func (p *Prober) ProbeAll(ctx context.Context, urls []string) []models.ProbeResult {
	results := make([]models.ProbeResult, len(urls))
	if len(urls) == 0 {
		return results
	}

	workers := p.concurrency
	if workers > len(urls) {
		workers = len(urls)
	}

	jobs := make(chan target)
	limiter := newHostLimiter()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for t := range jobs {
				// Результат пишется по индексу цели, гонки между воркерами нет
				results[t.index] = p.probeOne(ctx, t.url, limiter)
			}
		}()
	}

	for i, u := range urls {
		jobs <- target{index: i, url: u}
	}
	close(jobs)
	wg.Wait()

	return results
}

// CheckReady проверяет готовность опросчика к работе.
func (p *Prober) CheckReady(ctx context.Context) error {
	if p == nil || p.client == nil {
		return ErrNotReady
	}
	return ctx.Err()
}

// probeOne выполняет опрос одного эндпоинта с повторами.
// Повторяются транспортные ошибки и ответы 5xx; пауза между попытками удваивается.
func (p *Prober) probeOne(ctx context.Context, rawURL string, limiter *hostLimiter) models.ProbeResult {
	result := models.ProbeResult{URL: rawURL}

	host, err := validateTarget(rawURL)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	// Не опрашиваем один хост в несколько потоков
	limiter.lock(host)
	defer limiter.unlock(host)

	attempts := 0
	maxAttempts := p.maxRetries + 1
	backoff := p.backoff

	for {
		attempts++
		result.Attempts = attempts

		start := time.Now()
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if reqErr != nil {
			result.Error = reqErr.Error()
			return result
		}

		resp, doErr := p.client.Do(req)
		result.LatencyMS = time.Since(start).Milliseconds()

		if doErr != nil {
			result.Error = doErr.Error()
			result.StatusCode = 0
			result.Preview = ""
			result.FinalURL = ""
		} else {
			result.Error = ""
			result.StatusCode = resp.StatusCode
			result.FinalURL = resp.Request.URL.String()
			result.Preview = p.readPreview(resp.Body)
			if closeErr := resp.Body.Close(); closeErr != nil {
				p.logger.Warn("Error closing response body",
					zap.String("url", rawURL), zap.Error(closeErr))
			}
		}

		if attempts >= maxAttempts || !shouldRetry(result.StatusCode, doErr) {
			break
		}

		p.logger.Debug("Retrying endpoint",
			zap.String("url", rawURL),
			zap.Int("attempt", attempts),
			zap.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			result.Error = ctx.Err().Error()
			return result
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return result
}

// readPreview читает не более previewLimit байт тела ответа.
// Обрезанное превью помечается многоточием.
func (p *Prober) readPreview(body io.Reader) string {
	if p.previewLimit <= 0 {
		return ""
	}

	buf, err := io.ReadAll(io.LimitReader(body, int64(p.previewLimit)+1))
	if err != nil {
		// Частично прочитанное тело полезнее пустого превью
		return string(buf)
	}
	if len(buf) > p.previewLimit {
		return string(buf[:p.previewLimit]) + "..."
	}
	return string(buf)
}

// shouldRetry определяет, имеет ли смысл повторить запрос.
func shouldRetry(statusCode int, err error) bool {
	if err != nil {
		return true
	}
	return statusCode >= 500 && statusCode <= 599
}

// validateTarget проверяет, что строка является абсолютным http(s) URL,
// и возвращает хост цели для hostLimiter.
func validateTarget(rawURL string) (string, error) {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return "", ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrUnsupportedScheme
	}
	if u.Host == "" {
		return "", ErrInvalidURL
	}
	return u.Host, nil
}
