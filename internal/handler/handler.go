package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/InQaaaaGit/fanout.git/internal/config"
	"github.com/InQaaaaGit/fanout.git/internal/middleware"
	"github.com/InQaaaaGit/fanout.git/internal/models"
	"github.com/InQaaaaGit/fanout.git/internal/service"
	"go.uber.org/zap"
)

const (
	contentTypePlain     = "text/plain"
	contentTypeJSON      = "application/json"
	emptyListMessage     = "empty URL list"
	batchTooLargeMessage = "Too many URLs in batch"
)

// Handler обрабатывает HTTP запросы сервиса опроса эндпоинтов
type Handler struct {
	service service.ProbeService
	cfg     *config.Config
	logger  *zap.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(service service.ProbeService, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// HandleProbe обрабатывает POST запрос с JSON массивом URL для опроса
func (h *Handler) HandleProbe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, contentTypeJSON) {
		http.Error(w, "Invalid Content-Type", http.StatusBadRequest)
		return
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Unable to read request body", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			h.logger.Error("Error closing request body", zap.Error(err))
		}
	}()

	var urls []string
	if err := json.Unmarshal(bodyBytes, &urls); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	h.logger.Info("Received probe request", zap.Int("urls", len(urls)))

	report, err := h.service.ProbeURLs(r.Context(), urls)
	if err != nil {
		h.writeProbeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

// HandleProbeBatch обрабатывает POST запрос на пакетный опрос с correlation_id
func (h *Handler) HandleProbeBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, contentTypeJSON) {
		http.Error(w, "Invalid Content-Type", http.StatusBadRequest)
		return
	}

	var reqBatch []models.BatchRequestEntry
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Unable to read request body", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			h.logger.Error("Error closing request body", zap.Error(err))
		}
	}()

	if err := json.Unmarshal(bodyBytes, &reqBatch); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	respBatch, err := h.service.ProbeBatch(r.Context(), reqBatch)
	if err != nil {
		h.writeProbeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, respBatch)
}

// HandleProbeText обрабатывает POST запрос со списком URL в виде текста,
// по одному URL на строку
func (h *Handler) HandleProbeText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, contentTypePlain) && !strings.HasPrefix(contentType, "application/x-gzip") {
		http.Error(w, "Invalid Content-Type", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			h.logger.Error("Error closing request body", zap.Error(err))
		}
	}()

	urls := splitURLList(string(body))
	if len(urls) == 0 {
		http.Error(w, emptyListMessage, http.StatusBadRequest)
		return
	}

	h.logger.Info("Received text probe request", zap.Int("urls", len(urls)))

	report, err := h.service.ProbeURLs(r.Context(), urls)
	if err != nil {
		h.writeProbeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

// HandleLastReport обрабатывает GET запрос на получение последнего отчета пользователя
func (h *Handler) HandleLastReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := h.service.LastReport(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoUserID) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if errors.Is(err, service.ErrNoReport) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.logger.Error("Error getting last report", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

// WithLogging добавляет логирование запросов
func (h *Handler) WithLogging(next http.Handler) http.Handler {
	return middleware.LoggerMiddleware(h.logger)(next)
}

// WithGzip добавляет поддержку gzip сжатия
func (h *Handler) WithGzip(next http.Handler) http.Handler {
	return middleware.GzipMiddleware(next)
}

// AuthMiddleware добавляет аутентификацию пользователя
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return middleware.AuthMiddleware(h.cfg.SecretKey)(next)
}

// writeProbeError отображает ошибки сервиса на HTTP статусы
func (h *Handler) writeProbeError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrBatchTooLarge) {
		http.Error(w, batchTooLargeMessage, http.StatusBadRequest)
		return
	}
	h.logger.Error("Error processing probe batch", zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// writeJSON сериализует ответ в JSON
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error writing JSON response", zap.Error(err))
	}
}

// splitURLList разбирает текстовый список URL, по одному на строку.
// Пустые строки и пробелы по краям игнорируются.
func splitURLList(body string) []string {
	var urls []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			urls = append(urls, line)
		}
	}
	return urls
}
