package handler

import (
	"net/http"

	"go.uber.org/zap"
)

// HandlePing обрабатывает запрос на проверку готовности опросчика
func (h *Handler) HandlePing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Проверяем готовность через сервис
	if err := h.service.CheckConnection(r.Context()); err != nil {
		h.logger.Error("Ошибка проверки готовности опросчика", zap.Error(err))
		http.Error(w, "Prober is not ready", http.StatusInternalServerError)
		return
	}

	// Если опросчик готов, возвращаем 200 OK
	w.WriteHeader(http.StatusOK)
}
